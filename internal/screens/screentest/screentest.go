// Package screentest builds screen dependencies backed by an in-memory
// store for screen tests.
package screentest

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/sightread/internal/auth"
	"github.com/abhisek/sightread/internal/config"
	"github.com/abhisek/sightread/internal/profile"
	"github.com/abhisek/sightread/internal/screens/deps"
	"github.com/abhisek/sightread/internal/store"
)

// Env is a test store plus the deps built on it.
type Env struct {
	Store *store.Store
	Deps  *deps.Deps
}

// New opens a fresh in-memory store named after the test.
func New(t *testing.T) *Env {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	logger := zerolog.Nop()
	return &Env{
		Store: s,
		Deps: &deps.Deps{
			Auth:     auth.NewService(s.ParentRepo(), logger, auth.WithCost(bcrypt.MinCost), auth.WithSessions(s.SessionRepo())),
			Profiles: profile.NewService(s.ProfileRepo(), profile.DefaultMaxPerParent, logger),
			Events:   s.EventRepo(),
			Quiz:     config.Quiz{Questions: 3, PointsPerCorrect: 10, Seed: 42},
			Logger:   logger,
		},
	}
}

// Parent registers a parent account.
func (e *Env) Parent(t *testing.T, email string) *store.Parent {
	t.Helper()
	p, err := e.Deps.Auth.Register(context.Background(), email, "correct-horse")
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return p
}

// Profile creates a kid profile under parent with score points.
func (e *Env) Profile(t *testing.T, parent *store.Parent, name string, score int) *store.Profile {
	t.Helper()
	ctx := context.Background()
	p, err := e.Deps.Profiles.Create(ctx, parent.ID, name)
	if err != nil {
		t.Fatalf("create profile %s: %v", name, err)
	}
	if score != 0 {
		total, err := e.Store.ProfileRepo().AddScore(ctx, p.ID, score)
		if err != nil {
			t.Fatalf("add score: %v", err)
		}
		p.Score = total
	}
	return p
}

// KeyPress builds a printable key press.
func KeyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// SpecialKey builds a key press for a non-printable key such as
// tea.KeyEnter.
func SpecialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Type feeds s to update one rune at a time.
func Type(update func(tea.Msg), s string) {
	for _, r := range s {
		update(KeyPress(r))
	}
}

// CtrlKey builds ctrl plus r.
func CtrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}
