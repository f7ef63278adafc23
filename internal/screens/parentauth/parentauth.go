// Package parentauth is the parent sign-in and registration screen.
package parentauth

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sightread/internal/auth"
	"github.com/abhisek/sightread/internal/router"
	"github.com/abhisek/sightread/internal/screen"
	"github.com/abhisek/sightread/internal/screens/deps"
	"github.com/abhisek/sightread/internal/screens/profiles"
	"github.com/abhisek/sightread/internal/ui/components"
	"github.com/abhisek/sightread/internal/ui/layout"
	"github.com/abhisek/sightread/internal/ui/theme"
)

const authTimeout = 10 * time.Second

var errPasswordMismatch = errors.New("passwords do not match")

type mode int

const (
	modeLogin mode = iota
	modeRegister
)

const (
	fieldEmail = iota
	fieldPassword
	fieldConfirm
)

type authDoneMsg struct {
	Parent *auth.Parent
	Err    error
}

// AuthScreen signs a parent in or creates their account.
type AuthScreen struct {
	deps    *deps.Deps
	mode    mode
	fields  []components.TextInput
	focused int
	busy    bool
	errMsg  string
}

var _ screen.Screen = (*AuthScreen)(nil)
var _ screen.KeyHintProvider = (*AuthScreen)(nil)

// New creates an AuthScreen in sign-in mode.
func New(d *deps.Deps) *AuthScreen {
	s := &AuthScreen{deps: d}
	s.fields = []components.TextInput{
		components.NewTextInput("parent@example.com", 254),
		components.NewPasswordInput("password", 72),
		components.NewPasswordInput("repeat password", 72),
	}
	s.focus(fieldEmail)
	return s
}

func (s *AuthScreen) Init() tea.Cmd {
	return s.fields[fieldEmail].Init()
}

func (s *AuthScreen) Title() string {
	if s.mode == modeRegister {
		return "Create Parent Account"
	}
	return "Parent Sign In"
}

func (s *AuthScreen) KeyHints() []layout.KeyHint {
	toggle := "New account"
	if s.mode == modeRegister {
		toggle = "Sign in instead"
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+N", Description: toggle},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *AuthScreen) fieldCount() int {
	if s.mode == modeRegister {
		return 3
	}
	return 2
}

func (s *AuthScreen) focus(i int) tea.Cmd {
	s.focused = i
	var cmd tea.Cmd
	for j := range s.fields {
		if j == i {
			cmd = s.fields[j].Focus()
		} else {
			s.fields[j].Blur()
		}
	}
	return cmd
}

func (s *AuthScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		return s.handleDone(msg)

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "tab", "down":
			return s, s.focus((s.focused + 1) % s.fieldCount())
		case "shift+tab", "up":
			return s, s.focus((s.focused - 1 + s.fieldCount()) % s.fieldCount())
		case "ctrl+n":
			if s.mode == modeLogin {
				s.mode = modeRegister
			} else {
				s.mode = modeLogin
			}
			s.errMsg = ""
			s.fields[fieldConfirm].Reset()
			return s, s.focus(fieldEmail)
		case "enter":
			if s.focused < s.fieldCount()-1 {
				return s, s.focus(s.focused + 1)
			}
			return s.submit()
		}
	}

	var cmd tea.Cmd
	s.fields[s.focused], cmd = s.fields[s.focused].Update(msg)
	return s, cmd
}

func (s *AuthScreen) submit() (screen.Screen, tea.Cmd) {
	email := strings.TrimSpace(s.fields[fieldEmail].Value())
	password := s.fields[fieldPassword].Value()
	if email == "" || password == "" {
		s.errMsg = "Enter your email and password."
		return s, nil
	}

	register := s.mode == modeRegister
	if register && password != s.fields[fieldConfirm].Value() {
		s.errMsg = friendly(errPasswordMismatch)
		return s, nil
	}

	s.busy = true
	s.errMsg = ""
	svc := s.deps.Auth
	return s, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
		defer cancel()

		var p *auth.Parent
		var err error
		if register {
			p, err = svc.Register(ctx, email, password)
		} else {
			p, err = svc.Login(ctx, email, password)
		}
		if err == nil {
			err = svc.Remember(ctx, p)
		}
		return authDoneMsg{Parent: p, Err: err}
	}
}

func (s *AuthScreen) handleDone(msg authDoneMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.Err != nil {
		s.errMsg = friendly(msg.Err)
		if !isUserError(msg.Err) {
			s.deps.Logger.Error().Err(msg.Err).Msg("parent authentication")
		}
		return s, nil
	}

	s.fields[fieldPassword].Reset()
	s.fields[fieldConfirm].Reset()
	s.errMsg = ""

	next := profiles.New(s.deps, &deps.Player{Parent: msg.Parent})
	return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func isUserError(err error) bool {
	for _, target := range []error{
		auth.ErrInvalidCredentials, auth.ErrInvalidEmail,
		auth.ErrEmailTaken, auth.ErrPasswordTooShort, errPasswordMismatch,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// friendly turns an error into a sentence for the form.
func friendly(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "That email and password don't match."
	case errors.Is(err, auth.ErrInvalidEmail):
		return "That doesn't look like an email address."
	case errors.Is(err, auth.ErrEmailTaken):
		return "An account with that email already exists."
	case errors.Is(err, auth.ErrPasswordTooShort):
		return "Passwords need at least 8 characters."
	case errors.Is(err, errPasswordMismatch):
		return "The two passwords don't match."
	}
	return "Something went wrong. Please try again."
}

func (s *AuthScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(s.Title()))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
		Render("Grown-ups sign in here before picking a player."))
	b.WriteString("\n\n")

	labels := []string{"Email", "Password", "Repeat password"}
	for i := 0; i < s.fieldCount(); i++ {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if i == s.focused {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(s.fields[i].View())
		b.WriteString("\n\n")
	}

	switch {
	case s.busy:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("Checking..."))
	case s.errMsg != "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	card := components.Card(lipgloss.NewStyle().Align(lipgloss.Left).Render(b.String()), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
