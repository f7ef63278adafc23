package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/sightread/internal/store"
)

var dbCounter int

func newTestService(t *testing.T) *Service {
	t.Helper()
	dbCounter++
	st, err := store.Open(fmt.Sprintf("file:auth_test_%d?mode=memory&cache=shared", dbCounter))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return NewService(st.ParentRepo(), zerolog.Nop(), WithCost(bcrypt.MinCost))
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := VerifyPassword(hash, "correct horse"); err != nil {
		t.Errorf("verify matching password: %v", err)
	}
	if err := VerifyPassword(hash, "wrong horse"); err == nil {
		t.Error("expected mismatch error")
	}

	if _, err := HashPassword("short", bcrypt.MinCost); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("short password err = %v, want ErrPasswordTooShort", err)
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  bool
	}{
		{"  Mum@Example.COM ", "mum@example.com", false},
		{"dad@home.org", "dad@home.org", false},
		{"not-an-email", "", true},
		{"a@b", "", true},
		{"Mum <mum@example.com>", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := NormalizeEmail(tt.in)
		if tt.err {
			if !errors.Is(err, ErrInvalidEmail) {
				t.Errorf("NormalizeEmail(%q) err = %v, want ErrInvalidEmail", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	p, err := svc.Register(ctx, "Mum@Example.com", "password123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if p.Email != "mum@example.com" {
		t.Errorf("Email = %q, want normalized", p.Email)
	}

	if _, err := svc.Register(ctx, "mum@example.com", "password456"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate register err = %v, want ErrEmailTaken", err)
	}

	got, err := svc.Login(ctx, " MUM@example.com", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != p.ID {
		t.Errorf("login returned parent %d, want %d", got.ID, p.ID)
	}

	for _, tc := range []struct{ email, password string }{
		{"mum@example.com", "wrongpassword"},
		{"nobody@example.com", "password123"},
		{"garbage", "password123"},
	} {
		if _, err := svc.Login(ctx, tc.email, tc.password); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login(%q) err = %v, want ErrInvalidCredentials", tc.email, err)
		}
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "bad", "password123"); !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("err = %v, want ErrInvalidEmail", err)
	}
	if _, err := svc.Register(ctx, "ok@example.com", "short"); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("err = %v, want ErrPasswordTooShort", err)
	}
}
