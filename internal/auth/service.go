// Package auth manages parent accounts, which own kid profiles.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/sightread/internal/store"
)

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Parent is a signed-in parent account.
type Parent = store.Parent

// Service handles registration, login and the remembered sign-in.
type Service struct {
	repo   store.ParentRepo
	cost   int
	logger zerolog.Logger

	sessions store.SessionRepo
	ttl      time.Duration
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func WithCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

// NewService creates an authentication service.
func NewService(repo store.ParentRepo, logger zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		cost:   defaultCost,
		logger: logger.With().Str("component", "auth").Logger(),
		ttl:    DefaultSessionTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NormalizeEmail trims and lower-cases an address and checks its shape.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// Register creates a parent account.
func (s *Service) Register(ctx context.Context, email, password string) (*Parent, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	hash, err := HashPassword(password, s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	p, err := s.repo.Create(ctx, email, hash)
	if errors.Is(err, store.ErrDuplicate) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("create parent: %w", err)
	}

	s.logger.Info().Int64("parent_id", p.ID).Msg("parent registered")
	return p, nil
}

// Login returns the parent whose email and password match.
func (s *Service) Login(ctx context.Context, email, password string) (*Parent, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	p, err := s.repo.ByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup parent: %w", err)
	}

	if err := VerifyPassword(p.PasswordHash, password); err != nil {
		s.logger.Warn().Int64("parent_id", p.ID).Msg("failed login")
		return nil, ErrInvalidCredentials
	}
	return p, nil
}
