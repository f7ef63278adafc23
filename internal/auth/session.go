package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/sightread/internal/store"
)

// DefaultSessionTTL is how long a remembered sign-in lasts without use.
const DefaultSessionTTL = 30 * 24 * time.Hour

// ErrNoSession is returned by Restore when no usable sign-in is
// remembered.
var ErrNoSession = errors.New("no remembered sign-in")

// WithSessions lets the service remember the signed-in parent across
// launches.
func WithSessions(repo store.SessionRepo) Option {
	return func(s *Service) { s.sessions = repo }
}

// WithSessionTTL overrides DefaultSessionTTL.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) { s.ttl = ttl }
}

// WithClock overrides time.Now for session expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Remember stores p as the signed-in parent on this device, replacing any
// earlier sign-in. It is a no-op without a session repo.
func (s *Service) Remember(ctx context.Context, p *Parent) error {
	if s.sessions == nil || p == nil {
		return nil
	}
	now := s.now()
	err := s.sessions.Save(ctx, store.ParentSession{
		Token:     uuid.NewString(),
		ParentID:  p.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	})
	if err != nil {
		return fmt.Errorf("remember sign-in: %w", err)
	}
	s.logger.Debug().Int64("parent_id", p.ID).Msg("sign-in remembered")
	return nil
}

// Restore returns the remembered parent and extends the sign-in. Expired
// sign-ins and sign-ins for deleted parents are cleared and reported as
// ErrNoSession.
func (s *Service) Restore(ctx context.Context) (*Parent, error) {
	if s.sessions == nil {
		return nil, ErrNoSession
	}
	sess, err := s.sessions.Current(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load sign-in: %w", err)
	}

	now := s.now()
	if !now.Before(sess.ExpiresAt) {
		s.logger.Info().Int64("parent_id", sess.ParentID).Msg("remembered sign-in expired")
		return nil, s.forget(ctx)
	}

	p, err := s.repo.Get(ctx, sess.ParentID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, s.forget(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup parent: %w", err)
	}

	if err := s.sessions.Touch(ctx, sess.Token, now.Add(s.ttl)); err != nil && !errors.Is(err, store.ErrNotFound) {
		s.logger.Warn().Err(err).Msg("extend sign-in")
	}
	return p, nil
}

// Logout forgets the remembered sign-in.
func (s *Service) Logout(ctx context.Context) error {
	if s.sessions == nil {
		return nil
	}
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("forget sign-in: %w", err)
	}
	s.logger.Info().Msg("signed out")
	return nil
}

// forget clears the sign-in and reports ErrNoSession, or the clear error.
func (s *Service) forget(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("forget sign-in: %w", err)
	}
	return ErrNoSession
}
