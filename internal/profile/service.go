// Package profile manages the kid profiles a parent plays under, their
// running scores and the shared leaderboard.
package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/abhisek/sightread/internal/store"
)

var (
	ErrBlankName    = errors.New("profile name must not be blank")
	ErrNameTooLong  = fmt.Errorf("profile name must be at most %d characters", MaxNameLength)
	ErrProfileLimit = errors.New("profile limit reached")
	ErrNotFound     = errors.New("profile not found")
)

const (
	// MaxNameLength is counted in runes.
	MaxNameLength = 24

	DefaultMaxPerParent = 6
)

// Profile is a kid profile.
type Profile = store.Profile

// Service validates and persists profiles.
type Service struct {
	repo         store.ProfileRepo
	maxPerParent int
	logger       zerolog.Logger
}

// NewService creates a profile service. maxPerParent <= 0 uses
// DefaultMaxPerParent.
func NewService(repo store.ProfileRepo, maxPerParent int, logger zerolog.Logger) *Service {
	if maxPerParent <= 0 {
		maxPerParent = DefaultMaxPerParent
	}
	return &Service{
		repo:         repo,
		maxPerParent: maxPerParent,
		logger:       logger.With().Str("component", "profile").Logger(),
	}
}

// Repo returns the backing repository.
func (s *Service) Repo() store.ProfileRepo { return s.repo }

// MaxPerParent returns the profile cap.
func (s *Service) MaxPerParent() int { return s.maxPerParent }

// List returns the parent's profiles in creation order.
func (s *Service) List(ctx context.Context, parentID int64) ([]Profile, error) {
	return s.repo.ListByParent(ctx, parentID)
}

// Create adds a profile under parentID after validating the name and
// the per-parent cap.
func (s *Service) Create(ctx context.Context, parentID int64, name string) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBlankName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return nil, ErrNameTooLong
	}

	n, err := s.repo.CountByParent(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if n >= s.maxPerParent {
		return nil, fmt.Errorf("%w (%d)", ErrProfileLimit, s.maxPerParent)
	}

	p, err := s.repo.Create(ctx, parentID, name)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("profile_id", p.ID).Int64("parent_id", parentID).Msg("profile created")
	return p, nil
}

// Delete removes a profile owned by parentID.
func (s *Service) Delete(ctx context.Context, parentID, id int64) error {
	err := s.repo.Delete(ctx, parentID, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	s.logger.Info().Int64("profile_id", id).Msg("profile deleted")
	return nil
}

// Get returns a profile by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Profile, error) {
	p, err := s.repo.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	return p, err
}
