// Package deps carries the services and the signed-in identity shared by
// the screens.
package deps

import (
	"github.com/rs/zerolog"

	"github.com/abhisek/sightread/internal/auth"
	"github.com/abhisek/sightread/internal/config"
	"github.com/abhisek/sightread/internal/notes"
	"github.com/abhisek/sightread/internal/problemgen"
	"github.com/abhisek/sightread/internal/profile"
	"github.com/abhisek/sightread/internal/screen"
	"github.com/abhisek/sightread/internal/session"
	"github.com/abhisek/sightread/internal/store"
)

// Deps is built once at startup and handed to every screen.
type Deps struct {
	Auth     *auth.Service
	Profiles *profile.Service
	Events   store.EventRepo // nil disables history and event logging
	Quiz     config.Quiz
	Bank     *notes.Bank
	Logger   zerolog.Logger

	// SignIn builds the parent sign-in screen shown after signing out.
	SignIn func() screen.Screen
}

// BankOrDefault returns Bank, or the full treble catalog when unset.
func (d *Deps) BankOrDefault() *notes.Bank {
	if d.Bank != nil {
		return d.Bank
	}
	return notes.DefaultBank()
}

// Delays returns the configured feedback delays, falling back to the
// defaults for unset values.
func (d *Deps) Delays() session.Delays {
	delays := session.DefaultDelays
	if d.Quiz.CorrectDelay > 0 {
		delays.Correct = d.Quiz.CorrectDelay
	}
	if d.Quiz.WrongDelay > 0 {
		delays.Wrong = d.Quiz.WrongDelay
	}
	return delays
}

// Questions returns the configured quiz length.
func (d *Deps) Questions() int {
	if d.Quiz.Questions > 0 {
		return d.Quiz.Questions
	}
	return config.Default().Quiz.Questions
}

// Points returns the configured points per correct answer.
func (d *Deps) Points() int {
	if d.Quiz.PointsPerCorrect > 0 {
		return d.Quiz.PointsPerCorrect
	}
	return session.DefaultPointsPerCorrect
}

// NewSource returns the random source for one quiz.
func (d *Deps) NewSource() problemgen.RandomSource {
	return problemgen.NewSource(d.Quiz.Seed)
}

// Player is the signed-in parent and the kid playing. Screens under a
// profile share one *Player and only touch it from Update.
type Player struct {
	Parent  *store.Parent
	Profile *store.Profile
}

// Name returns the profile name, or "" before one is chosen.
func (p *Player) Name() string {
	if p == nil || p.Profile == nil {
		return ""
	}
	return p.Profile.Name
}

// Score returns the profile's running score.
func (p *Player) Score() int {
	if p == nil || p.Profile == nil {
		return 0
	}
	return p.Profile.Score
}
