package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sightread/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeHandler is implemented by screens that handle Esc themselves
// instead of letting the app pop them.
type EscapeHandler interface {
	HandlesEscape() bool
}

// PlayerProvider is implemented by screens that act for a kid profile.
// The header shows the returned name and score.
type PlayerProvider interface {
	Player() (name string, score int)
}

// Resumer is implemented by screens that refresh when they become active
// again after the screen above them pops.
type Resumer interface {
	Resume() tea.Cmd
}

// Closer is implemented by screens holding work that must be flushed
// before the program exits.
type Closer interface {
	Close()
}
