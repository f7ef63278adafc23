package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sightread/internal/router"
	"github.com/abhisek/sightread/internal/screen"
	"github.com/abhisek/sightread/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 4500 * time.Millisecond
)

const clefArt = `  ╭─────────────────╮
  │        ╭╮       │
  │────────┼┼───────│
  │        │╯       │
  │───────╭┼────────│
  │      ╭╯│╮       │
  │─────┼──┼─┼──────│
  │      ╰─┼╯       │
  │────────┼────────│
  │      ●─╯        │
  ╰─────────────────╯`

// note frames cycle beside the clef
var noteFrames = []string{"♪", "♫"}

type tickMsg time.Time

// WelcomeScreen shows a splash animation before handing over to sign-in
// or the remembered parent's players.
type WelcomeScreen struct {
	nextFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that is replaced by the screen nextFactory
// builds once any key is pressed.
func New(nextFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		nextFactory: nextFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tea.Tick(tickInterval, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})

	case tea.KeyPressMsg:
		// Any key skips the rest of the animation.
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	// The factory may touch storage, so it runs off the update loop.
	factory := w.nextFactory
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: factory()}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	clefStyle := lipgloss.NewStyle().Foreground(theme.Primary)

	// Phase 1+: clef
	rendered := clefStyle.Render(clefArt)

	// Phase 2+: floating notes
	if w.elapsed >= phase1End {
		frame := w.tickCount % len(noteFrames)
		glyph := noteFrames[frame]

		accentStyle := lipgloss.NewStyle().Foreground(theme.Accent)
		secondaryStyle := lipgloss.NewStyle().Foreground(theme.Secondary)

		s1 := accentStyle.Render(glyph)
		s2 := secondaryStyle.Render(glyph)

		// Notes float beside the clef.
		lines := strings.Split(rendered, "\n")
		if len(lines) > 1 {
			lines[0] = s1 + "  " + lines[0] + "  " + s2
		}
		if len(lines) > 4 {
			lines[4] = s2 + "  " + lines[4] + "  " + s1
		}
		if len(lines) > 8 {
			lines[8] = s1 + "  " + lines[8] + "  " + s2
		}
		rendered = strings.Join(lines, "\n")
	}

	sections = append(sections, rendered)

	// Phase 3+: banner and tagline
	if w.elapsed >= phase2End {
		sections = append(sections, "")
		sections = append(sections, RenderBanner(width))
		sections = append(sections, "")

		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Let's read some notes!")
		sections = append(sections, tagline)
	}

	// "press any key" hint
	if w.elapsed >= phase2End {
		sections = append(sections, "")
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue")
		sections = append(sections, hint)
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
