package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sightread/internal/auth"
	"github.com/abhisek/sightread/internal/problemgen"
	"github.com/abhisek/sightread/internal/router"
	"github.com/abhisek/sightread/internal/screen"
	"github.com/abhisek/sightread/internal/screens/deps"
	"github.com/abhisek/sightread/internal/screens/home"
	"github.com/abhisek/sightread/internal/screens/parentauth"
	"github.com/abhisek/sightread/internal/screens/profiles"
	sessionscreen "github.com/abhisek/sightread/internal/screens/session"
	"github.com/abhisek/sightread/internal/screens/welcome"
	"github.com/abhisek/sightread/internal/ui/layout"
)

const restoreTimeout = 3 * time.Second

// Options configures the TUI.
type Options struct {
	Deps *deps.Deps

	// Player skips sign-in and starts at the player's home screen.
	Player *deps.Player

	// Format, with Player set, opens a quiz in this format right away.
	Format problemgen.Format
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	start  tea.Cmd
	width  int
	height int
}

// newAppModel creates a new AppModel. Without a player it starts at the
// welcome splash followed by the remembered parent's players, or parent
// sign-in.
func newAppModel(opts Options) AppModel {
	d := opts.Deps
	if opts.Player != nil && opts.Player.Profile != nil {
		m := AppModel{router: router.New(home.New(d, opts.Player))}
		if opts.Format != "" {
			quiz := sessionscreen.New(d, opts.Player, opts.Format)
			m.start = func() tea.Msg { return router.PushScreenMsg{Screen: quiz} }
		}
		return m
	}

	if d.SignIn == nil {
		d.SignIn = func() screen.Screen { return parentauth.New(d) }
	}
	root := welcome.New(func() screen.Screen { return afterWelcome(d) })
	return AppModel{router: router.New(root)}
}

// afterWelcome opens the remembered parent's players, or the sign-in
// screen when nobody is remembered.
func afterWelcome(d *deps.Deps) screen.Screen {
	ctx, cancel := context.WithTimeout(context.Background(), restoreTimeout)
	defer cancel()

	p, err := d.Auth.Restore(ctx)
	if err != nil {
		if !errors.Is(err, auth.ErrNoSession) {
			d.Logger.Error().Err(err).Msg("restore sign-in")
		}
		return d.SignIn()
	}
	d.Logger.Info().Int64("parent_id", p.ID).Msg("sign-in restored")
	return profiles.New(d, &deps.Player{Parent: p})
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.start)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.CloseAll()
			return m, tea.Quit
		case "esc":
			if !escapeHandled(m.router.Active()) {
				if m.router.Depth() > 1 {
					return m, func() tea.Msg { return router.PopScreenMsg{} }
				}
				return m, nil
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// escapeHandled reports whether s wants Esc for itself right now.
func escapeHandled(s screen.Screen) bool {
	h, ok := s.(screen.EscapeHandler)
	return ok && h.HandlesEscape()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	v.SetContent(m.render())
	return v
}

// render draws the header, active screen and footer.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	var player string
	var score int
	if active != nil {
		title = active.Title()
		if p, ok := active.(screen.PlayerProvider); ok {
			player, score = p.Player()
		}
	}

	header := layout.RenderHeader(title, player, score, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Deps == nil {
		return fmt.Errorf("app: missing dependencies")
	}
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
