package home

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sightread/internal/problemgen"
	"github.com/abhisek/sightread/internal/router"
	"github.com/abhisek/sightread/internal/screen"
	"github.com/abhisek/sightread/internal/screens/deps"
	"github.com/abhisek/sightread/internal/screens/history"
	"github.com/abhisek/sightread/internal/screens/leaderboard"
	sessionscreen "github.com/abhisek/sightread/internal/screens/session"
	"github.com/abhisek/sightread/internal/store"
	"github.com/abhisek/sightread/internal/ui/components"
)

const (
	statsTimeout = 3 * time.Second

	// A note needs this many attempts before it can be called tricky.
	minTrickyAttempts = 3
	trickyAccuracy    = 0.7
	celebrateAccuracy = 0.9
)

// stats is what the dashboard shows about the player.
type stats struct {
	Score        int
	Quizzes      int
	Weakest      string
	LastAccuracy float64
}

type statsLoadedMsg struct {
	Quizzes      int
	Weakest      string
	LastAccuracy float64
	Err          error
}

// HomeScreen is the main menu for the active player.
type HomeScreen struct {
	deps          *deps.Deps
	player        *deps.Player
	menu          components.Menu
	menuLabels    []string
	disabled      map[int]bool
	stats         stats
	mascotVariant MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.PlayerProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a HomeScreen for player.
func New(d *deps.Deps, player *deps.Player) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			next := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}

	menuLabels := []string{"QUIZ", "NOTE BUILDER", "LEADERBOARD", "HISTORY", "SWITCH PLAYER", "EXIT"}
	disabled := map[int]bool{}
	if d.Events == nil {
		disabled[3] = true
	}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: push(func() screen.Screen {
			return sessionscreen.New(d, player, problemgen.FormatMultipleChoice)
		})},
		{Label: menuLabels[1], Action: push(func() screen.Screen {
			return sessionscreen.New(d, player, problemgen.FormatBuilder)
		})},
		{Label: menuLabels[2], Action: push(func() screen.Screen {
			return leaderboard.New(d, player)
		})},
		{Label: menuLabels[3], Disabled: disabled[3], Action: push(func() screen.Screen {
			return history.New(d, player)
		})},
		{Label: menuLabels[4], Action: func() tea.Cmd {
			return func() tea.Msg { return router.PopScreenMsg{} }
		}},
		{Label: menuLabels[5], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		deps:          d,
		player:        player,
		menu:          components.NewMenu(items),
		menuLabels:    menuLabels,
		disabled:      disabled,
		stats:         stats{Score: player.Score()},
		mascotVariant: MascotIdle,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume refreshes the dashboard after a quiz or another screen pops.
func (h *HomeScreen) Resume() tea.Cmd {
	h.stats.Score = h.player.Score()
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	repo := h.deps.Events
	if repo == nil || h.player.Profile == nil {
		return nil
	}
	profileID := h.player.Profile.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), statsTimeout)
		defer cancel()

		sessions, err := repo.QuerySessionEvents(ctx, profileID, store.QueryOpts{})
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		msg := statsLoadedMsg{Quizzes: len(sessions)}
		if len(sessions) > 0 && sessions[0].QuestionsAnswered > 0 {
			last := sessions[0]
			msg.LastAccuracy = float64(last.CorrectAnswers) / float64(last.QuestionsAnswered)
		}

		accuracy, err := repo.NoteAccuracy(ctx, profileID)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		msg.Weakest = trickiest(accuracy)
		return msg
	}
}

// trickiest returns the weakest note worth practicing, or "". accuracy is
// sorted weakest first.
func trickiest(accuracy []store.NoteAccuracy) string {
	for _, na := range accuracy {
		if na.Attempts < minTrickyAttempts {
			continue
		}
		if na.Accuracy() < trickyAccuracy {
			return na.Note
		}
		return ""
	}
	return ""
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(statsLoadedMsg); ok {
		if m.Err != nil {
			h.deps.Logger.Warn().Err(m.Err).Msg("load home stats")
			return h, nil
		}
		h.stats.Quizzes = m.Quizzes
		h.stats.Weakest = m.Weakest
		h.stats.LastAccuracy = m.LastAccuracy
		h.mascotVariant = mascotFor(h.stats)
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func mascotFor(st stats) MascotVariant {
	switch {
	case st.Weakest != "":
		return MascotPractice
	case st.Quizzes > 0 && st.LastAccuracy >= celebrateAccuracy:
		return MascotCelebrating
	}
	return MascotIdle
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(h.player.Name(), cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant, cw))
	}
	sections = append(sections, renderStatsBar(h.stats, cw, compact))
	if termHeight < 34 {
		sections = append(sections, renderArcadeMenuCompact(h.menuLabels, h.menu.Selected, cw, h.disabled))
	} else {
		sections = append(sections, renderArcadeMenu(h.menuLabels, h.menu.Selected, cw, h.disabled))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Player() (string, int) {
	return h.player.Name(), h.player.Score()
}
