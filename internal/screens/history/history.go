package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sightread/internal/problemgen"
	"github.com/abhisek/sightread/internal/router"
	"github.com/abhisek/sightread/internal/screen"
	"github.com/abhisek/sightread/internal/screens/deps"
	"github.com/abhisek/sightread/internal/store"
	"github.com/abhisek/sightread/internal/ui/components"
	"github.com/abhisek/sightread/internal/ui/layout"
	"github.com/abhisek/sightread/internal/ui/theme"
)

const (
	loadTimeout = 5 * time.Second
	maxSessions = 50
)

type tab int

const (
	tabQuizzes tab = iota
	tabNotes
)

type historyLoadedMsg struct {
	Sessions []store.SessionEvent
	Notes    []store.NoteAccuracy
	Err      error
}

// HistoryScreen displays the player's past quizzes and per-note accuracy.
type HistoryScreen struct {
	deps     *deps.Deps
	player   *deps.Player
	sessions []store.SessionEvent
	notes    []store.NoteAccuracy
	tab      tab
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.PlayerProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen for player.
func New(d *deps.Deps, player *deps.Player) *HistoryScreen {
	return &HistoryScreen{
		deps:   d,
		player: player,
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.deps.Events
	if repo == nil || s.player.Profile == nil {
		return func() tea.Msg { return historyLoadedMsg{} }
	}
	profileID := s.player.Profile.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		sessions, err := repo.QuerySessionEvents(ctx, profileID, store.QueryOpts{Limit: maxSessions})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		// Accuracy is extra; a failure still shows the quiz list.
		acc, err := repo.NoteAccuracy(ctx, profileID)
		if err != nil {
			return historyLoadedMsg{Sessions: sessions}
		}
		return historyLoadedMsg{Sessions: sessions, Notes: acc}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) Player() (string, int) {
	return s.player.Name(), s.player.Score()
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Quizzes/Notes"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = "Could not load history."
			s.deps.Logger.Error().Err(msg.Err).Msg("load history")
		} else {
			s.sessions = msg.Sessions
			s.notes = msg.Notes
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab", "shift+tab":
			if s.tab == tabQuizzes {
				s.tab = tabNotes
			} else {
				s.tab = tabQuizzes
			}
			s.selected = 0
			return s, nil
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < s.rows()-1 {
				s.selected++
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) rows() int {
	if s.tab == tabNotes {
		return len(s.notes)
	}
	return len(s.sessions)
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render("\n\n" + s.errMsg)
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderTabs()))
	b.WriteString("\n\n")

	maxVisible := max(height-8, 3)
	start := max(0, s.selected-maxVisible+1)

	if s.tab == tabNotes {
		end := min(start+maxVisible, len(s.notes))
		for i := start; i < end; i++ {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				s.renderNote(s.notes[i], i == s.selected)))
			b.WriteString("\n")
		}
		return b.String()
	}

	end := min(start+maxVisible, len(s.sessions))
	for i := start; i < end; i++ {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			s.renderSession(s.sessions[i], i == s.selected)))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *HistoryScreen) renderTabs() string {
	labels := []struct {
		t     tab
		label string
	}{
		{tabQuizzes, fmt.Sprintf("Quizzes (%d)", len(s.sessions))},
		{tabNotes, fmt.Sprintf("Notes (%d)", len(s.notes))},
	}
	var tabs []string
	for _, l := range labels {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if l.t == s.tab {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		tabs = append(tabs, style.Render(l.label))
	}
	return strings.Join(tabs, "     ")
}

func (s *HistoryScreen) renderSession(ev store.SessionEvent, selected bool) string {
	dateStr := ev.Timestamp.Local().Format("Jan 02, 2006")
	durationStr := fmt.Sprintf("%d:%02d", ev.DurationSecs/60, ev.DurationSecs%60)

	var accuracy float64
	if ev.QuestionsAnswered > 0 {
		accuracy = float64(ev.CorrectAnswers) / float64(ev.QuestionsAnswered) * 100
	}

	prefix := "  "
	if selected {
		prefix = "> "
	}
	line := fmt.Sprintf("%s%s  %-7s %s  %2d/%-2d correct  %3.0f%%  ★ %d",
		prefix, dateStr, modeLabel(ev.Mode), durationStr,
		ev.CorrectAnswers, ev.QuestionsTotal, accuracy, ev.Score)

	style := lipgloss.NewStyle().Foreground(theme.Text)
	if selected {
		style = style.Foreground(theme.Primary).Bold(true)
	}
	return style.Render(line)
}

func (s *HistoryScreen) renderNote(na store.NoteAccuracy, selected bool) string {
	bar := components.NewProgressBar(fmt.Sprintf("%-3s", na.Note), na.Accuracy(), 40)
	bar.Suffix = fmt.Sprintf("%d/%d", na.Correct, na.Attempts)
	line := bar.View()
	if selected {
		line = lipgloss.NewStyle().Foreground(accuracyColor(na.Accuracy())).Render("▸ ") + line
	} else {
		line = "  " + line
	}
	return line
}

func modeLabel(mode string) string {
	if problemgen.Format(mode) == problemgen.FormatBuilder {
		return "builder"
	}
	return "quiz"
}

func accuracyColor(acc float64) color.Color {
	switch {
	case acc >= 0.9:
		return theme.Success
	case acc >= 0.7:
		return theme.Secondary
	case acc >= 0.5:
		return theme.Accent
	default:
		return theme.Error
	}
}
