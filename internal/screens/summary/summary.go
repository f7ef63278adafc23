package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sightread/internal/gems"
	"github.com/abhisek/sightread/internal/router"
	"github.com/abhisek/sightread/internal/screen"
	"github.com/abhisek/sightread/internal/screens/deps"
	"github.com/abhisek/sightread/internal/session"
	"github.com/abhisek/sightread/internal/ui/components"
	"github.com/abhisek/sightread/internal/ui/layout"
	"github.com/abhisek/sightread/internal/ui/theme"
)

// SummaryScreen displays the result of one quiz.
type SummaryScreen struct {
	summary *session.Summary
	gems    []gems.GemAward
	player  *deps.Player
	buttons components.ButtonRow
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.PlayerProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. playAgain builds a fresh quiz screen; when
// nil the Play again button is left out.
func New(summary *session.Summary, player *deps.Player, playAgain func() screen.Screen) *SummaryScreen {
	var buttons []components.Button
	if playAgain != nil {
		buttons = append(buttons, components.Button{
			Label:  "Play again",
			Hotkey: "p",
			OnPress: func() tea.Cmd {
				next := playAgain()
				return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
			},
		})
	}
	buttons = append(buttons, components.Button{
		Label:   "Home",
		Hotkey:  "h",
		OnPress: func() tea.Cmd { return func() tea.Msg { return router.PopScreenMsg{} } },
	})

	return &SummaryScreen{
		summary: summary,
		gems:    gems.Award(summary),
		player:  player,
		buttons: components.NewButtonRow(buttons...),
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Quiz Summary"
}

func (s *SummaryScreen) Player() (string, int) {
	return s.player.Name(), s.player.Score()
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Choose"},
		{Key: "←→", Description: "Move"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.buttons, cmd = s.buttons.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder

	title := "Quiz complete!"
	if !sum.Completed {
		title = "Quiz ended early"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(title))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Time: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Correct: %d/%d        Accuracy: %.0f%%        Points: +%d",
		sum.TotalCorrect, sum.TotalQuestions, sum.Accuracy*100, sum.Score)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	for _, g := range s.gems {
		line := fmt.Sprintf("%s %s %s Gem: %s",
			g.Type.Icon(), g.Rarity.DisplayName(), g.Type.DisplayName(), g.Reason)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(rarityColor(g.Rarity)).Render(line)))
		b.WriteString("\n")
	}
	if len(s.gems) > 0 {
		b.WriteString("\n")
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 40)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Notes")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	for _, line := range resultLines(sum.Results) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.buttons.View()))
	return b.String()
}

// resultLines renders one line per drawn note, padded to a common width.
func resultLines(results []session.NoteResult) []string {
	lines := make([]string, 0, len(results))
	for i, r := range results {
		var mark, detail string
		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case !r.Attempted:
			mark, detail = "·", "skipped"
			style = style.Foreground(theme.TextDim)
		case r.Correct:
			mark = "✓"
			style = style.Foreground(theme.Success)
		default:
			mark, detail = "✗", "you said "+r.Given
			style = style.Foreground(theme.Error)
		}
		line := fmt.Sprintf("%2d  %s  %-3s  %-14s", i+1, mark, r.Answer, detail)
		lines = append(lines, style.Render(line))
	}
	return lines
}

func rarityColor(r gems.Rarity) color.Color {
	switch r {
	case gems.RarityRare:
		return theme.Secondary
	case gems.RarityEpic:
		return theme.Primary
	case gems.RarityLegendary:
		return theme.ArcadeYellow
	default:
		return theme.Text
	}
}
