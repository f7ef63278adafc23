package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sightread/internal/ui/theme"
)

const (
	arcadeTitleFull    = "♪  S · I · G · H · T · R · E · A · D  ♪"
	arcadeTitleCompact = "♪ SIGHTREAD ♪"
)

// renderTitle returns the styled title and greeting.
func renderTitle(name string, cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact || lipgloss.Width(title) > cw {
		title = arcadeTitleCompact
	}

	greeting := lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(fmt.Sprintf("Hi %s! Ready to read some notes?", name))

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title) + "\n\n" + greeting)
}

// renderStatsBar renders the player's stats in a bordered box matching
// content width.
func renderStatsBar(st stats, cw int, compact bool) string {
	scoreStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	quizStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	weakStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var text string
	if compact {
		text = fmt.Sprintf("%s %s %s",
			scoreStyle.Render(fmt.Sprintf("★%d", st.Score)),
			quizStyle.Render(fmt.Sprintf("♪%d", st.Quizzes)),
			weakText(st.Weakest, true, weakStyle, dimStyle),
		)
	} else {
		text = fmt.Sprintf("%s  %s  %s",
			scoreStyle.Render(fmt.Sprintf("★ %d POINTS", st.Score)),
			quizStyle.Render(fmt.Sprintf("♪ %d QUIZZES", st.Quizzes)),
			weakText(st.Weakest, false, weakStyle, dimStyle),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(text)
}

func weakText(note string, compact bool, active, dim lipgloss.Style) string {
	if note == "" {
		if compact {
			return dim.Render("✓")
		}
		return dim.Render("✓ NO TRICKY NOTES")
	}
	if compact {
		return active.Render("?" + note)
	}
	return active.Render("? PRACTICE " + note)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.ArcadeYellow).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ArcadeYellow).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	disabledBtn := normalBtn.Foreground(theme.TextDim)

	var buttons []string
	for i, label := range items {
		switch {
		case disabled[i]:
			buttons = append(buttons, disabledBtn.Render(label))
		case i == selected:
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		default:
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as plain lines for terminals
// where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		var line string
		switch {
		case disabled[i]:
			line = lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + label)
		case i == selected:
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + label + " ")
		default:
			line = lipgloss.NewStyle().Foreground(theme.Text).Render("   " + label)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
