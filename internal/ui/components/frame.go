package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sightread/internal/ui/theme"
)

// The staff drawing needs minContentWidth columns to stay readable.
const (
	minContentWidth = 24
	maxContentWidth = 64
)

// ContentWidth returns the inner column width for a frame of frameWidth:
// the frame border and padding take 6 columns.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, minContentWidth), maxContentWidth)
}

// Frame draws the double-border screen frame and centers content in it.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card is a rounded panel cw columns wide for forms.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Padding(1, 2).
		Render(content)
}

// OptionState is how an option box is drawn.
type OptionState int

const (
	OptionIdle OptionState = iota
	OptionFocused
	OptionRight // the answer, once revealed
	OptionWrong // the kid's pick, when it was not the answer
	OptionMuted // other options after answering
)

// OptionBox draws one selectable box of the given width. Focused boxes
// get a pointer when there is room for it.
func OptionBox(label string, state OptionState, width int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Foreground(theme.Text)

	switch state {
	case OptionFocused:
		style = style.Foreground(theme.Primary).BorderForeground(theme.ArcadeYellow).Bold(true)
		if lipgloss.Width(label)+4 <= width {
			label = "▸ " + label
		}
	case OptionRight:
		style = style.Foreground(theme.Success).BorderForeground(theme.Success).Bold(true)
	case OptionWrong:
		style = style.Foreground(theme.Error).BorderForeground(theme.Error).Bold(true)
	case OptionMuted:
		style = style.Foreground(theme.TextDim)
	}
	return style.Render(label)
}

// FocusState maps a list cursor to OptionFocused or OptionIdle.
func FocusState(focused bool) OptionState {
	if focused {
		return OptionFocused
	}
	return OptionIdle
}
