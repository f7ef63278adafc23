package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sightread/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label   string
	Percent float64
	Suffix  string // drawn after the bar, e.g. "3/10" or "75%"
	Width   int
}

// NewProgressBar creates a bar that shows its percentage as the suffix.
func NewProgressBar(label string, percent float64, width int) ProgressBar {
	return ProgressBar{
		Label:   label,
		Percent: percent,
		Suffix:  fmt.Sprintf("%d%%", int(percent*100)),
		Width:   width,
	}
}

// NewStepBar creates a bar for done out of total steps, e.g. questions
// answered in a quiz.
func NewStepBar(label string, done, total, width int) ProgressBar {
	var pct float64
	if total > 0 {
		pct = float64(done) / float64(total)
	}
	return ProgressBar{
		Label:   label,
		Percent: pct,
		Suffix:  fmt.Sprintf("%d/%d", done, total),
		Width:   width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	suffixWidth := 0
	if p.Suffix != "" {
		suffixWidth = lipgloss.Width(p.Suffix) + 2
	}

	barWidth := p.Width - labelWidth - suffixWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	filled = max(0, min(filled, barWidth))
	empty := barWidth - filled

	result += lipgloss.NewStyle().
		Background(theme.Secondary).
		Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", empty))

	if p.Suffix != "" {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("  " + p.Suffix)
	}

	return result
}
