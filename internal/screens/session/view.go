package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sightread/internal/notes"
	"github.com/abhisek/sightread/internal/problemgen"
	"github.com/abhisek/sightread/internal/ui/components"
	"github.com/abhisek/sightread/internal/ui/staff"
	"github.com/abhisek/sightread/internal/ui/theme"
)

// renderQuestionView renders the staff, the prompt and the answer area.
// While feedback is showing the answer area reveals the result.
func (s *SessionScreen) renderQuestionView(width, height int) string {
	q := s.quiz.CurrentQuestion()
	if q == nil {
		return renderLoading(width, height)
	}

	var b strings.Builder

	index, total := s.quiz.Progress()
	bar := components.NewStepBar("Note", index+1, total, min(width-8, 50))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderStaff(q.Card.Image)))
	b.WriteString("\n\n")

	prompt := "Which note is this?"
	if q.Format == problemgen.FormatBuilder {
		prompt = "Build the note you see"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(prompt))
	b.WriteString("\n\n")

	if q.Format == problemgen.FormatBuilder {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderBuilder()))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.mc.View()))
	}
	b.WriteString("\n\n")

	if s.feedback != nil {
		b.WriteString(s.renderFeedback(width))
	}

	return b.String()
}

func renderStaff(image string) string {
	drawing, err := staff.Render(image)
	if err != nil {
		drawing = fmt.Sprintf("(missing image %s)", image)
	}
	drawing = strings.ReplaceAll(drawing, "●",
		lipgloss.NewStyle().Foreground(theme.NoteHead).Bold(true).Render("●"))
	return theme.StaffBox.Render(drawing)
}

// renderBuilder renders the typed answer with a live preview of how it
// will be read.
func (s *SessionScreen) renderBuilder() string {
	line := s.input.View()
	if v := s.input.Value(); v != "" {
		if name, err := notes.NormalizeAnswer(v); err == nil {
			line += "   " + lipgloss.NewStyle().Foreground(theme.Secondary).Render("= "+name)
		} else {
			line += "   " + lipgloss.NewStyle().Foreground(theme.TextDim).Render("?")
		}
	}
	return line
}

// renderFeedback renders the result line under the answer area.
func (s *SessionScreen) renderFeedback(width int) string {
	r := s.feedback

	var b strings.Builder
	if r.Correct {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render(fmt.Sprintf("Correct! +%d", r.Points)))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Not quite"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("That note is %s", r.Answer)))
	}
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press any key to continue..."))
	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("End the quiz early?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Points you already earned are kept."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, end quiz"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Shuffling the notes...")
}

// renderError renders an error message.
func renderError(width, height int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
