package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sightread/internal/ui/theme"
)

// Button is one choice in a ButtonRow.
type Button struct {
	Label   string
	Hotkey  string
	OnPress func() tea.Cmd
}

// ButtonRow lays buttons out side by side; left/right or tab moves the
// focus, enter or a button's hotkey presses it.
type ButtonRow struct {
	Buttons []Button
	Focused int
}

// NewButtonRow creates a row with the first button focused.
func NewButtonRow(buttons ...Button) ButtonRow {
	return ButtonRow{Buttons: buttons}
}

// Update handles key events.
func (r ButtonRow) Update(msg tea.Msg) (ButtonRow, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(r.Buttons) == 0 {
		return r, nil
	}

	key := kmsg.String()
	switch key {
	case "left", "h", "shift+tab":
		r.Focused = (r.Focused - 1 + len(r.Buttons)) % len(r.Buttons)
		return r, nil
	case "right", "l", "tab":
		r.Focused = (r.Focused + 1) % len(r.Buttons)
		return r, nil
	case "enter":
		return r, r.press(r.Focused)
	}

	for i, b := range r.Buttons {
		if b.Hotkey != "" && strings.EqualFold(b.Hotkey, key) {
			r.Focused = i
			return r, r.press(i)
		}
	}
	return r, nil
}

func (r ButtonRow) press(i int) tea.Cmd {
	if b := r.Buttons[i]; b.OnPress != nil {
		return b.OnPress()
	}
	return nil
}

// View renders the row.
func (r ButtonRow) View() string {
	parts := make([]string, 0, len(r.Buttons))
	for i, b := range r.Buttons {
		label := b.Label
		if b.Hotkey != "" {
			label = "[" + strings.ToUpper(b.Hotkey) + "] " + label
		}
		if i == r.Focused {
			parts = append(parts, theme.ButtonActive.Render("▸ "+label))
		} else {
			parts = append(parts, theme.ButtonInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, spaced(parts)...)
}
