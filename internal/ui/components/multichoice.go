package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// MultiChoice is a numbered option picker. Options are chosen with the
// number keys 1-9 or moved with the arrows and confirmed with enter.
type MultiChoice struct {
	Options     []string
	Answer      string
	Selected    int
	Submitted   bool
	ChosenIndex int
}

// NewMultiChoice creates a picker over options; answer is the correct
// option text, used only when revealing.
func NewMultiChoice(options []string, answer string) MultiChoice {
	return MultiChoice{
		Options:     options,
		Answer:      answer,
		ChosenIndex: -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation. It marks the picker submitted when
// an option is chosen; callers read Chosen afterwards.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted || len(m.Options) == 0 {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k", "left":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j", "right":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter", "space":
		m.choose(m.Selected)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.Options) {
				m.Selected = i
				m.choose(i)
			}
		}
	}

	return m, nil
}

func (m *MultiChoice) choose(i int) {
	m.Submitted = true
	m.ChosenIndex = i
}

// Chosen returns the submitted option text.
func (m MultiChoice) Chosen() (string, bool) {
	if !m.Submitted || m.ChosenIndex < 0 || m.ChosenIndex >= len(m.Options) {
		return "", false
	}
	return m.Options[m.ChosenIndex], true
}

// optionWidth fits "4  C♯" with a pointer.
const optionWidth = 9

// View renders the options in one row of boxes.
func (m MultiChoice) View() string {
	boxes := make([]string, 0, len(m.Options))
	for i, opt := range m.Options {
		boxes = append(boxes, OptionBox(fmt.Sprintf("%d  %s", i+1, opt), m.state(i), optionWidth))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, spaced(boxes)...)
}

func (m MultiChoice) state(i int) OptionState {
	switch {
	case m.Submitted && m.Options[i] == m.Answer:
		return OptionRight
	case m.Submitted && i == m.ChosenIndex:
		return OptionWrong
	case m.Submitted:
		return OptionMuted
	}
	return FocusState(i == m.Selected)
}

// IsCorrect returns true if the chosen option is the answer.
func (m MultiChoice) IsCorrect() bool {
	chosen, ok := m.Chosen()
	return ok && chosen == m.Answer
}

func spaced(parts []string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, strings.Repeat(" ", 2))
		}
		out = append(out, p)
	}
	return out
}
