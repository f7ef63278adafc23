package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMultiChoice_NumberKeyChooses(t *testing.T) {
	m := NewMultiChoice([]string{"A", "B♭", "C♯", "D"}, "C♯")

	m, _ = m.Update(key('3'))

	chosen, ok := m.Chosen()
	assert.True(t, ok)
	assert.Equal(t, "C♯", chosen)
	assert.True(t, m.IsCorrect())
}

func TestMultiChoice_OutOfRangeNumberIgnored(t *testing.T) {
	m := NewMultiChoice([]string{"A", "B", "C"}, "A")

	m, _ = m.Update(key('4'))

	_, ok := m.Chosen()
	assert.False(t, ok)
	assert.False(t, m.Submitted)
}

func TestMultiChoice_ArrowsThenEnter(t *testing.T) {
	m := NewMultiChoice([]string{"A", "B", "C"}, "A")

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	chosen, _ := m.Chosen()
	assert.Equal(t, "C", chosen)
	assert.False(t, m.IsCorrect())
}

func TestMultiChoice_LockedAfterSubmit(t *testing.T) {
	m := NewMultiChoice([]string{"A", "B"}, "A")
	m, _ = m.Update(key('2'))
	m, _ = m.Update(key('1'))

	chosen, _ := m.Chosen()
	assert.Equal(t, "B", chosen)
}

func TestMultiChoice_RevealStates(t *testing.T) {
	m := NewMultiChoice([]string{"A", "B", "C"}, "A")
	assert.Equal(t, OptionFocused, m.state(0))
	assert.Equal(t, OptionIdle, m.state(1))

	m, _ = m.Update(key('2'))
	assert.Equal(t, OptionRight, m.state(0))
	assert.Equal(t, OptionWrong, m.state(1))
	assert.Equal(t, OptionMuted, m.state(2))
}

func TestOptionBox_PointerOnlyWhenItFits(t *testing.T) {
	assert.Contains(t, OptionBox("1  C♯", OptionFocused, 9), "▸ 1  C♯")
	assert.NotContains(t, OptionBox("1  C♯", OptionFocused, 6), "▸")
	assert.NotContains(t, OptionBox("1  C♯", OptionIdle, 9), "▸")
}

func TestContentWidth(t *testing.T) {
	assert.Equal(t, minContentWidth, ContentWidth(10))
	assert.Equal(t, 44, ContentWidth(50))
	assert.Equal(t, maxContentWidth, ContentWidth(200))
}

func TestMenu_SkipsDisabledAndWraps(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "one"},
		{Label: "two", Disabled: true},
		{Label: "three"},
	})

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 2, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 0, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 2, m.Selected)
}

func TestMenu_EnterRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{{Label: "go", Action: func() tea.Cmd {
		ran = true
		return nil
	}}})

	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.True(t, ran)
}

func TestButtonRow_Hotkey(t *testing.T) {
	pressed := ""
	row := NewButtonRow(
		Button{Label: "Yes", Hotkey: "y", OnPress: func() tea.Cmd { pressed = "yes"; return nil }},
		Button{Label: "No", Hotkey: "n", OnPress: func() tea.Cmd { pressed = "no"; return nil }},
	)

	row, _ = row.Update(key('n'))
	assert.Equal(t, "no", pressed)
	assert.Equal(t, 1, row.Focused)
}

func TestButtonRow_TabWraps(t *testing.T) {
	row := NewButtonRow(Button{Label: "a"}, Button{Label: "b"})

	row, _ = row.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, 1, row.Focused)
	row, _ = row.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, 0, row.Focused)
}

func TestStepBar(t *testing.T) {
	bar := NewStepBar("Notes", 3, 10, 40)
	assert.Equal(t, "3/10", bar.Suffix)
	assert.InDelta(t, 0.3, bar.Percent, 1e-9)

	empty := NewStepBar("", 0, 0, 40)
	assert.Equal(t, 0.0, empty.Percent)
}

func TestNoteInput_FiltersCharacters(t *testing.T) {
	in := NewNoteInput("note")
	in, _ = in.Update(key('x'))
	in, _ = in.Update(key('C'))
	in, _ = in.Update(key('#'))

	assert.Equal(t, "C#", in.Value())
}
