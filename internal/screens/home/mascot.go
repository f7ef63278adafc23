package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sightread/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default purple
	MascotCelebrating                      // Gold, after a near-perfect quiz
	MascotPractice                         // Cyan, a note keeps tripping the player up
)

const mascotIdle = `   ┌──┐
   │  │
 ╭─┤  │
 │◉◡◉│
 ╰───╯`

const mascotCelebrating = ` ★ ┌──┐ ★
   │  │
 ╭─┤  │
 │^◡^│
 ╰───╯`

const mascotPractice = `   ┌──┐
   │  │ ?
 ╭─┤  │
 │◉_◉│
 ╰───╯`

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotIdle
	if len(variant) > 0 {
		v = variant[0]
	}

	var art string
	var fg = theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.ArcadeYellow
	case MascotPractice:
		art = mascotPractice
		fg = theme.ArcadeCyan
	default:
		art = mascotIdle
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
