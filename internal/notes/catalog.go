package notes

import "strings"

// staffPosition is a place on the treble staff where a note head is drawn.
type staffPosition struct {
	name   string
	letter Letter
}

// trebleStaff lists the staff positions drawn in the catalog, low to high
// within each letter group.
var trebleStaff = []staffPosition{
	{"a_ledger", A},
	{"a_space", A},
	{"b_line", B},
	{"c_space", C},
	{"d_below", D},
	{"d_line", D},
	{"e_bottom", E},
	{"e_top_space", E},
	{"f_space", F},
	{"f_top_line", F},
	{"g_above", G},
	{"g_line", G},
}

var defaultBank = buildTrebleBank()

func buildTrebleBank() *Bank {
	cards := make([]Card, 0, len(trebleStaff)*3)
	for _, acc := range AllAccidentals() {
		for _, pos := range trebleStaff {
			cards = append(cards, Card{
				Letter:     pos.letter,
				Accidental: acc,
				Image:      ImageHandle(pos.name, acc),
			})
		}
	}
	return MustBank(cards...)
}

// DefaultBank returns the 36-card treble clef catalog: twelve staff
// positions, each natural, flat and sharp.
func DefaultBank() *Bank {
	return defaultBank
}

// ImageHandle names the image for a staff position and accidental,
// e.g. ImageHandle("a_ledger", Flat) == "treble_a_ledger_flat".
func ImageHandle(position string, acc Accidental) string {
	h := "treble_" + position
	if acc != Natural {
		h += "_" + acc.String()
	}
	return h
}

// SplitImageHandle is the inverse of ImageHandle. ok is false for handles
// that do not follow the catalog naming scheme.
func SplitImageHandle(handle string) (position string, acc Accidental, ok bool) {
	rest, found := strings.CutPrefix(handle, "treble_")
	if !found || rest == "" {
		return "", Natural, false
	}
	if p, found := strings.CutSuffix(rest, "_flat"); found {
		return p, Flat, true
	}
	if p, found := strings.CutSuffix(rest, "_sharp"); found {
		return p, Sharp, true
	}
	return rest, Natural, true
}
