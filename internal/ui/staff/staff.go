// Package staff draws catalog note images as a five-line treble staff in
// plain text.
package staff

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/sightread/internal/notes"
)

var ErrUnknownImage = errors.New("unknown note image")

// Steps are counted in staff positions above the bottom line (E4): lines
// sit on even steps 0..8, spaces on odd steps.
var positionSteps = map[string]int{
	"d_below":     -1,
	"e_bottom":    0,
	"f_space":     1,
	"g_line":      2,
	"a_space":     3,
	"b_line":      4,
	"c_space":     5,
	"d_line":      6,
	"e_top_space": 7,
	"f_top_line":  8,
	"g_above":     9,
	"a_ledger":    10,
}

const (
	topStep    = 11
	bottomStep = -3
	width      = 21
	noteCol    = 12
	clefCol    = 1
)

// Step returns the staff step for a catalog position name.
func Step(position string) (int, bool) {
	s, ok := positionSteps[position]
	return s, ok
}

// Render draws the image handle, e.g. "treble_b_line_flat". The result
// has one row per staff step, top to bottom, each exactly width cells.
func Render(handle string) (string, error) {
	rows, err := Rows(handle)
	if err != nil {
		return "", err
	}
	return strings.Join(rows, "\n"), nil
}

// Rows is Render split into lines.
func Rows(handle string) ([]string, error) {
	pos, acc, ok := notes.SplitImageHandle(handle)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownImage, handle)
	}
	step, ok := Step(pos)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownImage, handle)
	}

	rows := make([]string, 0, topStep-bottomStep+1)
	for s := topStep; s >= bottomStep; s-- {
		row := blankRow(s)
		if needsLedger(s, step) {
			for c := noteCol - 2; c <= noteCol+2; c++ {
				row[c] = '─'
			}
		}
		if s == step {
			row[noteCol] = '●'
			switch acc {
			case notes.Flat:
				row[noteCol-2] = '♭'
			case notes.Sharp:
				row[noteCol-2] = '♯'
			}
		}
		rows = append(rows, string(row))
	}
	return rows, nil
}

func onStaff(s int) bool {
	return s >= 0 && s <= 8 && s%2 == 0
}

func blankRow(s int) []rune {
	row := []rune(strings.Repeat(" ", width))
	if !onStaff(s) {
		return row
	}
	for c := range row {
		row[c] = '─'
	}
	row[0] = '│'
	row[width-1] = '│'
	if s == 2 {
		row[clefCol] = '𝄞'
	}
	return row
}

// needsLedger reports whether step s, off the staff, carries a short
// ledger line because the note sits at or beyond it.
func needsLedger(s, note int) bool {
	if s%2 != 0 || onStaff(s) {
		return false
	}
	if s > 8 {
		return note >= s
	}
	return note <= s
}
