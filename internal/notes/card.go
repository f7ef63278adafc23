package notes

// Card is a single drawable quiz item: a note on the staff with an
// accidental and a handle to the image the presentation layer draws.
type Card struct {
	Letter     Letter
	Accidental Accidental

	// Image is opaque to the quiz core. The catalog uses names like
	// "treble_a_ledger_flat"; the UI maps them to a staff drawing.
	Image string
}

// Answer returns the expected answer for this card, e.g. "A♭" or "C".
func (c Card) Answer() string {
	return Name(c.Letter, c.Accidental)
}
