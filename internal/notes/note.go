package notes

// Letter is a natural note name on the staff.
type Letter int

const (
	A Letter = iota
	B
	C
	D
	E
	F
	G
)

// AllLetters returns every note letter in canonical order.
func AllLetters() []Letter {
	return []Letter{A, B, C, D, E, F, G}
}

// String returns the letter name, e.g. "A".
func (l Letter) String() string {
	if l < A || l > G {
		return "?"
	}
	return string(rune('A' + int(l)))
}

// Valid reports whether l is one of A through G.
func (l Letter) Valid() bool {
	return l >= A && l <= G
}

// Accidental modifies the pitch of a letter.
type Accidental int

const (
	Natural Accidental = iota
	Flat
	Sharp
)

// AllAccidentals returns every accidental in canonical order.
func AllAccidentals() []Accidental {
	return []Accidental{Natural, Flat, Sharp}
}

// Glyph returns the suffix used when rendering an answer.
// Naturals render with no glyph.
func (a Accidental) Glyph() string {
	switch a {
	case Flat:
		return "♭"
	case Sharp:
		return "♯"
	default:
		return ""
	}
}

// String returns the accidental name.
func (a Accidental) String() string {
	switch a {
	case Natural:
		return "natural"
	case Flat:
		return "flat"
	case Sharp:
		return "sharp"
	default:
		return "unknown"
	}
}

// Valid reports whether a is a known accidental.
func (a Accidental) Valid() bool {
	return a >= Natural && a <= Sharp
}

// Name joins a letter and accidental into the displayed answer string.
func Name(l Letter, a Accidental) string {
	return l.String() + a.Glyph()
}
