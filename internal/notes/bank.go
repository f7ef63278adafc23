package notes

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyBank     = errors.New("question bank has no cards")
	ErrDuplicateCard = errors.New("duplicate card in question bank")
	ErrInvalidCard   = errors.New("invalid card")
)

// Bank is the fixed, ordered set of cards a quiz may draw from.
// It is immutable after construction and safe to share between sessions.
type Bank struct {
	cards       []Card
	letters     []Letter
	accidentals []Accidental
}

// NewBank builds a bank from cards, preserving their order.
func NewBank(cards ...Card) (*Bank, error) {
	if len(cards) == 0 {
		return nil, ErrEmptyBank
	}

	seen := make(map[Card]bool, len(cards))
	var hasLetter [7]bool
	var hasAccidental [3]bool
	for _, c := range cards {
		if !c.Letter.Valid() || !c.Accidental.Valid() {
			return nil, fmt.Errorf("%w: %+v", ErrInvalidCard, c)
		}
		if seen[c] {
			return nil, fmt.Errorf("%w: %s (%s)", ErrDuplicateCard, c.Answer(), c.Image)
		}
		seen[c] = true
		hasLetter[c.Letter] = true
		hasAccidental[c.Accidental] = true
	}

	b := &Bank{cards: append([]Card(nil), cards...)}
	for _, l := range AllLetters() {
		if hasLetter[l] {
			b.letters = append(b.letters, l)
		}
	}
	for _, a := range AllAccidentals() {
		if hasAccidental[a] {
			b.accidentals = append(b.accidentals, a)
		}
	}
	return b, nil
}

// MustBank is like NewBank but panics on error. Intended for static catalogs.
func MustBank(cards ...Card) *Bank {
	b, err := NewBank(cards...)
	if err != nil {
		panic(err)
	}
	return b
}

// Cards returns a copy of the catalog in stable order.
func (b *Bank) Cards() []Card {
	return append([]Card(nil), b.cards...)
}

// Len returns the number of cards.
func (b *Bank) Len() int {
	return len(b.cards)
}

// Letters returns the distinct letters present in the bank, in canonical order.
func (b *Bank) Letters() []Letter {
	return append([]Letter(nil), b.letters...)
}

// Accidentals returns the distinct accidentals present in the bank, in canonical order.
func (b *Bank) Accidentals() []Accidental {
	return append([]Accidental(nil), b.accidentals...)
}

// Filter returns a new bank holding only the cards keep accepts.
func (b *Bank) Filter(keep func(Card) bool) (*Bank, error) {
	var out []Card
	for _, c := range b.cards {
		if keep(c) {
			out = append(out, c)
		}
	}
	return NewBank(out...)
}
