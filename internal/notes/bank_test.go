package notes

import (
	"errors"
	"testing"
)

func TestDefaultBank_Size(t *testing.T) {
	b := DefaultBank()
	if b.Len() != 36 {
		t.Fatalf("Len = %d, want 36", b.Len())
	}
	if got := len(b.Letters()); got != 7 {
		t.Errorf("Letters = %d, want 7", got)
	}
	if got := len(b.Accidentals()); got != 3 {
		t.Errorf("Accidentals = %d, want 3", got)
	}
}

func TestDefaultBank_NoDuplicates(t *testing.T) {
	seen := make(map[Card]bool)
	images := make(map[string]bool)
	for _, c := range DefaultBank().Cards() {
		if seen[c] {
			t.Errorf("duplicate card %+v", c)
		}
		seen[c] = true
		if images[c.Image] {
			t.Errorf("duplicate image handle %q", c.Image)
		}
		images[c.Image] = true
	}
}

func TestDefaultBank_StableOrder(t *testing.T) {
	first := DefaultBank().Cards()
	second := DefaultBank().Cards()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("card %d differs between calls: %+v vs %+v", i, first[i], second[i])
		}
	}
	if first[0].Image != "treble_a_ledger" {
		t.Errorf("first card = %q, want treble_a_ledger", first[0].Image)
	}
	if first[35].Image != "treble_g_line_sharp" {
		t.Errorf("last card = %q, want treble_g_line_sharp", first[35].Image)
	}
}

func TestBank_CardsReturnsCopy(t *testing.T) {
	b := DefaultBank()
	cards := b.Cards()
	cards[0] = Card{Letter: G, Accidental: Sharp, Image: "mutated"}
	if b.Cards()[0].Image == "mutated" {
		t.Error("mutating Cards() result changed the bank")
	}
}

func TestNewBank_Errors(t *testing.T) {
	tests := []struct {
		name  string
		cards []Card
		want  error
	}{
		{"empty", nil, ErrEmptyBank},
		{"duplicate", []Card{{A, Natural, "x"}, {A, Natural, "x"}}, ErrDuplicateCard},
		{"bad letter", []Card{{Letter(9), Natural, "x"}}, ErrInvalidCard},
		{"bad accidental", []Card{{A, Accidental(7), "x"}}, ErrInvalidCard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBank(tt.cards...)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewBank_SameNoteDifferentImage(t *testing.T) {
	b, err := NewBank(
		Card{A, Natural, "treble_a_ledger"},
		Card{A, Natural, "treble_a_space"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Len() != 2 {
		t.Errorf("Len = %d, want 2", b.Len())
	}
}

func TestBank_LettersAndAccidentalsFromCards(t *testing.T) {
	b := MustBank(
		Card{C, Natural, "c"},
		Card{A, Natural, "a"},
		Card{B, Natural, "b"},
	)
	letters := b.Letters()
	want := []Letter{A, B, C}
	if len(letters) != len(want) {
		t.Fatalf("Letters = %v, want %v", letters, want)
	}
	for i := range want {
		if letters[i] != want[i] {
			t.Errorf("Letters[%d] = %v, want %v", i, letters[i], want[i])
		}
	}
	accs := b.Accidentals()
	if len(accs) != 1 || accs[0] != Natural {
		t.Errorf("Accidentals = %v, want [natural]", accs)
	}
}

func TestBank_Filter(t *testing.T) {
	naturals, err := DefaultBank().Filter(func(c Card) bool { return c.Accidental == Natural })
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if naturals.Len() != 12 {
		t.Errorf("Len = %d, want 12", naturals.Len())
	}

	_, err = DefaultBank().Filter(func(Card) bool { return false })
	if !errors.Is(err, ErrEmptyBank) {
		t.Errorf("err = %v, want ErrEmptyBank", err)
	}
}

func TestImageHandleRoundTrip(t *testing.T) {
	for _, c := range DefaultBank().Cards() {
		pos, acc, ok := SplitImageHandle(c.Image)
		if !ok {
			t.Errorf("SplitImageHandle(%q) not ok", c.Image)
			continue
		}
		if acc != c.Accidental {
			t.Errorf("%q: accidental = %v, want %v", c.Image, acc, c.Accidental)
		}
		if ImageHandle(pos, acc) != c.Image {
			t.Errorf("ImageHandle(%q, %v) = %q, want %q", pos, acc, ImageHandle(pos, acc), c.Image)
		}
	}

	if _, _, ok := SplitImageHandle("bass_c_space"); ok {
		t.Error("expected non-treble handle to be rejected")
	}
}
