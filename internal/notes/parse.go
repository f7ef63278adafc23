package notes

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var ErrInvalidAnswer = errors.New("not a note name")

// ParseAnswer reads a typed note name. It accepts upper or lower case
// letters followed by an optional accidental written as a glyph
// ("♭", "♯"), ASCII ("b", "#") or word ("flat", "sharp").
func ParseAnswer(s string) (Letter, Accidental, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, ErrInvalidAnswer
	}

	r, size := utf8.DecodeRuneInString(s)
	upper := strings.ToUpper(string(r))
	if len(upper) != 1 || upper[0] < 'A' || upper[0] > 'G' {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidAnswer, s)
	}
	letter := Letter(upper[0] - 'A')

	suffix := strings.ToLower(strings.TrimSpace(s[size:]))
	switch suffix {
	case "", "natural", "♮":
		return letter, Natural, nil
	case "♭", "b", "flat":
		return letter, Flat, nil
	case "♯", "#", "sharp":
		return letter, Sharp, nil
	}
	return 0, 0, fmt.Errorf("%w: %q", ErrInvalidAnswer, s)
}

// NormalizeAnswer rewrites a typed note name into display form ("ab" -> "A♭").
func NormalizeAnswer(s string) (string, error) {
	l, a, err := ParseAnswer(s)
	if err != nil {
		return "", err
	}
	return Name(l, a), nil
}
