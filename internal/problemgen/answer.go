package problemgen

import (
	"github.com/abhisek/sightread/internal/notes"
)

// CheckAnswer reports whether candidate is the correct answer to q.
//
// Multiple choice answers must match the answer exactly, with no
// trimming or case folding. Builder answers
// are normalized first, so "ab", "A flat" and "A♭" are equivalent.
func CheckAnswer(candidate string, q *Question) bool {
	if q.Format == FormatBuilder {
		norm, err := notes.NormalizeAnswer(candidate)
		if err != nil {
			return false
		}
		return norm == q.Answer
	}
	return candidate == q.Answer
}
