package problemgen

import "github.com/abhisek/sightread/internal/notes"

// Question is a single sight-reading prompt ready for display.
type Question struct {
	// ID is unique within the owning session. IDs start at 1.
	ID int

	// Card is the note being shown.
	Card notes.Card

	// Options holds the answer choices for FormatMultipleChoice.
	// Empty for FormatBuilder.
	Options []string

	// Answer is the canonical correct answer, e.g. "A♭" or "C".
	Answer string

	Format Format
}

// Format describes how the learner provides their answer.
type Format string

const (
	// FormatMultipleChoice means the learner picks from up to 4 options.
	FormatMultipleChoice Format = "multiple_choice"

	// FormatBuilder means the learner composes letter and accidental.
	FormatBuilder Format = "builder"
)

// ParseFormat maps a user-facing mode name to a Format.
func ParseFormat(s string) (Format, bool) {
	switch s {
	case "", "mc", "quiz", "choice", string(FormatMultipleChoice):
		return FormatMultipleChoice, true
	case "build", string(FormatBuilder):
		return FormatBuilder, true
	}
	return "", false
}

// AnswerIndex returns the position of the correct answer in Options,
// or -1 when the question has no options.
func (q *Question) AnswerIndex() int {
	for i, o := range q.Options {
		if o == q.Answer {
			return i
		}
	}
	return -1
}
