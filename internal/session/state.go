package session

import (
	"github.com/abhisek/sightread/internal/notes"
	"github.com/abhisek/sightread/internal/problemgen"
)

// Phase represents the lifecycle stage of a quiz session.
type Phase int

const (
	PhaseInitializing Phase = iota // No questions drawn yet
	PhaseInProgress                // Cursor is on a question
	PhaseCompleted                 // Cursor has passed the last question
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseInProgress:
		return "in_progress"
	case PhaseCompleted:
		return "completed"
	}
	return "unknown"
}

// ScoreSink receives point awards for correct answers. Implementations
// own accumulation and persistence; the session never waits on them.
type ScoreSink interface {
	ApplyScoreDelta(points int)
}

// ScoreSinkFunc adapts a plain function to ScoreSink.
type ScoreSinkFunc func(points int)

func (f ScoreSinkFunc) ApplyScoreDelta(points int) { f(points) }

// Result is the outcome of answering the current question.
type Result struct {
	QuestionID int
	Correct    bool
	Answer     string // canonical correct answer
	Given      string // what the learner submitted
	Points     int    // points awarded, 0 when wrong
}

// NoteResult records how one question went, for the summary screen.
type NoteResult struct {
	QuestionID int
	Card       notes.Card
	Answer     string
	Given      string
	Attempted  bool
	Correct    bool
}

func newNoteResult(q problemgen.Question) NoteResult {
	return NoteResult{
		QuestionID: q.ID,
		Card:       q.Card,
		Answer:     q.Answer,
	}
}
