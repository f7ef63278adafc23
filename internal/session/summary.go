package session

import (
	"time"

	"github.com/abhisek/sightread/internal/problemgen"
)

// Summary holds the data displayed on the summary screen.
type Summary struct {
	SessionID      string
	Format         problemgen.Format
	Duration       time.Duration
	TotalQuestions int
	Answered       int
	TotalCorrect   int
	Score          int
	Accuracy       float64
	Results        []NoteResult
	Completed      bool
}

// Summary snapshots the session. It may be called at any phase; an
// unfinished session reports the time elapsed so far.
func (s *Session) Summary() *Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := &Summary{
		SessionID:      s.id,
		Format:         s.format,
		TotalQuestions: len(s.questions),
		Results:        make([]NoteResult, len(s.results)),
		Completed:      s.phase == PhaseCompleted,
	}
	copy(sum.Results, s.results)

	for _, r := range s.results {
		if !r.Attempted {
			continue
		}
		sum.Answered++
		if r.Correct {
			sum.TotalCorrect++
		}
	}
	sum.Score = sum.TotalCorrect * s.points
	if sum.Answered > 0 {
		sum.Accuracy = float64(sum.TotalCorrect) / float64(sum.Answered)
	}

	switch {
	case s.startedAt.IsZero():
	case s.endedAt.IsZero():
		sum.Duration = s.now().Sub(s.startedAt)
	default:
		sum.Duration = s.endedAt.Sub(s.startedAt)
	}
	return sum
}
