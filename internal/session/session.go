package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/sightread/internal/notes"
	"github.com/abhisek/sightread/internal/problemgen"
)

// DefaultPointsPerCorrect is awarded for every correct answer.
const DefaultPointsPerCorrect = 10

// Session is a single quiz run over a fixed set of drawn cards.
//
// The session is driven by one caller at a time; the mutex only keeps
// delayed advances and reads from the render loop consistent.
type Session struct {
	mu sync.Mutex

	id     string
	format problemgen.Format
	points int
	sink   ScoreSink
	now    func() time.Time

	phase     Phase
	questions []problemgen.Question
	cursor    int
	nextID    int

	attempted bool
	last      *Result
	results   []NoteResult

	startedAt time.Time
	endedAt   time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithFormat sets how questions are answered. Defaults to multiple choice.
func WithFormat(f problemgen.Format) Option {
	return func(s *Session) { s.format = f }
}

// WithPointsPerCorrect overrides DefaultPointsPerCorrect.
func WithPointsPerCorrect(n int) Option {
	return func(s *Session) { s.points = n }
}

// WithID sets the session ID. Defaults to a random UUID.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// WithClock overrides time.Now for duration tracking.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New creates a session in PhaseInitializing. sink may be nil.
func New(sink ScoreSink, opts ...Option) *Session {
	s := &Session{
		format: problemgen.FormatMultipleChoice,
		points: DefaultPointsPerCorrect,
		sink:   sink,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = uuid.New().String()
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Format returns the answer format used by every question.
func (s *Session) Format() problemgen.Format { return s.format }

// Start draws min(target, bank.Len()) distinct cards and builds their
// questions. It returns false without side effects if the session has
// already been started or bank is nil.
func (s *Session) Start(target int, bank *notes.Bank, rng problemgen.RandomSource) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseInitializing || bank == nil {
		return false
	}
	s.startedAt = s.now()

	pool := bank.Cards()
	n := min(max(target, 0), len(pool))
	s.questions = make([]problemgen.Question, 0, n)
	s.results = make([]NoteResult, 0, n)
	for range n {
		j := rng.IntN(len(pool))
		card := pool[j]
		pool = append(pool[:j], pool[j+1:]...)

		s.nextID++
		q := problemgen.Generate(s.nextID, card, bank, s.format, rng)
		s.questions = append(s.questions, q)
		s.results = append(s.results, newNoteResult(q))
	}

	if len(s.questions) == 0 {
		s.complete()
		return true
	}
	s.phase = PhaseInProgress
	return true
}

// CurrentQuestion returns the question at the cursor, or nil when the
// session is not in progress.
func (s *Session) CurrentQuestion() *problemgen.Question {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseInProgress {
		return nil
	}
	q := s.questions[s.cursor]
	return &q
}

// Answer grades candidate against the current question. Only the first
// call per question counts: later calls return the recorded result and
// false. A correct first answer emits one score delta to the sink.
func (s *Session) Answer(candidate string) (Result, bool) {
	s.mu.Lock()
	if s.phase != PhaseInProgress {
		s.mu.Unlock()
		return Result{}, false
	}
	if s.attempted {
		r := *s.last
		s.mu.Unlock()
		return r, false
	}

	q := &s.questions[s.cursor]
	r := Result{
		QuestionID: q.ID,
		Correct:    problemgen.CheckAnswer(candidate, q),
		Answer:     q.Answer,
		Given:      candidate,
	}
	if r.Correct {
		r.Points = s.points
	}
	s.attempted = true
	s.last = &r

	nr := &s.results[s.cursor]
	nr.Attempted = true
	nr.Correct = r.Correct
	nr.Given = candidate

	sink := s.sink
	s.mu.Unlock()

	if r.Correct && sink != nil && r.Points != 0 {
		sink.ApplyScoreDelta(r.Points)
	}
	return r, true
}

// Advance moves to the next question. It returns false when the session
// is not in progress.
func (s *Session) Advance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advance()
}

// AdvancePast advances only if the cursor is still on questionID. Delayed
// callers use it so a stale or repeated timer never skips a question.
func (s *Session) AdvancePast(questionID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseInProgress || s.questions[s.cursor].ID != questionID {
		return false
	}
	return s.advance()
}

func (s *Session) advance() bool {
	if s.phase != PhaseInProgress {
		return false
	}
	s.cursor++
	s.attempted = false
	s.last = nil
	if s.cursor >= len(s.questions) {
		s.complete()
	}
	return true
}

func (s *Session) complete() {
	s.phase = PhaseCompleted
	s.endedAt = s.now()
}

// IsCompleted reports whether every drawn question has been passed.
func (s *Session) IsCompleted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase == PhaseCompleted
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Progress returns the zero-based cursor and the number of drawn questions.
func (s *Session) Progress() (index, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor, len(s.questions)
}

// Attempted reports whether the current question has been answered.
func (s *Session) Attempted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempted
}

// LastResult returns the result for the current question, if answered.
func (s *Session) LastResult() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return Result{}, false
	}
	return *s.last, true
}

// Questions returns a copy of every drawn question in order.
func (s *Session) Questions() []problemgen.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]problemgen.Question, len(s.questions))
	copy(out, s.questions)
	return out
}
