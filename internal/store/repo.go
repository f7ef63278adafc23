package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a unique column already holds the value.
	ErrDuplicate = errors.New("already exists")
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Parent is a stored parent account.
type Parent struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Profile is a stored kid profile.
type Profile struct {
	ID        int64
	ParentID  int64
	Name      string
	Score     int
	CreatedAt time.Time
}

// ParentRepo persists parent accounts.
type ParentRepo interface {
	// Create inserts a parent. Returns ErrDuplicate if email is taken.
	Create(ctx context.Context, email, passwordHash string) (*Parent, error)

	// ByEmail returns the parent with email, or ErrNotFound.
	ByEmail(ctx context.Context, email string) (*Parent, error)

	// Get returns the parent with id, or ErrNotFound.
	Get(ctx context.Context, id int64) (*Parent, error)
}

// ProfileRepo persists kid profiles and their running scores.
type ProfileRepo interface {
	Create(ctx context.Context, parentID int64, name string) (*Profile, error)
	Get(ctx context.Context, id int64) (*Profile, error)

	// ListByParent returns the parent's profiles in creation order.
	ListByParent(ctx context.Context, parentID int64) ([]Profile, error)
	CountByParent(ctx context.Context, parentID int64) (int, error)

	// Delete removes a profile owned by parentID. Returns ErrNotFound if
	// no such profile belongs to the parent.
	Delete(ctx context.Context, parentID, id int64) error

	// AddScore atomically adds delta to the profile's score and returns
	// the new total.
	AddScore(ctx context.Context, id int64, delta int) (int, error)

	// Top returns profiles by score descending, then name. limit <= 0
	// means all.
	Top(ctx context.Context, limit int) ([]Profile, error)
}

// ParentSession is a remembered parent sign-in.
type ParentSession struct {
	Token     string
	ParentID  int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// SessionRepo keeps the parent sign-in remembered on this device. There
// is at most one.
type SessionRepo interface {
	// Save replaces any remembered sign-in with s.
	Save(ctx context.Context, s ParentSession) error

	// Current returns the remembered sign-in, or ErrNotFound.
	Current(ctx context.Context) (*ParentSession, error)

	// Touch moves the expiry of the sign-in with token. Returns
	// ErrNotFound if it was cleared meanwhile.
	Touch(ctx context.Context, token string, expiresAt time.Time) error

	Clear(ctx context.Context) error
}

// SessionEventData captures a quiz lifecycle event.
type SessionEventData struct {
	ProfileID         int64
	SessionID         string
	Action            string // "start" or "end"
	Mode              string
	QuestionsTotal    int
	QuestionsAnswered int
	CorrectAnswers    int
	Score             int
	DurationSecs      int
}

// SessionEvent is a stored SessionEventData.
type SessionEvent struct {
	SessionEventData
	Sequence  int64
	Timestamp time.Time
}

// AnswerEventData captures one answered question.
type AnswerEventData struct {
	ProfileID    int64
	SessionID    string
	QuestionID   int
	Note         string
	Image        string
	Given        string
	Correct      bool
	TimeMs       int
	AnswerFormat string
}

// NoteAccuracy aggregates answers for one note name.
type NoteAccuracy struct {
	Note     string
	Attempts int
	Correct  int
}

// Accuracy returns Correct/Attempts, or 0 with no attempts.
func (n NoteAccuracy) Accuracy() float64 {
	if n.Attempts == 0 {
		return 0
	}
	return float64(n.Correct) / float64(n.Attempts)
}

// EventRepo provides append and query access to quiz events.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// QuerySessionEvents returns the profile's "end" session events,
	// newest first.
	QuerySessionEvents(ctx context.Context, profileID int64, opts QueryOpts) ([]SessionEvent, error)

	// NoteAccuracy returns per-note totals for the profile, weakest first.
	NoteAccuracy(ctx context.Context, profileID int64) ([]NoteAccuracy, error)
}
