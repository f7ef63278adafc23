package session

import "time"

// Delays controls how long feedback stays on screen before the caller
// advances. The session itself never sleeps.
type Delays struct {
	Correct time.Duration
	Wrong   time.Duration
}

// DefaultDelays matches the pacing children are used to in the app.
var DefaultDelays = Delays{
	Correct: time.Second,
	Wrong:   2 * time.Second,
}

// For returns the delay to show feedback for r.
func (d Delays) For(r Result) time.Duration {
	if r.Correct {
		return d.Correct
	}
	return d.Wrong
}

// FeedbackDelay returns DefaultDelays.For(r).
func FeedbackDelay(r Result) time.Duration {
	return DefaultDelays.For(r)
}
