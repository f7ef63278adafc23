package session

import (
	sess "github.com/abhisek/sightread/internal/session"
)

// sessionInitMsg is sent when the quiz has been drawn and its start
// event recorded.
type sessionInitMsg struct {
	Session *sess.Session
	Keeper  scoreKeeper
	Err     error
}

// advanceMsg fires when the feedback delay for a question has passed.
type advanceMsg struct {
	QuestionID int
}

// sessionEndMsg is sent to trigger the session end flow.
type sessionEndMsg struct{}

// sessionSavedMsg is sent once pending score writes have drained and the
// end event is stored.
type sessionSavedMsg struct {
	Summary *sess.Summary
	Total   int
}
