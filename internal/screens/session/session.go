package session

import (
	"context"
	"errors"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/sightread/internal/problemgen"
	"github.com/abhisek/sightread/internal/profile"
	"github.com/abhisek/sightread/internal/router"
	"github.com/abhisek/sightread/internal/screen"
	"github.com/abhisek/sightread/internal/screens/deps"
	"github.com/abhisek/sightread/internal/screens/summary"
	sess "github.com/abhisek/sightread/internal/session"
	"github.com/abhisek/sightread/internal/store"
	"github.com/abhisek/sightread/internal/ui/components"
	"github.com/abhisek/sightread/internal/ui/layout"
)

const eventTimeout = 2 * time.Second

var errNotStarted = errors.New("could not start the quiz")

// scoreKeeper is the score sink plus the lifecycle the screen drives.
type scoreKeeper interface {
	sess.ScoreSink
	Total() int
	Close()
}

// SessionScreen runs one quiz for the active profile, in multiple-choice
// or note-builder format.
type SessionScreen struct {
	deps   *deps.Deps
	player *deps.Player
	format problemgen.Format
	logger zerolog.Logger

	quiz   *sess.Session
	keeper scoreKeeper
	delays sess.Delays

	mc    components.MultiChoice
	input components.TextInput

	feedback      *sess.Result
	confirmQuit   bool
	questionStart time.Time
	earned        int
	ending        bool
	errMsg        string

	finishOnce sync.Once
	saved      sessionSavedMsg
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.EscapeHandler = (*SessionScreen)(nil)
var _ screen.PlayerProvider = (*SessionScreen)(nil)
var _ screen.Closer = (*SessionScreen)(nil)

// New creates a SessionScreen. The quiz is drawn in Init.
func New(d *deps.Deps, player *deps.Player, format problemgen.Format) *SessionScreen {
	return &SessionScreen{
		deps:   d,
		player: player,
		format: format,
		logger: d.Logger.With().Str("component", "quiz").Str("format", string(format)).Logger(),
		delays: d.Delays(),
		input:  components.NewNoteInput("Type the note, e.g. Bb or F#"),
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	return s.initSession()
}

func (s *SessionScreen) Title() string {
	if s.format == problemgen.FormatBuilder {
		return "Note Builder"
	}
	return "Quiz"
}

func (s *SessionScreen) HandlesEscape() bool { return true }

func (s *SessionScreen) Player() (string, int) {
	return s.player.Name(), s.player.Score() + s.earned
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.quiz == nil:
		return nil
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "End quiz"},
			{Key: "N", Description: "Keep going"},
		}
	case s.feedback != nil:
		return []layout.KeyHint{
			{Key: "any key", Description: "Next note"},
			{Key: "Esc", Description: "Quit"},
		}
	case s.format == problemgen.FormatBuilder:
		return []layout.KeyHint{
			{Key: "A-G # b", Description: "Build note"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "←→", Description: "Move"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}
	if s.quiz == nil {
		return renderLoading(width, height)
	}
	if s.confirmQuit {
		return renderQuitConfirm(width, height)
	}
	return s.renderQuestionView(width, height)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionInitMsg:
		return s.handleInit(msg)

	case advanceMsg:
		return s.handleAdvance(msg.QuestionID)

	case sessionEndMsg:
		return s.handleSessionEnd()

	case sessionSavedMsg:
		return s.handleSessionSaved(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.acceptingInput() && s.format == problemgen.FormatBuilder {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// initSession draws the quiz and records its start.
func (s *SessionScreen) initSession() tea.Cmd {
	d := s.deps
	player := s.player
	format := s.format
	logger := s.logger
	return func() tea.Msg {
		var keeper scoreKeeper
		if d.Profiles != nil && player != nil && player.Profile != nil {
			keeper = profile.NewScoreKeeper(d.Profiles.Repo(), player.Profile.ID, player.Profile.Score, d.Logger)
		}

		var sink sess.ScoreSink
		if keeper != nil {
			sink = keeper
		}
		quiz := sess.New(sink, sess.WithFormat(format), sess.WithPointsPerCorrect(d.Points()))
		if !quiz.Start(d.Questions(), d.BankOrDefault(), d.NewSource()) {
			if keeper != nil {
				keeper.Close()
			}
			return sessionInitMsg{Err: errNotStarted}
		}

		_, total := quiz.Progress()
		logger.Info().Str("session_id", quiz.ID()).Int("questions", total).Msg("quiz started")
		appendSessionEvent(d.Events, logger, store.SessionEventData{
			ProfileID:      profileID(player),
			SessionID:      quiz.ID(),
			Action:         "start",
			Mode:           string(format),
			QuestionsTotal: total,
		})
		return sessionInitMsg{Session: quiz, Keeper: keeper}
	}
}

func (s *SessionScreen) handleInit(msg sessionInitMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.quiz = msg.Session
	s.keeper = msg.Keeper
	if s.quiz.IsCompleted() {
		return s, endCmd()
	}
	return s, s.loadQuestion()
}

// loadQuestion resets the answer widgets for the current question.
func (s *SessionScreen) loadQuestion() tea.Cmd {
	q := s.quiz.CurrentQuestion()
	if q == nil {
		return nil
	}
	s.feedback = nil
	s.questionStart = time.Now()
	if q.Format == problemgen.FormatBuilder {
		s.input.Reset()
		return s.input.Focus()
	}
	s.mc = components.NewMultiChoice(q.Options, q.Answer)
	return nil
}

func (s *SessionScreen) acceptingInput() bool {
	return s.quiz != nil && s.feedback == nil && !s.confirmQuit && !s.ending && s.quiz.Phase() == sess.PhaseInProgress
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state: any key goes back.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.quiz == nil || s.ending {
		return s, nil
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s, endCmd()
		case "n", "N", "esc":
			s.confirmQuit = false
			if s.feedback != nil {
				return s, s.scheduleAdvance(*s.feedback)
			}
		}
		return s, nil
	}

	if key == "esc" {
		s.confirmQuit = true
		return s, nil
	}

	// Feedback: any key skips the rest of the delay. The pending tick
	// then finds the cursor moved and does nothing.
	if s.feedback != nil {
		return s.handleAdvance(s.feedback.QuestionID)
	}

	if !s.acceptingInput() {
		return s, nil
	}

	if s.format == problemgen.FormatBuilder {
		if key == "enter" {
			if s.input.Value() == "" {
				return s, nil
			}
			return s.submitAnswer(s.input.Value())
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	s.mc, _ = s.mc.Update(msg)
	if chosen, ok := s.mc.Chosen(); ok {
		return s.submitAnswer(chosen)
	}
	return s, nil
}

// submitAnswer grades given and shows feedback until the delay passes.
func (s *SessionScreen) submitAnswer(given string) (screen.Screen, tea.Cmd) {
	q := s.quiz.CurrentQuestion()
	if q == nil {
		return s, nil
	}
	r, ok := s.quiz.Answer(given)
	if !ok {
		return s, nil
	}
	s.feedback = &r
	s.earned += r.Points
	if q.Format == problemgen.FormatBuilder {
		s.input.Submit(r.Correct)
		s.input.Blur()
	}

	timeMs := int(time.Since(s.questionStart).Milliseconds())
	appendAnswerEvent(s.deps.Events, s.logger, store.AnswerEventData{
		ProfileID:    profileID(s.player),
		SessionID:    s.quiz.ID(),
		QuestionID:   q.ID,
		Note:         q.Answer,
		Image:        q.Card.Image,
		Given:        given,
		Correct:      r.Correct,
		TimeMs:       timeMs,
		AnswerFormat: string(q.Format),
	})
	s.logger.Debug().
		Int("question_id", q.ID).
		Str("note", q.Answer).
		Str("given", given).
		Bool("correct", r.Correct).
		Msg("answer")

	return s, s.scheduleAdvance(r)
}

func (s *SessionScreen) scheduleAdvance(r sess.Result) tea.Cmd {
	id := r.QuestionID
	return tea.Tick(s.delays.For(r), func(time.Time) tea.Msg {
		return advanceMsg{QuestionID: id}
	})
}

// handleAdvance moves past questionID. Stale ticks, and ticks arriving
// while the quit dialog is open, are ignored.
func (s *SessionScreen) handleAdvance(questionID int) (screen.Screen, tea.Cmd) {
	if s.quiz == nil || s.confirmQuit || s.ending {
		return s, nil
	}
	if !s.quiz.AdvancePast(questionID) {
		return s, nil
	}
	if s.quiz.IsCompleted() {
		s.feedback = nil
		return s, endCmd()
	}
	return s, s.loadQuestion()
}

func (s *SessionScreen) handleSessionEnd() (screen.Screen, tea.Cmd) {
	if s.quiz == nil {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.ending {
		return s, nil
	}
	s.ending = true
	return s, func() tea.Msg { return s.finish() }
}

// Close records the end of an unfinished quiz and waits for queued score
// writes. The app calls it before quitting.
func (s *SessionScreen) Close() {
	if s.quiz == nil {
		return
	}
	s.ending = true
	s.finish()
}

// finish drains the score keeper and stores the end event exactly once.
// Later callers block until the first one is done and get its result.
func (s *SessionScreen) finish() sessionSavedMsg {
	s.finishOnce.Do(func() {
		total := s.player.Score()
		if s.keeper != nil {
			s.keeper.Close()
			total = s.keeper.Total()
		}

		sum := s.quiz.Summary()
		appendSessionEvent(s.deps.Events, s.logger, store.SessionEventData{
			ProfileID:         profileID(s.player),
			SessionID:         sum.SessionID,
			Action:            "end",
			Mode:              string(sum.Format),
			QuestionsTotal:    sum.TotalQuestions,
			QuestionsAnswered: sum.Answered,
			CorrectAnswers:    sum.TotalCorrect,
			Score:             sum.Score,
			DurationSecs:      int(sum.Duration.Seconds()),
		})
		s.logger.Info().
			Str("session_id", sum.SessionID).
			Int("correct", sum.TotalCorrect).
			Int("answered", sum.Answered).
			Bool("completed", sum.Completed).
			Msg("quiz ended")
		s.saved = sessionSavedMsg{Summary: sum, Total: total}
	})
	return s.saved
}

func (s *SessionScreen) handleSessionSaved(msg sessionSavedMsg) (screen.Screen, tea.Cmd) {
	if s.player != nil && s.player.Profile != nil {
		s.player.Profile.Score = msg.Total
	}
	s.earned = 0

	d, player, format := s.deps, s.player, s.format
	playAgain := func() screen.Screen { return New(d, player, format) }
	next := summary.New(msg.Summary, player, playAgain)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func endCmd() tea.Cmd {
	return func() tea.Msg { return sessionEndMsg{} }
}

func profileID(p *deps.Player) int64 {
	if p == nil || p.Profile == nil {
		return 0
	}
	return p.Profile.ID
}

func appendSessionEvent(repo store.EventRepo, logger zerolog.Logger, data store.SessionEventData) {
	if repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()
	if err := repo.AppendSessionEvent(ctx, data); err != nil {
		logger.Error().Err(err).Str("action", data.Action).Msg("append session event")
	}
}

func appendAnswerEvent(repo store.EventRepo, logger zerolog.Logger, data store.AnswerEventData) {
	if repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()
	if err := repo.AppendAnswerEvent(ctx, data); err != nil {
		logger.Error().Err(err).Int("question_id", data.QuestionID).Msg("append answer event")
	}
}
