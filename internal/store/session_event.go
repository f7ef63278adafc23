package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(SessionEventsTable.Name).
		Columns("sequence", "timestamp", "profile_id", "session_id", "action", "mode",
			"questions_total", "questions_answered", "correct_answers", "score", "duration_secs").
		Values(seqNum, time.Now().UTC(), data.ProfileID, data.SessionID, data.Action, data.Mode,
			data.QuestionsTotal, data.QuestionsAnswered, data.CorrectAnswers, data.Score, data.DurationSecs).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(AnswerEventsTable.Name).
		Columns("sequence", "timestamp", "profile_id", "session_id", "question_id", "note",
			"image", "given", "correct", "time_ms", "answer_format").
		Values(seqNum, time.Now().UTC(), data.ProfileID, data.SessionID, data.QuestionID, data.Note,
			data.Image, data.Given, data.Correct, data.TimeMs, data.AnswerFormat).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, profileID int64, opts QueryOpts) ([]SessionEvent, error) {
	preds := []*entsql.Predicate{
		entsql.EQ("profile_id", profileID),
		entsql.EQ("action", "end"),
	}
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To))
	}

	sel := builder().Select("sequence", "timestamp", "profile_id", "session_id", "action", "mode",
		"questions_total", "questions_answered", "correct_answers", "score", "duration_secs").
		From(entsql.Table(SessionEventsTable.Name)).
		Where(entsql.And(preds...)).
		OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var out []SessionEvent
	for rows.Next() {
		var e SessionEvent
		if err := rows.Scan(&e.Sequence, &e.Timestamp, &e.ProfileID, &e.SessionID, &e.Action, &e.Mode,
			&e.QuestionsTotal, &e.QuestionsAnswered, &e.CorrectAnswers, &e.Score, &e.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) NoteAccuracy(ctx context.Context, profileID int64) ([]NoteAccuracy, error) {
	query, args := builder().Select("note", entsql.Count("*"), "SUM(correct)").
		From(entsql.Table(AnswerEventsTable.Name)).
		Where(entsql.EQ("profile_id", profileID)).
		GroupBy("note").
		OrderBy("note").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query note accuracy: %w", err)
	}
	defer rows.Close()

	var out []NoteAccuracy
	for rows.Next() {
		var n NoteAccuracy
		if err := rows.Scan(&n.Note, &n.Attempts, &n.Correct); err != nil {
			return nil, fmt.Errorf("scan note accuracy: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sortWeakestFirst(out)
	return out, nil
}
