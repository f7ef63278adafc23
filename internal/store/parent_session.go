package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type sessionRepo struct {
	db *sql.DB
}

func (r *sessionRepo) Save(ctx context.Context, s ParentSession) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	query, args := builder().Delete(ParentSessionsTable.Name).Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear parent sessions: %w", err)
	}

	query, args = builder().Insert(ParentSessionsTable.Name).
		Columns("token", "parent_id", "created_at", "expires_at").
		Values(s.Token, s.ParentID, s.CreatedAt.UTC(), s.ExpiresAt.UTC()).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert parent session: %w", err)
	}
	return tx.Commit()
}

func (r *sessionRepo) Current(ctx context.Context) (*ParentSession, error) {
	query, args := builder().Select("token", "parent_id", "created_at", "expires_at").
		From(entsql.Table(ParentSessionsTable.Name)).
		OrderBy(entsql.Desc("id")).
		Limit(1).
		Query()

	var out ParentSession
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&out.Token, &out.ParentID, &out.CreatedAt, &out.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query parent session: %w", err)
	}
	return &out, nil
}

func (r *sessionRepo) Touch(ctx context.Context, token string, expiresAt time.Time) error {
	query, args := builder().Update(ParentSessionsTable.Name).
		Set("expires_at", expiresAt.UTC()).
		Where(entsql.EQ("token", token)).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("touch parent session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sessionRepo) Clear(ctx context.Context) error {
	query, args := builder().Delete(ParentSessionsTable.Name).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear parent sessions: %w", err)
	}
	return nil
}
