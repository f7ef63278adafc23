package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type profileRepo struct {
	db *sql.DB
}

var profileColumns = []string{"id", "parent_id", "name", "score", "created_at"}

func (r *profileRepo) Create(ctx context.Context, parentID int64, name string) (*Profile, error) {
	now := time.Now().UTC()
	query, args := builder().Insert(ProfilesTable.Name).
		Columns("parent_id", "name", "score", "created_at").
		Values(parentID, name, 0, now).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("profile id: %w", err)
	}
	return &Profile{ID: id, ParentID: parentID, Name: name, CreatedAt: now}, nil
}

func (r *profileRepo) Get(ctx context.Context, id int64) (*Profile, error) {
	query, args := builder().Select(profileColumns...).
		From(entsql.Table(ProfilesTable.Name)).
		Where(entsql.EQ("id", id)).
		Query()

	var p Profile
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&p.ID, &p.ParentID, &p.Name, &p.Score, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}
	return &p, nil
}

func (r *profileRepo) ListByParent(ctx context.Context, parentID int64) ([]Profile, error) {
	query, args := builder().Select(profileColumns...).
		From(entsql.Table(ProfilesTable.Name)).
		Where(entsql.EQ("parent_id", parentID)).
		OrderBy("id").
		Query()
	return r.list(ctx, query, args)
}

func (r *profileRepo) CountByParent(ctx context.Context, parentID int64) (int, error) {
	query, args := builder().Select(entsql.Count("*")).
		From(entsql.Table(ProfilesTable.Name)).
		Where(entsql.EQ("parent_id", parentID)).
		Query()

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count profiles: %w", err)
	}
	return n, nil
}

func (r *profileRepo) Delete(ctx context.Context, parentID, id int64) error {
	query, args := builder().Delete(ProfilesTable.Name).
		Where(entsql.And(
			entsql.EQ("id", id),
			entsql.EQ("parent_id", parentID),
		)).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *profileRepo) AddScore(ctx context.Context, id int64, delta int) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	query, args := builder().Update(ProfilesTable.Name).
		Add("score", delta).
		Where(entsql.EQ("id", id)).
		Query()
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("add score: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, ErrNotFound
	}

	query, args = builder().Select("score").
		From(entsql.Table(ProfilesTable.Name)).
		Where(entsql.EQ("id", id)).
		Query()
	var score int
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&score); err != nil {
		return 0, fmt.Errorf("read score: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return score, nil
}

func (r *profileRepo) Top(ctx context.Context, limit int) ([]Profile, error) {
	sel := builder().Select(profileColumns...).
		From(entsql.Table(ProfilesTable.Name)).
		OrderBy(entsql.Desc("score"), "name", "id")
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()
	return r.list(ctx, query, args)
}

func (r *profileRepo) list(ctx context.Context, query string, args []any) ([]Profile, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close()

	var out []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.ParentID, &p.Name, &p.Score, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
