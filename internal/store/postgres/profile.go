package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abhisek/sightread/internal/store"
)

type profileRepo struct {
	pool *pgxpool.Pool
}

const profileColumns = "id, parent_id, name, score, created_at"

func (r *profileRepo) Create(ctx context.Context, parentID int64, name string) (*store.Profile, error) {
	p := store.Profile{ParentID: parentID, Name: name}
	err := r.pool.QueryRow(ctx,
		"INSERT INTO profiles (parent_id, name) VALUES ($1, $2) RETURNING id, score, created_at",
		parentID, name,
	).Scan(&p.ID, &p.Score, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}
	return &p, nil
}

func (r *profileRepo) Get(ctx context.Context, id int64) (*store.Profile, error) {
	var p store.Profile
	err := r.pool.QueryRow(ctx, "SELECT "+profileColumns+" FROM profiles WHERE id = $1", id).
		Scan(&p.ID, &p.ParentID, &p.Name, &p.Score, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}
	return &p, nil
}

func (r *profileRepo) ListByParent(ctx context.Context, parentID int64) ([]store.Profile, error) {
	return r.list(ctx, "SELECT "+profileColumns+" FROM profiles WHERE parent_id = $1 ORDER BY id", parentID)
}

func (r *profileRepo) CountByParent(ctx context.Context, parentID int64) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM profiles WHERE parent_id = $1", parentID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count profiles: %w", err)
	}
	return n, nil
}

func (r *profileRepo) Delete(ctx context.Context, parentID, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM profiles WHERE id = $1 AND parent_id = $2", id, parentID)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *profileRepo) AddScore(ctx context.Context, id int64, delta int) (int, error) {
	var score int
	err := r.pool.QueryRow(ctx,
		"UPDATE profiles SET score = score + $1 WHERE id = $2 RETURNING score", delta, id,
	).Scan(&score)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, store.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("add score: %w", err)
	}
	return score, nil
}

func (r *profileRepo) Top(ctx context.Context, limit int) ([]store.Profile, error) {
	query := "SELECT " + profileColumns + " FROM profiles ORDER BY score DESC, name, id"
	if limit > 0 {
		return r.list(ctx, query+" LIMIT $1", limit)
	}
	return r.list(ctx, query)
}

func (r *profileRepo) list(ctx context.Context, query string, args ...any) ([]store.Profile, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close()

	var out []store.Profile
	for rows.Next() {
		var p store.Profile
		if err := rows.Scan(&p.ID, &p.ParentID, &p.Name, &p.Score, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
