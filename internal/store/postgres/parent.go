package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abhisek/sightread/internal/store"
)

type parentRepo struct {
	pool *pgxpool.Pool
}

func (r *parentRepo) Create(ctx context.Context, email, passwordHash string) (*store.Parent, error) {
	p := store.Parent{Email: email, PasswordHash: passwordHash}
	err := r.pool.QueryRow(ctx,
		"INSERT INTO parents (email, password_hash) VALUES ($1, $2) RETURNING id, created_at",
		email, passwordHash,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("parent %q: %w", email, store.ErrDuplicate)
		}
		return nil, fmt.Errorf("insert parent: %w", err)
	}
	return &p, nil
}

func (r *parentRepo) ByEmail(ctx context.Context, email string) (*store.Parent, error) {
	return r.one(ctx, "SELECT id, email, password_hash, created_at FROM parents WHERE email = $1", email)
}

func (r *parentRepo) Get(ctx context.Context, id int64) (*store.Parent, error) {
	return r.one(ctx, "SELECT id, email, password_hash, created_at FROM parents WHERE id = $1", id)
}

func (r *parentRepo) one(ctx context.Context, query string, arg any) (*store.Parent, error) {
	var p store.Parent
	err := r.pool.QueryRow(ctx, query, arg).Scan(&p.ID, &p.Email, &p.PasswordHash, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query parent: %w", err)
	}
	return &p, nil
}
