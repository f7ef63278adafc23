package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
)

type parentRepo struct {
	db *sql.DB
}

var parentColumns = []string{"id", "email", "password_hash", "created_at"}

func (r *parentRepo) Create(ctx context.Context, email, passwordHash string) (*Parent, error) {
	now := time.Now().UTC()
	query, args := builder().Insert(ParentsTable.Name).
		Columns("email", "password_hash", "created_at").
		Values(email, passwordHash, now).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if sqlgraph.IsUniqueConstraintError(err) {
			return nil, fmt.Errorf("parent %q: %w", email, ErrDuplicate)
		}
		return nil, fmt.Errorf("insert parent: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("parent id: %w", err)
	}
	return &Parent{ID: id, Email: email, PasswordHash: passwordHash, CreatedAt: now}, nil
}

func (r *parentRepo) ByEmail(ctx context.Context, email string) (*Parent, error) {
	return r.one(ctx, entsql.EQ("email", email))
}

func (r *parentRepo) Get(ctx context.Context, id int64) (*Parent, error) {
	return r.one(ctx, entsql.EQ("id", id))
}

func (r *parentRepo) one(ctx context.Context, p *entsql.Predicate) (*Parent, error) {
	query, args := builder().Select(parentColumns...).
		From(entsql.Table(ParentsTable.Name)).
		Where(p).
		Limit(1).
		Query()

	var out Parent
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&out.ID, &out.Email, &out.PasswordHash, &out.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query parent: %w", err)
	}
	return &out, nil
}
