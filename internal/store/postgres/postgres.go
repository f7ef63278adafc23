// Package postgres keeps parents and profiles in a shared Postgres
// database so several machines see the same leaderboard. Quiz events
// always stay in the local SQLite store.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/abhisek/sightread/internal/store"
)

//go:embed migrations/*.sql
var migrations embed.FS

// DB is a pooled Postgres connection serving the profile repositories.
type DB struct {
	pool *pgxpool.Pool
}

// Open migrates the database at url and connects a pool to it.
func Open(ctx context.Context, url string) (*DB, error) {
	if err := Migrate(url); err != nil {
		return nil, err
	}

	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &DB{pool: pool}, nil
}

// Migrate applies the embedded goose migrations.
func Migrate(url string) error {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations)
	goose.SetTableName("sightread_goose_version")
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Close releases the pool.
func (d *DB) Close() {
	d.pool.Close()
}

// ParentRepo returns a store.ParentRepo backed by Postgres.
func (d *DB) ParentRepo() store.ParentRepo {
	return &parentRepo{pool: d.pool}
}

// ProfileRepo returns a store.ProfileRepo backed by Postgres.
func (d *DB) ProfileRepo() store.ProfileRepo {
	return &profileRepo{pool: d.pool}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
