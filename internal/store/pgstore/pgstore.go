// Package pgstore reads and writes the tasks table over a direct PostgreSQL
// connection.
package pgstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/idilsaglam/taskflow/internal/model"
	"github.com/idilsaglam/taskflow/internal/store"
)

// Schema matches the table a Supabase project would carry.
const Schema = `CREATE TABLE IF NOT EXISTS tasks (
	id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	title       text NOT NULL CHECK (btrim(title) <> ''),
	description text,
	completed   boolean NOT NULL DEFAULT false,
	created_at  timestamptz NOT NULL DEFAULT now(),
	updated_at  timestamptz NOT NULL DEFAULT now()
)`

type Store struct {
	pool *pgxpool.Pool
}

// Open connects to dsn. A non-empty password overrides the one in the DSN.
func Open(ctx context.Context, dsn, password string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if password != "" {
		cfg.ConnConfig.Password = password
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// EnsureSchema creates the tasks table when it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("create tasks table: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]model.Task, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id::text, title, description, completed, created_at, updated_at
		   FROM tasks ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}
	tasks, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Task, error) {
		var t model.Task
		err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan tasks: %w", err)
	}
	return tasks, nil
}

func (s *Store) Insert(ctx context.Context, nt model.NewTask) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO tasks (title, description) VALUES ($1, $2)`, nt.Title, nt.Description)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// rowID parses id for a primary-key lookup. A malformed id cannot match a row.
func rowID(id string) (uuid.UUID, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, store.ErrNotFound
	}
	return u, nil
}

func (s *Store) SetCompleted(ctx context.Context, id string, completed bool) error {
	key, err := rowID(id)
	if err != nil {
		return fmt.Errorf("update task %s: %w", id, err)
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE tasks SET completed = $1, updated_at = now() WHERE id = $2::uuid`, completed, key.String())
	if err != nil {
		return fmt.Errorf("update task %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update task %s: %w", id, store.ErrNotFound)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	key, err := rowID(id)
	if err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1::uuid`, key.String())
	if err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete task %s: %w", id, store.ErrNotFound)
	}
	return nil
}
