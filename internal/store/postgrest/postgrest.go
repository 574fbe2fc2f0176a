// Package postgrest talks to a Supabase project's REST endpoint.
package postgrest

import (
	"context"
	"fmt"
	"strings"

	pgrest "github.com/supabase-community/postgrest-go"

	"github.com/idilsaglam/taskflow/internal/model"
	"github.com/idilsaglam/taskflow/internal/store"
)

const restPath = "/rest/v1"

// Store issues CRUD requests against the tasks table through PostgREST.
type Store struct {
	client *pgrest.Client
}

// New builds a client for a project URL such as https://xyz.supabase.co.
// The key is sent both as apikey and as the bearer token, the way the
// Supabase SDKs do for anonymous access.
func New(projectURL, key string) (*Store, error) {
	base := strings.TrimRight(projectURL, "/")
	if !strings.HasSuffix(base, restPath) {
		base += restPath
	}
	c := pgrest.NewClient(base, "public", map[string]string{
		"apikey":        key,
		"Authorization": "Bearer " + key,
	})
	if c.ClientError != nil {
		return nil, fmt.Errorf("postgrest client: %w", c.ClientError)
	}
	return &Store{client: c}, nil
}

func (s *Store) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	_, err := s.client.From(store.Table).
		Select("*", "", false).
		Order("created_at", &pgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&tasks)
	if err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

func (s *Store) Insert(ctx context.Context, nt model.NewTask) error {
	_, _, err := s.client.From(store.Table).
		Insert(nt, false, "", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// SetCompleted and Delete ask for return=minimal with an exact count, so row
// level security only needs UPDATE/DELETE, not SELECT, on the table.
func (s *Store) SetCompleted(ctx context.Context, id string, completed bool) error {
	_, n, err := s.client.From(store.Table).
		Update(map[string]bool{"completed": completed}, "minimal", "exact").
		Eq("id", id).
		Execute()
	if err != nil {
		return fmt.Errorf("update task %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("update task %s: %w", id, store.ErrNotFound)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	_, n, err := s.client.From(store.Table).
		Delete("minimal", "exact").
		Eq("id", id).
		Execute()
	if err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete task %s: %w", id, store.ErrNotFound)
	}
	return nil
}
