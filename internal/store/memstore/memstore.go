// Package memstore is an in-process tasks table. It backs mem:// endpoints
// for offline use and stands in for the remote store in tests.
package memstore

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/idilsaglam/taskflow/internal/model"
	"github.com/idilsaglam/taskflow/internal/store"
)

// Store keeps rows in a map guarded by a mutex; Bubble Tea commands call it
// from their own goroutines.
type Store struct {
	mu    sync.Mutex
	rows  map[string]model.Task
	now   func() time.Time
	calls int

	// FailNext makes the next call return this error instead of running.
	FailNext error
}

func New() *Store {
	return &Store{rows: map[string]model.Task{}, now: time.Now}
}

// WithClock replaces the timestamp source; tests use it to pin creation order.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	return s
}

// Seed inserts rows as-is, keeping their ids and timestamps.
func (s *Store) Seed(tasks ...model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range tasks {
		s.rows[t.ID] = t
	}
}

// Calls reports how many requests reached the store, failed ones included.
func (s *Store) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *Store) begin() error {
	s.calls++
	if s.FailNext != nil {
		err := s.FailNext
		s.FailNext = nil
		return err
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return nil, err
	}
	out := make([]model.Task, 0, len(s.rows))
	for _, t := range s.rows {
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) Insert(ctx context.Context, nt model.NewTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return err
	}
	if nt.Title == "" {
		return errors.New("title must not be empty")
	}
	now := s.now()
	t := model.Task{
		ID:          uuid.NewString(),
		Title:       nt.Title,
		Description: nt.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.rows[t.ID] = t
	return nil
}

func (s *Store) SetCompleted(ctx context.Context, id string, completed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return err
	}
	t, ok := s.rows[id]
	if !ok {
		return store.ErrNotFound
	}
	t.Completed = completed
	t.UpdatedAt = s.now()
	s.rows[id] = t
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return err
	}
	if _, ok := s.rows[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}
