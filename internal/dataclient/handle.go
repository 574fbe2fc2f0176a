// Package dataclient builds the optional connection to the tasks table.
//
// A Handle is either present or absent. Absence is the normal state of an
// unconfigured install, not an error: callers check Get at every call site
// and skip the operation when it reports false.
package dataclient

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/idilsaglam/taskflow/internal/model"
	"github.com/idilsaglam/taskflow/internal/store/memstore"
	"github.com/idilsaglam/taskflow/internal/store/pgstore"
	"github.com/idilsaglam/taskflow/internal/store/postgrest"
)

// Tasks is the CRUD surface every backend offers.
type Tasks interface {
	List(ctx context.Context) ([]model.Task, error)
	Insert(ctx context.Context, nt model.NewTask) error
	SetCompleted(ctx context.Context, id string, completed bool) error
	Delete(ctx context.Context, id string) error
}

// Config carries the two values a handle is built from.
type Config struct {
	URL string
	Key string
}

// Configured reports whether both values are set.
func (c Config) Configured() bool {
	return strings.TrimSpace(c.URL) != "" && strings.TrimSpace(c.Key) != ""
}

// Handle is the optional connection. The zero value is absent.
type Handle struct {
	tasks  Tasks
	closer io.Closer
}

// Get returns the backend and whether the handle is present.
func (h Handle) Get() (Tasks, bool) {
	return h.tasks, h.tasks != nil
}

// Present reports whether the handle carries a backend.
func (h Handle) Present() bool { return h.tasks != nil }

// Close releases backend resources. Safe on an absent handle.
func (h Handle) Close() error {
	if h.closer == nil {
		return nil
	}
	return h.closer.Close()
}

// Wrap makes a present handle around an existing backend.
func Wrap(t Tasks) Handle {
	if t == nil {
		return Handle{}
	}
	h := Handle{tasks: t}
	if c, ok := t.(io.Closer); ok {
		h.closer = c
	}
	return h
}

// New builds a handle from cfg. An unconfigured cfg yields an absent handle
// and no error; an unusable URL is an error.
//
// The URL scheme picks the backend:
//
//	http, https          Supabase REST (PostgREST under /rest/v1)
//	postgres, postgresql direct connection, Key is the password
//	mem                  in-process table, nothing leaves the process
func New(ctx context.Context, cfg Config, log logrus.FieldLogger) (Handle, error) {
	if !cfg.Configured() {
		return Handle{}, nil
	}
	raw := strings.TrimSpace(cfg.URL)
	key := strings.TrimSpace(cfg.Key)
	u, err := url.Parse(raw)
	if err != nil {
		return Handle{}, fmt.Errorf("parse endpoint url: %w", err)
	}

	var backend Tasks
	var closer io.Closer
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		s, err := postgrest.New(raw, key)
		if err != nil {
			return Handle{}, err
		}
		backend = s
	case "postgres", "postgresql":
		s, err := pgstore.Open(ctx, raw, key)
		if err != nil {
			return Handle{}, err
		}
		backend, closer = s, s
	case "mem":
		backend = memstore.New()
	default:
		return Handle{}, fmt.Errorf("unsupported endpoint scheme %q", u.Scheme)
	}

	return Handle{tasks: instrument(backend, u.Scheme, log), closer: closer}, nil
}

// ForSession is New for interactive sessions. Without an interactive
// terminal it returns an absent handle so nothing is dialed.
func ForSession(ctx context.Context, cfg Config, interactive bool, log logrus.FieldLogger) (Handle, error) {
	if !interactive {
		return Handle{}, nil
	}
	return New(ctx, cfg, log)
}

// Backend exposes the concrete store behind a handle, for commands that need
// more than CRUD (schema setup).
func (h Handle) Backend() Tasks {
	if in, ok := h.tasks.(*instrumented); ok {
		return in.next
	}
	return h.tasks
}
