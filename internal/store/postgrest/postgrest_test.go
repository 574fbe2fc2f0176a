package postgrest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/idilsaglam/taskflow/internal/model"
	"github.com/idilsaglam/taskflow/internal/store"
)

const testKey = "anon-key"

// fakeREST is a tiny stand-in for a PostgREST tasks endpoint.
type fakeREST struct {
	mu      sync.Mutex
	rows    []model.Task
	seq     int
	headers []http.Header
	fail    bool
}

func (f *fakeREST) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.headers = append(f.headers, r.Header.Clone())

	if r.URL.Path != "/rest/v1/tasks" {
		http.NotFound(w, r)
		return
	}
	if f.fail {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"code":"XX000","message":"database unavailable"}`)
		return
	}
	id := strings.TrimPrefix(r.URL.Query().Get("id"), "eq.")

	switch r.Method {
	case http.MethodGet:
		out := append([]model.Task(nil), f.rows...)
		if strings.HasPrefix(r.URL.Query().Get("order"), "created_at.desc") {
			sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
		}
		json.NewEncoder(w).Encode(out)
	case http.MethodPost:
		var nt model.NewTask
		if err := json.NewDecoder(r.Body).Decode(&nt); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"code":"PGRST102","message":"bad body"}`)
			return
		}
		f.seq++
		now := time.Date(2025, 1, 1, 0, f.seq, 0, 0, time.UTC)
		f.rows = append(f.rows, model.Task{
			ID: fmt.Sprintf("id-%d", f.seq), Title: nt.Title, Description: nt.Description,
			CreatedAt: now, UpdatedAt: now,
		})
		w.WriteHeader(http.StatusCreated)
	case http.MethodPatch:
		var patch struct {
			Completed bool `json:"completed"`
		}
		json.NewDecoder(r.Body).Decode(&patch)
		var hit []model.Task
		for i := range f.rows {
			if f.rows[i].ID == id {
				f.rows[i].Completed = patch.Completed
				hit = append(hit, f.rows[i])
			}
		}
		f.writeMutation(w, r, hit)
	case http.MethodDelete:
		var hit []model.Task
		kept := f.rows[:0]
		for _, t := range f.rows {
			if t.ID == id {
				hit = append(hit, t)
				continue
			}
			kept = append(kept, t)
		}
		f.rows = kept
		f.writeMutation(w, r, hit)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// writeMutation answers the way PostgREST does for the Prefer header sent.
func (f *fakeREST) writeMutation(w http.ResponseWriter, r *http.Request, hit []model.Task) {
	prefer := r.Header.Get("Prefer")
	if strings.Contains(prefer, "count=exact") {
		w.Header().Set("Content-Range", fmt.Sprintf("*/%d", len(hit)))
	}
	if strings.Contains(prefer, "return=minimal") {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	json.NewEncoder(w).Encode(hit)
}

func newTestStore(t *testing.T) (*Store, *fakeREST) {
	t.Helper()
	fake := &fakeREST{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	s, err := New(srv.URL+"/", testKey)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s, fake
}

func TestStore_CRUDRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, fake := newTestStore(t)

	desc := "two percent"
	for _, nt := range []model.NewTask{{Title: "t1"}, {Title: "t2", Description: &desc}, {Title: "t3"}} {
		if err := s.Insert(ctx, nt); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	tasks, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 3 || tasks[0].Title != "t3" || tasks[2].Title != "t1" {
		t.Fatalf("expected newest first, got %+v", tasks)
	}
	if tasks[1].Desc() != "two percent" || tasks[0].Description != nil {
		t.Fatalf("descriptions not preserved: %+v", tasks)
	}

	if err := s.SetCompleted(ctx, tasks[1].ID, true); err != nil {
		t.Fatalf("set completed: %v", err)
	}
	if err := s.Delete(ctx, tasks[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	tasks, _ = s.List(ctx)
	if len(tasks) != 2 || !tasks[0].Completed || tasks[1].Completed {
		t.Fatalf("unexpected rows after mutations: %+v", tasks)
	}

	for _, h := range fake.headers {
		if strings.Contains(h.Get("Prefer"), "return=representation") {
			t.Fatalf("mutations should not ask for rows back: %v", h.Get("Prefer"))
		}
		if h.Get("apikey") != testKey || h.Get("Authorization") != "Bearer "+testKey {
			t.Fatalf("missing auth headers: %v", h)
		}
	}
}

func TestStore_MissingRowIsNotFound(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	if err := s.SetCompleted(ctx, "nope", true); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(ctx, "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ServerErrorIsReturned(t *testing.T) {
	ctx := context.Background()
	s, fake := newTestStore(t)
	fake.fail = true
	if _, err := s.List(ctx); err == nil {
		t.Fatalf("expected list error")
	}
	if err := s.Insert(ctx, model.NewTask{Title: "x"}); err == nil {
		t.Fatalf("expected insert error")
	}
}
