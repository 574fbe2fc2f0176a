package dataclient

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/idilsaglam/taskflow/internal/model"
	"github.com/idilsaglam/taskflow/internal/store/memstore"
	"github.com/idilsaglam/taskflow/internal/store/postgrest"
)

func TestNew_AbsentWhenEitherValueMissing(t *testing.T) {
	ctx := context.Background()
	for _, cfg := range []Config{
		{},
		{URL: "https://x.supabase.co"},
		{Key: "k"},
		{URL: "  ", Key: "k"},
	} {
		h, err := New(ctx, cfg, nil)
		if err != nil {
			t.Fatalf("%+v: unexpected error %v", cfg, err)
		}
		if _, ok := h.Get(); ok {
			t.Fatalf("%+v: expected absent handle", cfg)
		}
		if err := h.Close(); err != nil {
			t.Fatalf("close absent handle: %v", err)
		}
	}
}

func TestNew_PicksBackendByScheme(t *testing.T) {
	ctx := context.Background()

	h, err := New(ctx, Config{URL: "https://x.supabase.co", Key: "k"}, nil)
	if err != nil {
		t.Fatalf("https: %v", err)
	}
	if _, ok := h.Backend().(*postgrest.Store); !ok {
		t.Fatalf("expected postgrest backend, got %T", h.Backend())
	}

	h, err = New(ctx, Config{URL: "mem://local", Key: "k"}, nil)
	if err != nil {
		t.Fatalf("mem: %v", err)
	}
	if _, ok := h.Backend().(*memstore.Store); !ok {
		t.Fatalf("expected memstore backend, got %T", h.Backend())
	}

	if _, err := New(ctx, Config{URL: "ftp://x", Key: "k"}, nil); err == nil {
		t.Fatalf("expected error for unsupported scheme")
	}
}

func TestForSession_AbsentWhenNotInteractive(t *testing.T) {
	h, err := ForSession(context.Background(), Config{URL: "mem://local", Key: "k"}, false, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Present() {
		t.Fatalf("expected absent handle outside an interactive session")
	}

	h, _ = ForSession(context.Background(), Config{URL: "mem://local", Key: "k"}, true, nil)
	if !h.Present() {
		t.Fatalf("expected present handle for interactive session")
	}
}

func TestInstrumented_CountsOutcomes(t *testing.T) {
	ctx := context.Background()
	mem := memstore.New()
	tasks := instrument(mem, "test", nil)

	before := testutil.ToFloat64(requestsTotal.WithLabelValues("test", "insert", "ok"))
	if err := tasks.Insert(ctx, model.NewTask{Title: "x"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if got := testutil.ToFloat64(requestsTotal.WithLabelValues("test", "insert", "ok")); got != before+1 {
		t.Fatalf("expected ok counter to grow by one, got %v -> %v", before, got)
	}

	if err := tasks.Delete(ctx, "missing"); err == nil {
		t.Fatalf("expected delete of missing row to fail")
	}
	if got := testutil.ToFloat64(requestsTotal.WithLabelValues("test", "delete", "error")); got < 1 {
		t.Fatalf("expected error counter, got %v", got)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil).Present() {
		t.Fatalf("wrapping nil must be absent")
	}
	if !Wrap(memstore.New()).Present() {
		t.Fatalf("wrapping a store must be present")
	}
}
