package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/idilsaglam/taskflow/internal/model"
)

func TestRenderTask_Lines(t *testing.T) {
	desc := "2 litres"
	it := taskItem{task: model.Task{
		ID:          "t1",
		Title:       "Buy milk",
		Description: &desc,
		CreatedAt:   time.Date(2025, 3, 1, 12, 0, 0, 0, time.Local),
	}}
	out := renderTask(it, true, 60)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], boxUnchecked) || !strings.Contains(lines[0], "Buy milk") || !strings.Contains(lines[0], trashGlyph) {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[1], "2 litres") {
		t.Fatalf("expected description, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "Created: Mar 1, 2025") {
		t.Fatalf("expected creation date, got %q", lines[2])
	}
}

func TestRenderTask_CompletedAndBusy(t *testing.T) {
	done := renderTask(taskItem{task: model.Task{Title: "x", Completed: true}}, false, 60)
	if !strings.Contains(done, boxChecked) {
		t.Fatalf("expected checked box, got %q", done)
	}
	busy := renderTask(taskItem{task: model.Task{Title: "x", Completed: true}, busy: true}, false, 60)
	if !strings.Contains(busy, boxBusy) || !strings.Contains(busy, boxChecked) {
		t.Fatalf("expected busy marker next to a checked box, got %q", busy)
	}
	pending := renderTask(taskItem{task: model.Task{Title: "x"}, busy: true}, false, 60)
	if !strings.Contains(pending, boxUnchecked) || strings.Contains(pending, boxChecked) {
		t.Fatalf("expected unchecked box while busy, got %q", pending)
	}
}

func TestRenderTask_TruncatesLongTitles(t *testing.T) {
	long := strings.Repeat("ü", 200)
	out := renderTask(taskItem{task: model.Task{Title: long}}, false, 40)
	first := strings.Split(out, "\n")[0]
	if strings.Contains(first, long) || !strings.Contains(first, "…") {
		t.Fatalf("expected truncated title, got %q", first)
	}
}
