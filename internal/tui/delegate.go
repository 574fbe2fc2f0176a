package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/taskflow/internal/model"
)

const createdLayout = "Jan 2, 2006"

// taskItem adapts a Task to bubbles/list.Item.
type taskItem struct {
	task model.Task
	busy bool
}

func (i taskItem) FilterValue() string { return i.task.Title }

// taskDelegate renders each task on three lines: checkbox, title and delete
// control; the description; the creation date.
type taskDelegate struct{}

func (d taskDelegate) Height() int                               { return 3 }
func (d taskDelegate) Spacing() int                              { return 1 }
func (d taskDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(taskItem)
	if !ok {
		return
	}
	fmt.Fprint(w, renderTask(it, index == m.Index(), m.Width()))
}

func renderTask(it taskItem, selected bool, width int) string {
	t := it.task
	if width <= 0 {
		width = 80
	}
	textW := width - 8
	if textW < 10 {
		textW = 10
	}

	glyph := boxUnchecked
	if t.Completed {
		glyph = boxChecked
	}
	// a busy checkbox keeps its state but is drawn disabled
	box := mutedStyle.Render(glyph)
	if t.Completed && !it.busy {
		box = successStyle.Render(glyph)
	}

	title := ansi.Truncate(t.Title, textW, "…")
	if t.Completed {
		title = doneStyle.Render(title)
	}

	trash := errorStyle.Render(trashGlyph)
	if it.busy {
		trash = mutedStyle.Render(trashGlyph) + " " + mutedStyle.Render(boxBusy)
	}

	desc := ""
	if d := strings.TrimSpace(t.Desc()); d != "" {
		d = ansi.Truncate(strings.ReplaceAll(d, "\n", " "), textW, "…")
		if t.Completed {
			desc = doneStyle.Render(d)
		} else {
			desc = mutedStyle.Render(d)
		}
	}

	created := mutedStyle.Render("Created: " + t.CreatedAt.Local().Format(createdLayout))

	prefix := "  "
	if selected {
		prefix = selectedStyle.Render(">") + " "
	}
	return strings.Join([]string{
		fmt.Sprintf("%s%s %s  %s", prefix, box, title, trash),
		"    " + desc,
		"    " + created,
	}, "\n")
}
