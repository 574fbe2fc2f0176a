package cli

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/taskflow/internal/model"
	"github.com/idilsaglam/taskflow/internal/ui"
)

const titleWidth = 80

// -------------- rendering helpers --------------

func listLines(items []model.Task, group bool) []string {
	t := ui.Current()
	st := model.Summarize(items)

	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(t.Title, "Tasks"),
		ui.C(t.Success, t.SymDone), st.Completed,
		ui.C(t.Pending, t.SymUnchecked), st.Pending,
		ui.C(t.Accent, "Total"), st.Total,
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(t.Muted, ui.ProgressBar(st.Completed, st.Total, 28)))
	lines = append(lines, "")

	if group {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, flatLines(items)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, "Tip: add with `taskflow add \"Buy milk\"`"))
	return lines
}

func flatLines(items []model.Task) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{ui.C(t.Muted, "No tasks yet. Create your first task with `taskflow add`!")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		idx := fmt.Sprintf("%2d.", i+1)
		box := t.BoxUnchecked
		color := t.Muted
		if it.Completed {
			box, color = t.BoxChecked, t.Success
		}
		line := fmt.Sprintf("%s %s %s  %s",
			ui.Dim(idx), ui.C(color, box),
			ansi.Truncate(it.Title, titleWidth, "..."),
			ui.C(t.Muted, it.CreatedAt.Local().Format("Jan 2, 2006")))
		out = append(out, line)
		if d := it.Desc(); d != "" {
			out = append(out, "       "+ui.C(t.Muted, ansi.Truncate(d, titleWidth, "...")))
		}
	}
	return out
}

func groupLines(items []model.Task) []string {
	t := ui.Current()
	var pend, done []model.Task
	for _, it := range items {
		if it.Completed {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	var lines []string
	lines = append(lines, ui.C(t.Accent, "Pending"))
	if len(pend) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Accent, "Done"))
	if len(done) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}
