package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/idilsaglam/taskflow/internal/dataclient"
	"github.com/idilsaglam/taskflow/internal/model"
	"github.com/idilsaglam/taskflow/internal/store"
)

type mutation string

const (
	opToggle mutation = "update"
	opDelete mutation = "delete"
)

type mutatedMsg struct {
	id string
	op mutation
}

type mutateFailedMsg struct {
	id  string
	op  mutation
	err error
}

// listModel renders the snapshot it is handed and issues per-task toggle and
// delete requests. busy holds the ids with a request in flight.
type listModel struct {
	ctx     context.Context
	handle  dataclient.Handle
	log     logrus.FieldLogger
	refresh func() tea.Cmd

	list       list.Model
	tasks      []model.Task
	busy       map[string]struct{}
	confirming *model.Task
	width      int
}

func newList(ctx context.Context, h dataclient.Handle, log logrus.FieldLogger, refresh func() tea.Cmd) listModel {
	l := list.New(nil, taskDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)
	l.DisableQuitKeybindings()
	l.Styles.PaginationStyle = helpStyle

	return listModel{
		ctx:     ctx,
		handle:  h,
		log:     log,
		refresh: refresh,
		list:    l,
		busy:    map[string]struct{}{},
	}
}

func (m listModel) isBusy(id string) bool {
	_, ok := m.busy[id]
	return ok
}

func (m *listModel) setBusy(id string, on bool) {
	if on {
		m.busy[id] = struct{}{}
	} else {
		delete(m.busy, id)
	}
	m.sync()
}

// setTasks replaces the rendered snapshot.
func (m listModel) setTasks(tasks []model.Task) listModel {
	m.tasks = tasks
	m.sync()
	return m
}

func (m *listModel) sync() {
	items := make([]list.Item, 0, len(m.tasks))
	for _, t := range m.tasks {
		items = append(items, taskItem{task: t, busy: m.isBusy(t.ID)})
	}
	m.list.SetItems(items)
}

func (m listModel) setSize(w, h int) listModel {
	m.width = w
	m.list.SetSize(w, h)
	return m
}

func (m listModel) selected() (model.Task, bool) {
	it, ok := m.list.SelectedItem().(taskItem)
	if !ok {
		return model.Task{}, false
	}
	return it.task, true
}

// toggle flips completed on t. No-op while t is busy or the handle is absent.
func (m listModel) toggle(t model.Task) (listModel, tea.Cmd) {
	if m.isBusy(t.ID) {
		return m, nil
	}
	tasks, ok := m.handle.Get()
	if !ok {
		return m, nil
	}
	m.setBusy(t.ID, true)
	ctx, id, next := m.ctx, t.ID, !t.Completed
	return m, func() tea.Msg {
		if err := tasks.SetCompleted(ctx, id, next); err != nil {
			return mutateFailedMsg{id: id, op: opToggle, err: err}
		}
		return mutatedMsg{id: id, op: opToggle}
	}
}

// requestDelete opens the confirmation modal for t.
func (m listModel) requestDelete(t model.Task) listModel {
	if m.isBusy(t.ID) {
		return m
	}
	m.confirming = &t
	return m
}

func (m listModel) cancelDelete() listModel {
	m.confirming = nil
	return m
}

// confirmDelete sends the delete for the task awaiting confirmation.
func (m listModel) confirmDelete() (listModel, tea.Cmd) {
	if m.confirming == nil {
		return m, nil
	}
	id := m.confirming.ID
	m.confirming = nil
	tasks, ok := m.handle.Get()
	if !ok || m.isBusy(id) {
		return m, nil
	}
	m.setBusy(id, true)
	ctx := m.ctx
	return m, func() tea.Msg {
		if err := tasks.Delete(ctx, id); err != nil {
			return mutateFailedMsg{id: id, op: opDelete, err: err}
		}
		return mutatedMsg{id: id, op: opDelete}
	}
}

func (m listModel) Update(msg tea.Msg) (listModel, tea.Cmd) {
	switch msg := msg.(type) {
	case mutatedMsg:
		m.setBusy(msg.id, false)
		return m, m.refresh()

	case mutateFailedMsg:
		m.setBusy(msg.id, false)
		text := "Error updating task"
		if msg.op == opDelete {
			text = "Error deleting task"
		}
		if errors.Is(msg.err, store.ErrNotFound) {
			// removed elsewhere; the snapshot is stale
			m.log.WithError(msg.err).WithField("task_id", msg.id).Warn(text)
			return m, m.refresh()
		}
		m.log.WithError(msg.err).WithField("task_id", msg.id).Error(text)
		return m, nil

	case tea.KeyMsg:
		if m.confirming != nil {
			switch {
			case key.Matches(msg, keys.Confirm):
				return m.confirmDelete()
			case key.Matches(msg, keys.Cancel):
				return m.cancelDelete(), nil
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.Toggle):
			if t, ok := m.selected(); ok {
				return m.toggle(t)
			}
			return m, nil
		case key.Matches(msg, keys.Delete):
			if t, ok := m.selected(); ok {
				return m.requestDelete(t), nil
			}
			return m, nil
		case key.Matches(msg, keys.Copy):
			if t, ok := m.selected(); ok {
				if err := clipboard.WriteAll(t.Title); err != nil {
					m.log.WithError(err).Warn("copy to clipboard failed")
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m listModel) View() string {
	if len(m.tasks) == 0 {
		return cardStyle.Render(mutedStyle.Render("No tasks yet. Create your first task above!"))
	}
	out := m.list.View()
	if m.confirming != nil {
		out = lipgloss.JoinVertical(lipgloss.Left, out, m.confirmView())
	}
	return out
}

func (m listModel) confirmView() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		warnStyle.Render("Delete task?"),
		"",
		fmt.Sprintf("Are you sure you want to delete %q?", m.confirming.Title),
		"",
		helpStyle.Render("y/enter: delete   n/esc: keep"),
	)
	return warnCardStyle.Render(body)
}
