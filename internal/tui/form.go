package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/idilsaglam/taskflow/internal/dataclient"
	"github.com/idilsaglam/taskflow/internal/model"
)

type createdMsg struct{}
type createFailedMsg struct{ err error }

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
)

// formModel is the task creation card. It keeps only transient input state;
// the task snapshot lives in App.
type formModel struct {
	ctx     context.Context
	handle  dataclient.Handle
	log     logrus.FieldLogger
	refresh func() tea.Cmd

	title   textinput.Model
	desc    textarea.Model
	field   formField
	focused bool
	loading bool
	width   int
}

func newForm(ctx context.Context, h dataclient.Handle, log logrus.FieldLogger, refresh func() tea.Cmd) formModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Task title..."
	ti.CharLimit = 200

	ta := textarea.New()
	ta.Placeholder = "Task description (optional)..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 2000
	ta.SetHeight(3)

	return formModel{ctx: ctx, handle: h, log: log, refresh: refresh, title: ti, desc: ta}
}

// canSubmit mirrors the submit control's enabled state.
func (f formModel) canSubmit() bool {
	return !f.loading && strings.TrimSpace(f.title.Value()) != ""
}

// submit sends the insert. Blank titles and an absent handle are silent
// no-ops, as is a second submit while one is in flight.
func (f formModel) submit() (formModel, tea.Cmd) {
	if f.loading {
		return f, nil
	}
	nt, ok := model.Draft(f.title.Value(), f.desc.Value())
	if !ok {
		return f, nil
	}
	tasks, present := f.handle.Get()
	if !present {
		return f, nil
	}

	f.loading = true
	ctx := f.ctx
	return f, func() tea.Msg {
		if err := tasks.Insert(ctx, nt); err != nil {
			return createFailedMsg{err: err}
		}
		return createdMsg{}
	}
}

func (f formModel) focus() (formModel, tea.Cmd) {
	f.focused = true
	return f.focusField(fieldTitle)
}

func (f formModel) focusField(field formField) (formModel, tea.Cmd) {
	f.field = field
	if field == fieldTitle {
		f.desc.Blur()
		return f, f.title.Focus()
	}
	f.title.Blur()
	return f, f.desc.Focus()
}

func (f formModel) blur() formModel {
	f.focused = false
	f.title.Blur()
	f.desc.Blur()
	return f
}

func (f formModel) setWidth(w int) formModel {
	f.width = w
	inner := w - 4
	if inner < 10 {
		inner = 10
	}
	f.title.Width = inner - 3
	f.desc.SetWidth(inner)
	return f
}

func (f formModel) Update(msg tea.Msg) (formModel, tea.Cmd) {
	switch msg := msg.(type) {
	case createdMsg:
		f.loading = false
		f.title.Reset()
		f.desc.Reset()
		return f, f.refresh()

	case createFailedMsg:
		f.loading = false
		f.log.WithError(msg.err).Error("Error creating task")
		return f, nil

	case tea.KeyMsg:
		// inputs are disabled while the insert runs
		if f.loading {
			return f, nil
		}
		switch {
		case key.Matches(msg, keys.Submit):
			return f.submit()
		case msg.Type == tea.KeyEnter && f.field == fieldTitle:
			return f.submit()
		}
	}

	var cmd tea.Cmd
	if f.field == fieldTitle {
		f.title, cmd = f.title.Update(msg)
	} else {
		f.desc, cmd = f.desc.Update(msg)
	}
	return f, cmd
}

func (f formModel) View() string {
	btn := buttonDisabledStyle.Render("Create Task")
	switch {
	case f.loading:
		btn = buttonDisabledStyle.Render("Creating...")
	case f.canSubmit():
		btn = buttonStyle.Render("Create Task")
	}

	title, desc := f.title.View(), f.desc.View()
	if f.loading {
		title, desc = mutedStyle.Render(title), mutedStyle.Render(desc)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Create New Task"),
		"",
		title,
		"",
		desc,
		"",
		btn,
	)
	style := cardStyle
	if f.focused {
		style = focusedCardStyle
	}
	if f.width > 0 {
		style = style.Width(f.width - 2)
	}
	return style.Render(body)
}
