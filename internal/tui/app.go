// Package tui is the interactive TaskFlow page: a creation form next to the
// task list, with summary counts in the header.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/idilsaglam/taskflow/internal/config"
	"github.com/idilsaglam/taskflow/internal/dataclient"
	"github.com/idilsaglam/taskflow/internal/model"
	"github.com/idilsaglam/taskflow/internal/ui"
)

type tasksLoadedMsg struct{ tasks []model.Task }
type fetchFailedMsg struct{ err error }

type pane int

const (
	paneList pane = iota
	paneForm
)

// wideLayout is the width from which form and list sit side by side.
const wideLayout = 100

// App is the page controller. It owns the task snapshot and hands fetchAll
// to the form and list as their refresh callback.
type App struct {
	ctx    context.Context
	handle dataclient.Handle
	log    logrus.FieldLogger

	tasks   []model.Task
	loading bool

	form    formModel
	list    listModel
	pane    pane
	spinner spinner.Model
	help    help.Model

	width, height int
}

func NewApp(ctx context.Context, h dataclient.Handle, log logrus.FieldLogger) *App {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = accentStyle

	a := &App{
		ctx:     ctx,
		handle:  h,
		log:     log.WithField("component", "tui"),
		loading: true,
		spinner: s,
		help:    help.New(),
	}
	a.form = newForm(ctx, h, a.log, a.fetchAll)
	a.list = newList(ctx, h, a.log, a.fetchAll)
	a.resize(widthHeight())
	return a
}

// fetchAll reloads the whole collection, newest first. With an absent handle
// it only clears loading; the collection stays empty.
func (a *App) fetchAll() tea.Cmd {
	tasks, ok := a.handle.Get()
	if !ok {
		a.loading = false
		return nil
	}
	ctx := a.ctx
	return func() tea.Msg {
		list, err := tasks.List(ctx)
		if err != nil {
			return fetchFailedMsg{err: err}
		}
		return tasksLoadedMsg{tasks: list}
	}
}

// Stats are recomputed from the snapshot on every call.
func (a *App) Stats() model.Stats { return model.Summarize(a.tasks) }

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.fetchAll())
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tasksLoadedMsg:
		a.loading = false
		a.tasks = msg.tasks
		a.list = a.list.setTasks(msg.tasks)
		return a, nil

	case fetchFailedMsg:
		a.loading = false
		a.log.WithError(msg.err).Error("Error fetching tasks")
		return a, nil

	case createdMsg, createFailedMsg:
		var cmd tea.Cmd
		a.form, cmd = a.form.Update(msg)
		return a, cmd

	case mutatedMsg, mutateFailedMsg:
		var cmd tea.Cmd
		a.list, cmd = a.list.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}
	if !a.handle.Present() {
		if key.Matches(msg, keys.Quit) || msg.Type == tea.KeyEsc {
			return a, tea.Quit
		}
		return a, nil
	}

	if a.pane == paneForm {
		switch {
		case msg.Type == tea.KeyTab && !a.form.loading:
			if a.form.field == fieldTitle {
				var cmd tea.Cmd
				a.form, cmd = a.form.focusField(fieldDescription)
				return a, cmd
			}
			a.form = a.form.blur()
			a.pane = paneList
			return a, nil
		case key.Matches(msg, keys.Back):
			a.form = a.form.blur()
			a.pane = paneList
			return a, nil
		}
		var cmd tea.Cmd
		a.form, cmd = a.form.Update(msg)
		return a, cmd
	}

	// the confirmation modal takes every key until it closes
	if a.list.confirming == nil {
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.New), msg.Type == tea.KeyTab:
			a.pane = paneForm
			var cmd tea.Cmd
			a.form, cmd = a.form.focus()
			return a, cmd
		case key.Matches(msg, keys.Refresh):
			return a, a.fetchAll()
		}
	}
	var cmd tea.Cmd
	a.list, cmd = a.list.Update(msg)
	return a, cmd
}

func (a *App) resize(w, h int) {
	a.width, a.height = w, h
	formW, listW := w-4, w-4
	if w >= wideLayout {
		formW = (w - 6) / 2
		listW = w - 6 - formW
	}
	a.form = a.form.setWidth(formW)
	// header, list heading, footer
	listH := h - 12
	if w < wideLayout {
		listH -= 14
	}
	if listH < 4 {
		listH = 4
	}
	a.list = a.list.setSize(listW, listH)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.handle.Present() {
		return panelString(a.configView())
	}

	var formCol, listCol string
	formCol = a.form.View()
	listCol = a.listColumn()

	body := lipgloss.JoinVertical(lipgloss.Left, formCol, "", listCol)
	if a.width >= wideLayout {
		body = lipgloss.JoinHorizontal(lipgloss.Top, formCol, "  ", listCol)
	}

	var hk help.KeyMap = listHelp{}
	if a.pane == paneForm {
		hk = formHelp{}
	}
	return panelString(lipgloss.JoinVertical(lipgloss.Left,
		a.header(),
		"",
		body,
		"",
		a.help.View(hk),
	))
}

func (a *App) header() string {
	lines := []string{brandStyle.Render("☑ TaskFlow")}
	st := a.Stats()
	if st.Total > 0 {
		lines = append(lines, fmt.Sprintf("%s   %s   %s",
			accentStyle.Render(fmt.Sprintf("%d total tasks", st.Total)),
			successStyle.Render(fmt.Sprintf("%d completed", st.Completed)),
			pendingStyle.Render(fmt.Sprintf("%d pending", st.Pending)),
		))
		lines = append(lines, mutedStyle.Render(ui.ProgressBar(st.Completed, st.Total, 28)))
	}
	return strings.Join(lines, "\n")
}

func (a *App) listColumn() string {
	sub := fmt.Sprintf("%d tasks", len(a.tasks))
	if a.loading {
		sub = a.spinner.View() + " Loading tasks..."
	}
	heading := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Your Tasks"),
		mutedStyle.Render(sub),
		"",
	)
	if a.loading {
		return heading + "\n" + skeleton(a.list.width)
	}
	return heading + "\n" + a.list.View()
}

// skeleton is the placeholder shown while the first fetch is outstanding.
func skeleton(width int) string {
	if width <= 0 {
		width = 40
	}
	block := skeletonStyle.Render(strings.Repeat("░", width))
	rows := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		rows = append(rows, block+"\n"+block)
	}
	return strings.Join(rows, "\n\n")
}

func (a *App) configView() string {
	envs := lipgloss.JoinVertical(lipgloss.Left,
		config.EnvURL+"=your_supabase_url",
		config.EnvKey+"=your_anon_key",
	)
	body := lipgloss.JoinVertical(lipgloss.Left,
		warnStyle.Render("⚠ Configuration Required"),
		"",
		"To use TaskFlow, please add your Supabase environment variables:",
		"",
		cardStyle.Render(envs),
		"",
		mutedStyle.Render("or run `taskflow auth login` to save them to ~/.taskflow/credentials.json"),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		brandStyle.Render("☑ TaskFlow"),
		"",
		warnCardStyle.Render(body),
		"",
		helpStyle.Render("q: quit"),
	)
}
