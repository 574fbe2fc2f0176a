package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle  key.Binding
	Delete  key.Binding
	New     key.Binding
	Copy    key.Binding
	Refresh key.Binding
	Focus   key.Binding
	Submit  key.Binding
	Back    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Toggle:  key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
	Delete:  key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
	New:     key.NewBinding(key.WithKeys("n", "a"), key.WithHelp("n", "new task")),
	Copy:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy title")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Focus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	Submit:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "create")),
	Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to list")),
	Confirm: key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "delete")),
	Cancel:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "keep")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// listHelp and formHelp feed bubbles/help for the footer.
type listHelp struct{}

func (listHelp) ShortHelp() []key.Binding {
	return []key.Binding{keys.Toggle, keys.Delete, keys.New, keys.Copy, keys.Refresh, keys.Quit}
}
func (h listHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }

type formHelp struct{}

func (formHelp) ShortHelp() []key.Binding {
	return []key.Binding{keys.Focus, keys.Submit, keys.Back}
}
func (h formHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }
