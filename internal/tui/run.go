package tui

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/sirupsen/logrus"

	"github.com/idilsaglam/taskflow/internal/dataclient"
)

// Run starts the page and blocks until the user quits.
func Run(ctx context.Context, h dataclient.Handle, log logrus.FieldLogger) error {
	p := tea.NewProgram(NewApp(ctx, h, log), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// widthHeight is the initial size until the first WindowSizeMsg arrives.
func widthHeight() (int, int) {
	w, h := 80, 24
	if tw, th, err := term.GetSize(os.Stdout.Fd()); err == nil && tw > 0 && th > 0 {
		w, h = tw, th
	}
	return w, h
}
