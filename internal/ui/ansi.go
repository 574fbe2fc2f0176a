package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

var (
	reset = "\033[0m"
	bold  = "\033[1m"
	dim   = "\033[2m"

	fgGray   = "\033[90m"
	fgGreen  = "\033[32m"
	fgYellow = "\033[33m"
	fgBlue   = "\033[34m"
	fgRed    = "\033[31m"

	symCheck = "✔"
	symCross = "✖"
)

var (
	forceColor   bool
	disableColor bool
)

func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
}

// Interactive reports whether stdout is a terminal.
func Interactive() bool { return isTerminal(os.Stdout) }

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// colorOn reports whether text written to w may carry escape codes. Only
// terminals get color unless it is forced.
func colorOn(w io.Writer) bool {
	if disableColor || current.Name == "mono" {
		return false
	}
	if forceColor {
		return true
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

func paint(w io.Writer, color, s string) string {
	if color == "" || !colorOn(w) {
		return s
	}
	return color + s + reset
}

// C colors s for output that ends up on stdout.
func C(color, s string) string { return paint(os.Stdout, color, s) }

// Dim is the faint style used for hints.
func Dim(s string) string { return C(dim, s) }

func OK(w io.Writer, msg string)   { fmt.Fprintln(w, paint(w, current.Success, symCheck+" "+msg)) }
func Fail(w io.Writer, msg string) { fmt.Fprintln(w, paint(w, current.Error, symCross+" "+msg)) }
