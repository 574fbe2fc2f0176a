package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestProgressBar(t *testing.T) {
	if got := ProgressBar(1, 4, 8); got != "██░░░░░░  25%" {
		t.Fatalf("unexpected bar %q", got)
	}
	if got := ProgressBar(0, 0, 5); got != "░░░░░   0%" {
		t.Fatalf("unexpected empty bar %q", got)
	}
}

func TestPanel_PadsByCellWidth(t *testing.T) {
	SetTheme("classic")
	defer SetTheme("classic")
	SetColorForcing(false, true)
	defer SetColorForcing(false, false)

	var buf bytes.Buffer
	Panel(&buf, []string{"ab", "üb!"})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if lines[0] != "┌─────┐" || lines[1] != "│ ab  │" || lines[3] != "└─────┘" {
		t.Fatalf("unexpected panel:\n%s", buf.String())
	}
}

func TestMonoThemeDisablesColor(t *testing.T) {
	SetTheme("mono")
	defer func() {
		SetColorForcing(false, false)
		SetTheme("classic")
	}()
	if Current().BoxChecked != "[x]" {
		t.Fatalf("expected ascii boxes")
	}
	if C(fgRed, "x") != "x" {
		t.Fatalf("expected color to be disabled")
	}
	var buf bytes.Buffer
	Fail(&buf, "boom")
	if buf.String() != "✖ boom\n" {
		t.Fatalf("unexpected fail line %q", buf.String())
	}
}

func TestLeavingMonoRestoresColor(t *testing.T) {
	before := lipgloss.ColorProfile()
	SetColorForcing(true, false)
	defer func() {
		SetColorForcing(false, false)
		SetTheme("classic")
	}()

	SetTheme("mono")
	if lipgloss.ColorProfile() != termenv.Ascii {
		t.Fatalf("mono should use the ascii profile")
	}
	SetTheme("classic")
	if got := lipgloss.ColorProfile(); got != before {
		t.Fatalf("profile not restored: got %v, want %v", got, before)
	}
	if C(fgRed, "x") != fgRed+"x"+reset {
		t.Fatalf("forced color should apply again after leaving mono")
	}
}

func TestOutputColorFollowsWriter(t *testing.T) {
	SetTheme("classic")
	defer SetColorForcing(false, false)

	var buf bytes.Buffer
	Fail(&buf, "boom")
	if buf.String() != "✖ boom\n" {
		t.Fatalf("a non-terminal writer must not get escape codes, got %q", buf.String())
	}

	SetColorForcing(true, false)
	buf.Reset()
	OK(&buf, "done")
	if !strings.HasPrefix(buf.String(), fgGreen) {
		t.Fatalf("forced color should apply to any writer, got %q", buf.String())
	}
}
