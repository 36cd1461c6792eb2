package progress

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleBar     = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
)

const (
	iconStatus  = "›"
	iconWarning = "!"
	iconSuccess = "✓"

	barWidth = 30
)

// Terminal renders a single-line progress bar and status messages.
// It is meant for a single sequential run; it is not safe for concurrent use.
type Terminal struct {
	w     io.Writer
	label string
	total int
	done  int
}

// NewTerminal creates a Terminal writing to w, typically os.Stderr so the
// report on stdout stays clean.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

// Start begins a new bar with the given label and total tick count.
func (t *Terminal) Start(label string, total int) {
	t.label = label
	t.total = total
	t.done = 0
	t.render()
}

// Advance moves the bar forward by one tick.
func (t *Terminal) Advance() {
	if t.total == 0 {
		return
	}
	if t.done < t.total {
		t.done++
	}
	t.render()
}

// Finish clears the bar line.
func (t *Terminal) Finish() {
	t.clearLine()
	t.total = 0
}

// Statusf prints an informational message on its own line.
func (t *Terminal) Statusf(format string, args ...any) {
	t.clearLine()
	fmt.Fprintln(t.w, styleDim.Render(iconStatus)+" "+fmt.Sprintf(format, args...))
}

// Warnf prints a warning message on its own line.
func (t *Terminal) Warnf(format string, args ...any) {
	t.clearLine()
	fmt.Fprintln(t.w, styleWarning.Render(iconWarning)+" "+styleWarning.Render(fmt.Sprintf(format, args...)))
}

// Successf prints a success message on its own line.
func (t *Terminal) Successf(format string, args ...any) {
	t.clearLine()
	fmt.Fprintln(t.w, styleSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func (t *Terminal) render() {
	filled := 0
	if t.total > 0 {
		filled = t.done * barWidth / t.total
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	fmt.Fprintf(t.w, "\r%s %s %s",
		styleBar.Render(bar),
		t.label,
		styleDim.Render(fmt.Sprintf("%d/%d", t.done, t.total)))
}

func (t *Terminal) clearLine() {
	if t.total == 0 {
		return
	}
	fmt.Fprintf(t.w, "\r%s\r", strings.Repeat(" ", barWidth+len(t.label)+12))
}
