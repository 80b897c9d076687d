// Package ui provides styled terminal output for user-facing messages.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
)

// UI writes labeled, colored messages. Color is dropped when stdout is not a
// terminal or NO_COLOR is set.
type UI struct {
	out   io.Writer
	err   io.Writer
	color bool
}

// New creates a UI with auto-detected color support.
func New() *UI {
	return &UI{out: os.Stdout, err: os.Stderr, color: shouldColor()}
}

func shouldColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func (u *UI) render(style lipgloss.Style, label string) string {
	if !u.color {
		return label
	}
	return style.Render(label)
}

// Info prints an informational message.
func (u *UI) Info(format string, args ...any) {
	fmt.Fprintln(u.out, u.render(infoStyle, "[INFO]")+" "+fmt.Sprintf(format, args...))
}

// Success prints a success message.
func (u *UI) Success(format string, args ...any) {
	fmt.Fprintln(u.out, u.render(successStyle, "[OK]")+" "+fmt.Sprintf(format, args...))
}

// Warn prints a warning message.
func (u *UI) Warn(format string, args ...any) {
	fmt.Fprintln(u.out, u.render(warnStyle, "[WARN]")+" "+fmt.Sprintf(format, args...))
}

// Error prints an error message to stderr.
func (u *UI) Error(format string, args ...any) {
	fmt.Fprintln(u.err, u.render(errorStyle, "[ERROR]")+" "+fmt.Sprintf(format, args...))
}

// Step prints a section header for a multi-stage operation.
func (u *UI) Step(format string, args ...any) {
	fmt.Fprintln(u.out, u.render(stepStyle, "==>")+" "+fmt.Sprintf(format, args...))
}
