package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Printer writes status lines, styling them only when the target is a terminal.
type Printer struct {
	w      io.Writer
	styled bool
}

// NewPrinter creates a printer for w. Styling is enabled when w is a
// terminal file descriptor.
func NewPrinter(w io.Writer) *Printer {
	styled := false
	if f, ok := w.(*os.File); ok {
		styled = term.IsTerminal(int(f.Fd()))
	}
	return &Printer{w: w, styled: styled}
}

// NewPlainPrinter creates a printer that never styles its output.
func NewPlainPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) render(style lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}
	return style.Render(s)
}

func (p *Printer) line(icon string, style lipgloss.Style, format string, args ...any) {
	if p.styled {
		icon = Icon(icon, style)
	}
	fmt.Fprintf(p.w, "%s %s\n", icon, fmt.Sprintf(format, args...))
}

// Success prints a completed step.
func (p *Printer) Success(format string, args ...any) {
	p.line("✔", StyleSuccess, format, args...)
}

// Warn prints a non-fatal problem.
func (p *Printer) Warn(format string, args ...any) {
	p.line("!", StyleWarning, format, args...)
}

// Error prints a failure.
func (p *Printer) Error(format string, args ...any) {
	p.line("✘", StyleError, format, args...)
}

// Info prints a dimmed detail line.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.w, p.render(StyleSubtle, fmt.Sprintf(format, args...)))
}

// Title prints a heading.
func (p *Printer) Title(s string) {
	fmt.Fprintln(p.w, p.render(StyleTitle, s))
}
