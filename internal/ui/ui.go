// Package ui prints short, optionally colored status lines for the CLI.
package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer writes status lines to a single destination.
type Printer struct {
	out    io.Writer
	green  *color.Color
	yellow *color.Color
	red    *color.Color
	cyan   *color.Color
	bold   *color.Color
}

// New returns a Printer writing to w. When noColor is set every line is
// written without ANSI escapes.
func New(w io.Writer, noColor bool) *Printer {
	p := &Printer{
		out:    w,
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		red:    color.New(color.FgRed),
		cyan:   color.New(color.FgCyan),
		bold:   color.New(color.Bold),
	}

	for _, c := range []*color.Color{p.green, p.yellow, p.red, p.cyan, p.bold} {
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}

	return p
}

// Success prints a green line prefixed with a check mark.
func (p *Printer) Success(format string, args ...any) {
	_, _ = p.green.Fprintf(p.out, "✓ "+format+"\n", args...)
}

// Warning prints a yellow line.
func (p *Printer) Warning(format string, args ...any) {
	_, _ = p.yellow.Fprintf(p.out, "⚠ "+format+"\n", args...)
}

// Error prints a red line.
func (p *Printer) Error(format string, args ...any) {
	_, _ = p.red.Fprintf(p.out, "✗ "+format+"\n", args...)
}

// Header prints a bold line.
func (p *Printer) Header(format string, args ...any) {
	_, _ = p.bold.Fprintf(p.out, format+"\n", args...)
}

// Plain prints an uncolored line.
func (p *Printer) Plain(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

// Added, Removed and Hunk color a single unified diff line.
func (p *Printer) Added(line string)   { _, _ = p.green.Fprintln(p.out, line) }
func (p *Printer) Removed(line string) { _, _ = p.red.Fprintln(p.out, line) }
func (p *Printer) Hunk(line string)    { _, _ = p.cyan.Fprintln(p.out, line) }
func (p *Printer) Title(line string)   { _, _ = p.bold.Fprintln(p.out, line) }
