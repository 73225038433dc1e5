// Package progress prints the step-by-step trace an operator reads while a
// release or asset job runs.
package progress

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const ruleWidth = 70

// Printer writes a colored trace to w. The zero value is not usable; use New.
type Printer struct {
	w     io.Writer
	ok    *color.Color
	warn  *color.Color
	fail  *color.Color
	title *color.Color
	faint *color.Color
}

// New returns a Printer writing to w. Color is disabled automatically when w
// is not a terminal (see color.NoColor).
func New(w io.Writer) *Printer {
	return &Printer{
		w:     w,
		ok:    color.New(color.FgGreen),
		warn:  color.New(color.FgYellow),
		fail:  color.New(color.FgRed, color.Bold),
		title: color.New(color.FgCyan, color.Bold),
		faint: color.New(color.Faint),
	}
}

// Banner prints a framed title.
func (p *Printer) Banner(title string) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintln(p.w, rule)
	p.title.Fprintln(p.w, title)
	fmt.Fprintln(p.w, rule)
	fmt.Fprintln(p.w)
}

// Step starts numbered step n.
func (p *Printer) Step(n int, title string) {
	fmt.Fprintln(p.w)
	p.title.Fprintf(p.w, "Step %d: %s\n", n, title)
}

// OK reports a completed action.
func (p *Printer) OK(format string, args ...any) {
	p.ok.Fprint(p.w, "✅ ")
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Info prints an indented detail line.
func (p *Printer) Info(format string, args ...any) {
	p.faint.Fprintf(p.w, "   "+format+"\n", args...)
}

// Warn reports a non-fatal problem.
func (p *Printer) Warn(format string, args ...any) {
	p.warn.Fprintf(p.w, "⚠️  "+format+"\n", args...)
}

// Fail reports a fatal problem.
func (p *Printer) Fail(format string, args ...any) {
	p.fail.Fprintf(p.w, "❌ "+format+"\n", args...)
}

// Done prints the closing banner.
func (p *Printer) Done(format string, args ...any) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, rule)
	p.ok.Fprintf(p.w, format+"\n", args...)
	fmt.Fprintln(p.w, rule)
}

// Nop discards the trace.
type Nop struct{}

func (Nop) Banner(string)       {}
func (Nop) Step(int, string)    {}
func (Nop) OK(string, ...any)   {}
func (Nop) Info(string, ...any) {}
func (Nop) Warn(string, ...any) {}
func (Nop) Fail(string, ...any) {}
func (Nop) Done(string, ...any) {}

// Size formats a byte count the way the download page shows it.
func Size(n int64) string {
	size := float64(n)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f TB", size)
}
