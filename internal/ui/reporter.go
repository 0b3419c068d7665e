package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const (
	glyphOK   = "✔"
	glyphFail = "✖"
)

// Reporter writes user-facing progress to a single writer.
type Reporter struct {
	out     io.Writer
	spinner bool

	success lipgloss.Style
	failure lipgloss.Style
	info    lipgloss.Style
	warn    lipgloss.Style
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithoutSpinner disables the spinner, e.g. while command output is streamed.
func WithoutSpinner() Option {
	return func(r *Reporter) { r.spinner = false }
}

// New returns a Reporter for out. Colors and the spinner are only used when
// out is a terminal.
func New(out io.Writer, opts ...Option) *Reporter {
	re := lipgloss.NewRenderer(out)
	r := &Reporter{
		out:     out,
		spinner: isTerminal(out),
		success: re.NewStyle().Foreground(lipgloss.Color("2")),
		failure: re.NewStyle().Foreground(lipgloss.Color("1")),
		info:    re.NewStyle().Foreground(lipgloss.Color("6")),
		warn:    re.NewStyle().Foreground(lipgloss.Color("3")),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Success prints msg in green.
func (r *Reporter) Success(msg string) { r.println(r.success, msg) }

// Error prints msg in red.
func (r *Reporter) Error(msg string) { r.println(r.failure, msg) }

// Info prints msg in cyan.
func (r *Reporter) Info(msg string) { r.println(r.info, msg) }

// Warn prints msg in yellow.
func (r *Reporter) Warn(msg string) { r.println(r.warn, msg) }

// Plain prints msg without styling.
func (r *Reporter) Plain(msg string) { fmt.Fprintln(r.out, msg) }

// Step starts a progress indicator for desc. Callers must finish it with
// Done or Fail.
func (r *Reporter) Step(desc string) *Progress {
	p := &Progress{rep: r}
	if r.spinner {
		p.spin = startSpinner(r.out, desc, r.info)
	}
	return p
}

func (r *Reporter) println(style lipgloss.Style, msg string) {
	fmt.Fprintln(r.out, style.Render(msg))
}

// Progress is a running step indicator.
type Progress struct {
	rep  *Reporter
	spin *spinnerProgram
	done bool
}

// Done resolves the step as successful.
func (p *Progress) Done(msg string) { p.finish(p.rep.success, glyphOK, msg) }

// Fail resolves the step as failed.
func (p *Progress) Fail(msg string) { p.finish(p.rep.failure, glyphFail, msg) }

func (p *Progress) finish(style lipgloss.Style, glyph, msg string) {
	if p.done {
		return
	}
	p.done = true
	if p.spin != nil {
		p.spin.stop()
	}
	p.rep.println(style, glyph+" "+msg)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
