package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
)

const (
	failMarker    = "✖"
	successMarker = "✔"
	stepMarker    = "◇"
)

var (
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	introStyle   = lipgloss.NewStyle().Background(lipgloss.Color("6")).Foreground(lipgloss.Color("0")).Padding(0, 1)
	hintStyle    = lipgloss.NewStyle().Faint(true)
)

// Reporter prints hook progress for a human reading the terminal.
type Reporter struct {
	w       io.Writer
	spinner *Spinner
	plain   bool
}

// NewReporter writes to w. Styling and animation are only applied when w is
// a terminal.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w, plain: !IsTerminal(w)}
}

// Intro prints the opening banner.
func (r *Reporter) Intro(title string) {
	fmt.Fprintln(r.w, r.style(introStyle, title))
}

// Start shows a progress indicator with message.
func (r *Reporter) Start(message string) {
	r.spinner = NewSpinner(r.w, message)
	if r.spinner.Enabled() {
		r.spinner.Start()
		return
	}
	fmt.Fprintf(r.w, "%s %s\n", stepMarker, message)
}

// Stop ends the progress indicator, leaving message behind.
func (r *Reporter) Stop(message string) {
	if r.spinner != nil {
		r.spinner.Stop()
		r.spinner = nil
	}
	fmt.Fprintf(r.w, "%s %s\n", r.style(successStyle, successMarker), message)
}

// Outro prints a closing line.
func (r *Reporter) Outro(message string) {
	fmt.Fprintf(r.w, "└ %s\n", message)
}

// Fail prints err behind the failure marker, followed by any hints attached
// to it.
func (r *Reporter) Fail(err error) {
	if r.spinner != nil {
		r.spinner.Stop()
		r.spinner = nil
	}
	fmt.Fprintf(r.w, "%s %v\n", r.style(failStyle, failMarker), err)

	if hints := errors.FlattenHints(err); hints != "" {
		for _, line := range strings.Split(hints, "\n") {
			fmt.Fprintln(r.w, r.style(hintStyle, "  hint: "+line))
		}
	}
}

func (r *Reporter) style(s lipgloss.Style, text string) string {
	if r.plain {
		return text
	}
	return s.Render(text)
}
