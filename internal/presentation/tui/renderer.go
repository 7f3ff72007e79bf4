package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown using glamour.
// The style follows the terminal background.
func NewRenderer() (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r.Render, nil
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Printer writes reports either as rendered markdown for a terminal or as
// plain markdown for pipes and files.
type Printer struct {
	w      io.Writer
	out    *termenv.Output
	render func(string) (string, error)
}

// NewPrinter styles output only when styled is true and a renderer can be built.
func NewPrinter(w io.Writer, styled bool) *Printer {
	p := &Printer{w: w, out: termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))}
	if styled {
		if r, err := NewRenderer(); err == nil {
			p.render = r
			p.out = termenv.NewOutput(w)
		}
	}
	return p
}

// Markdown writes md, rendered when the printer is styled.
func (p *Printer) Markdown(md string) error {
	if p.render != nil {
		rendered, err := p.render(md)
		if err != nil {
			return err
		}
		md = rendered
	}
	_, err := io.WriteString(p.w, md)
	return err
}

// Warn writes a highlighted warning line.
func (p *Printer) Warn(format string, args ...any) {
	msg := "warning: " + fmt.Sprintf(format, args...)
	fmt.Fprintln(p.w, p.out.String(msg).Foreground(p.out.Color("#fbbf24")).Bold())
}
