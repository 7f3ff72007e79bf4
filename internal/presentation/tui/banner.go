package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the markov banner and version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{`  _ __ ___   __ _ _ __| | _______   __`, "#818cf8"},
		{` | '_ ' _ \ / _' | '__| |/ / _ \ \ / /`, "#a78bfa"},
		{` | | | | | | (_| | |  |   < (_) \ V / `, "#c084fc"},
		{` |_| |_| |_|\__,_|_|  |_|\_\___/ \_/  `, "#e879f9"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  version "+version).Faint())
	fmt.Fprintln(w)
}
