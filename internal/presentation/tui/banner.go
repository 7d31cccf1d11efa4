package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Tendril banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text, color string
	}{
		{" _                  _      _ _ ", "#34d399"},
		{"| |_ ___ _ __   __| |_ __(_) |", "#2dd4bf"},
		{"| __/ _ \\ '_ \\ / _` | '__| | |", "#22d3ee"},
		{"| ||  __/ | | | (_| | |  | | |", "#38bdf8"},
		{" \\__\\___|_| |_|\\__,_|_|  |_|_|", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// ErrorBox renders a build error the way the live view shows it: a red
// banner above the still running graph.
func ErrorBox(err error) string {
	if err == nil {
		return ""
	}
	p := termenv.ColorProfile()
	return termenv.String(" ✗ " + err.Error() + " ").
		Foreground(p.Color("#ffffff")).
		Background(p.Color("#b91c1c")).
		Bold().
		String()
}
