package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ham banner and version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	// Teal to green, one shade per line
	lines := []struct{ text, color string }{
		{" _", "#2dd4bf"},
		{"| |__   __ _ _ __ ___", "#34d399"},
		{"| '_ \\ / _` | '_ ` _ \\", "#4ade80"},
		{"| | | | (_| | | | | | |", "#a3e635"},
		{"|_| |_|\\__,_|_| |_| |_|", "#facc15"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  "+version).Faint())
	fmt.Fprintln(w)
}
