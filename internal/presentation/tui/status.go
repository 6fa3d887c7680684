package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// Success prints a green check line.
func Success(w io.Writer, format string, args ...any) {
	status(w, "✓", "#22c55e", format, args...)
}

// Failure prints a red cross line.
func Failure(w io.Writer, format string, args ...any) {
	status(w, "✗", "#ef4444", format, args...)
}

// Warning prints a yellow bang line.
func Warning(w io.Writer, format string, args ...any) {
	status(w, "!", "#eab308", format, args...)
}

func status(w io.Writer, mark, color, format string, args ...any) {
	out := termenv.NewOutput(w)
	prefix := out.String(mark).Foreground(out.Color(color)).Bold()
	fmt.Fprintf(w, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}
