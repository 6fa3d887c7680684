package domain

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a human-readable description of the state to w.
// It does not modify the state.
func (s *State) Dump(w io.Writer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "state: %s (%s)\n", s.Name, s.Label)

	sb.WriteString("  transitions:\n")
	if s.finalized {
		for k, t := range s.dense {
			if t == nil {
				continue
			}
			fmt.Fprintf(&sb, "    [%d] %s\n", k, t)
		}
	} else {
		for _, t := range s.sparse {
			fmt.Fprintf(&sb, "    %s\n", t)
		}
	}
	if s.end != nil {
		fmt.Fprintf(&sb, "    %s\n", s.end)
	}

	if !s.IsInit() {
		if s.single != nil {
			sb.WriteString("  emissions:\n")
			writeIndented(&sb, s.single.Summary())
		}
		if s.pair != nil {
			sb.WriteString("  pair emissions:\n")
			writeIndented(&sb, s.pair.Summary())
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeIndented(sb *strings.Builder, text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		sb.WriteString("    ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
}
