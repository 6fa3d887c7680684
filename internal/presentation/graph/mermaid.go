package graph

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/ham/pkg/domain"
	"github.com/aretw0/ham/pkg/topology"
)

// GraphOverlay contains state names to highlight on the graph.
type GraphOverlay struct {
	Highlighted []string
	Current     string
}

// GenerateMermaid produces a Mermaid flowchart of a finalized topology.
// It applies semantic styling:
// - init: ((Circle))
// - single emission: [Rectangle]
// - pair emission: [[Subroutine]]
// - silent (no emission): ([Stadium])
// - end: (((Double circle))), only drawn when some state can end
// Edges carry their probability; impossible (probability 0) edges are omitted.
func GenerateMermaid(topo *topology.Topology, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	ends := false
	for _, st := range topo.All() {
		safeID := sanitizeMermaidID(st.Name)
		opener, closer := shape(st)
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(st.Label), closer)

		for _, t := range st.Transitions() {
			if t == nil || math.IsInf(t.LogProb(), -1) {
				continue
			}
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", safeID, formatProb(t), sanitizeMermaidID(t.To()))
		}
		if end := st.EndTransition(); end != nil && !math.IsInf(end.LogProb(), -1) {
			ends = true
			fmt.Fprintf(&sb, "    %s -. \"%s\" .-> %s\n", safeID, formatProb(end), endID)
		}
	}
	if ends {
		fmt.Fprintf(&sb, "    %s(((\"%s\")))\n", endID, domain.EndState)
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef highlighted fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, name := range overlay.Highlighted {
			if _, ok := topo.Lookup(name); !ok {
				continue
			}
			safeID := sanitizeMermaidID(name)
			if !seen[safeID] {
				seen[safeID] = true
				fmt.Fprintf(&sb, "    class %s highlighted;\n", safeID)
			}
		}

		if _, ok := topo.Lookup(overlay.Current); ok {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.Current))
		}
	}

	return sb.String()
}

// endID is prefixed so a user state sanitized to "end" cannot collide with it.
const endID = "__end"

func shape(st *domain.State) (string, string) {
	if st.IsInit() {
		return "((", "))"
	}
	if _, ok := st.PairEmission(); ok {
		return "[[", "]]"
	}
	if _, ok := st.SingleEmission(); ok {
		return "[", "]"
	}
	return "([", "])"
}

func formatProb(t *domain.Transition) string {
	return strconv.FormatFloat(t.Prob(), 'g', 4, 64)
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
