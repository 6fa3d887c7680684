package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/ham/pkg/domain"
	"github.com/aretw0/ham/pkg/topology"
)

// TopologyMarkdown describes every state of topo, init first, then in
// iterator order.
func TopologyMarkdown(topo *topology.Topology) string {
	var sb strings.Builder
	name := topo.Name()
	if name == "" {
		name = "topology"
	}
	fmt.Fprintf(&sb, "# %s\n\n", name)
	fmt.Fprintf(&sb, "%d states (init included), tracks: %s\n\n", topo.Len(), trackList(topo))

	if st := topo.Init(); st != nil {
		sb.WriteString(StateMarkdown(st))
	}
	for _, st := range topo.States() {
		sb.WriteString(StateMarkdown(st))
	}
	return sb.String()
}

// StateMarkdown renders one state as a heading, a transition table and its
// emission summaries.
func StateMarkdown(st *domain.State) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", st.Name)
	fmt.Fprintf(&sb, "*%s*", st.Label)
	if st.Iterator() != domain.Unassigned {
		fmt.Fprintf(&sb, " (iterator %d)", st.Iterator())
	}
	sb.WriteString("\n\n")

	sb.WriteString("| to | probability | log |\n")
	sb.WriteString("|---|---:|---:|\n")
	for _, t := range st.Transitions() {
		if t == nil {
			continue
		}
		writeRow(&sb, t)
	}
	if end := st.EndTransition(); end != nil {
		writeRow(&sb, end)
	}
	sb.WriteString("\n")

	if e, ok := st.SingleEmission(); ok {
		fmt.Fprintf(&sb, "**emissions**\n\n```\n%s\n```\n\n", strings.TrimRight(e.Summary(), "\n"))
	}
	if e, ok := st.PairEmission(); ok {
		fmt.Fprintf(&sb, "**pair emissions**\n\n```\n%s\n```\n\n", strings.TrimRight(e.Summary(), "\n"))
	}
	return sb.String()
}

func writeRow(sb *strings.Builder, t *domain.Transition) {
	fmt.Fprintf(sb, "| %s | %s | %s |\n", t.To(), formatFloat(t.Prob()), formatFloat(t.LogProb()))
}

func formatFloat(f float64) string {
	if math.IsInf(f, -1) {
		return "-inf"
	}
	return strconv.FormatFloat(f, 'g', 6, 64)
}

func trackList(topo *topology.Topology) string {
	names := topo.Tracks().Names()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
