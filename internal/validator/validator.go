package validator

import (
	"fmt"
	"math"
	"strings"

	"github.com/aretw0/ham/pkg/domain"
	"github.com/aretw0/ham/pkg/topology"
)

// Tolerance is the allowed distance of a distribution's mass from 1.
const Tolerance = 1e-6

// Issue kinds.
const (
	KindUnreachable    = "unreachable"
	KindCannotEnd      = "cannot-end"
	KindTransitionMass = "transition-mass"
	KindEmissionMass   = "emission-mass"
)

// Issue is a modelling problem that does not prevent loading.
type Issue struct {
	State  string `json:"state"`
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s (%s)", i.State, i.Detail, i.Kind)
}

// Inspect checks a finalized topology for unreachable states, states that
// can never end, and distributions that do not sum to 1. Issues are reported
// per state, init first, then in iterator order.
func Inspect(topo *topology.Topology) []Issue {
	states := append([]*domain.State{topo.Init()}, topo.States()...)
	reachable := forward(topo)
	canEnd, anyEnd := backward(topo)

	var issues []Issue
	for _, st := range states {
		if !st.IsInit() && !reachable[st.Name] {
			issues = append(issues, Issue{st.Name, KindUnreachable, "no path from init"})
		}
		if anyEnd && !canEnd[st.Name] {
			issues = append(issues, Issue{st.Name, KindCannotEnd, "no path to end"})
		}
		if mass := transitionMass(st); math.Abs(mass-1) > Tolerance {
			issues = append(issues, Issue{st.Name, KindTransitionMass, fmt.Sprintf("transitions sum to %.6g", mass)})
		}
		issues = append(issues, emissionIssues(topo, st)...)
	}
	return issues
}

// ValidateTopology returns an error listing every issue Inspect finds.
func ValidateTopology(topo *topology.Topology) error {
	issues := Inspect(topo)
	if len(issues) == 0 {
		return nil
	}
	lines := make([]string, len(issues))
	for i, issue := range issues {
		lines[i] = issue.String()
	}
	return fmt.Errorf("found %d issues:\n- %s", len(issues), strings.Join(lines, "\n- "))
}

// forward crawls possible transitions starting from init.
func forward(topo *topology.Topology) map[string]bool {
	visited := make(map[string]bool)
	queue := []*domain.State{topo.Init()}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current.Name] {
			continue
		}
		visited[current.Name] = true

		for k := range topo.States() {
			if possible(current.LogProbTo(k)) {
				if next := topo.State(k); !visited[next.Name] {
					queue = append(queue, next)
				}
			}
		}
	}
	return visited
}

// backward marks states from which end is reachable. It reports false when no
// state can end at all; such models loop forever by construction and are not
// flagged state by state.
func backward(topo *topology.Topology) (map[string]bool, bool) {
	all := append([]*domain.State{topo.Init()}, topo.States()...)
	canEnd := make(map[string]bool)
	for _, st := range all {
		if possible(st.EndLogProb()) {
			canEnd[st.Name] = true
		}
	}
	if len(canEnd) == 0 {
		return canEnd, false
	}

	// Fixed point over the dense rows; at most len(all) rounds.
	for changed := true; changed; {
		changed = false
		for _, st := range all {
			if canEnd[st.Name] {
				continue
			}
			for k := range topo.States() {
				if possible(st.LogProbTo(k)) && canEnd[topo.State(k).Name] {
					canEnd[st.Name] = true
					changed = true
					break
				}
			}
		}
	}
	return canEnd, true
}

func transitionMass(st *domain.State) float64 {
	sum := math.Exp(st.EndLogProb())
	for _, t := range st.Transitions() {
		if t != nil {
			sum += t.Prob()
		}
	}
	return sum
}

func emissionIssues(topo *topology.Topology, st *domain.State) []Issue {
	var issues []Issue
	if e, ok := st.SingleEmission(); ok {
		if track, ok := topo.Tracks().Lookup(e.TrackName()); ok {
			sum := 0.0
			for _, sym := range track.Alphabet {
				sum += math.Exp(e.LogProb(sym))
			}
			if math.Abs(sum-1) > Tolerance {
				issues = append(issues, Issue{st.Name, KindEmissionMass, fmt.Sprintf("emissions on %q sum to %.6g", track.Name, sum)})
			}
		}
	}
	if e, ok := st.PairEmission(); ok {
		names := e.TrackNames()
		first, ok1 := topo.Tracks().Lookup(names[0])
		second, ok2 := topo.Tracks().Lookup(names[1])
		if ok1 && ok2 {
			sum := 0.0
			for _, a := range first.Alphabet {
				for _, b := range second.Alphabet {
					sum += math.Exp(e.LogProb(a, b))
				}
			}
			if math.Abs(sum-1) > Tolerance {
				issues = append(issues, Issue{st.Name, KindEmissionMass, fmt.Sprintf("pair emissions on %q x %q sum to %.6g", names[0], names[1], sum)})
			}
		}
	}
	return issues
}

func possible(logProb float64) bool {
	return !math.IsInf(logProb, -1)
}
