package domain

import (
	"fmt"
	"math"
	"slices"
)

// SingleEmission is the capability of emitting one symbol from one track.
type SingleEmission interface {
	TrackName() string
	LogProb(symbol string) float64
	Summary() string
}

// PairEmission is the capability of emitting a symbol pair from two tracks.
type PairEmission interface {
	TrackNames() [2]string
	LogProb(a, b string) float64
	Summary() string
}

// State is a named node of an HMM topology.
//
// Transitions are held sparse (parse order, addressed by name) until Finalize
// turns them into a dense slice addressed by destination iterator.
type State struct {
	Name  string
	Label string

	sparse    []*Transition
	dense     []*Transition
	finalized bool

	end *Transition

	single SingleEmission
	pair   PairEmission

	iterator int
}

// NewState creates an empty, unassigned state.
func NewState(name, label string) *State {
	return &State{
		Name:     name,
		Label:    label,
		iterator: Unassigned,
	}
}

// IsInit reports whether this is the reserved start state.
func (s *State) IsInit() bool { return s.Name == InitState }

// AddTransition appends a transition to a non-terminal state.
// It must be called before Finalize. Each destination may appear once.
func (s *State) AddTransition(t *Transition) error {
	if s.finalized {
		return fmt.Errorf("%w: %s", ErrAlreadyFinalized, s.Name)
	}
	if t.IsEnd() {
		return s.SetEnd(t)
	}
	for _, existing := range s.sparse {
		if existing.To() == t.To() {
			return fmt.Errorf("%w: %s -> %s", ErrDuplicateTransition, s.Name, t.To())
		}
	}
	s.sparse = append(s.sparse, t)
	return nil
}

// SetEnd sets (or replaces) the transition to the end pseudo-state.
func (s *State) SetEnd(t *Transition) error {
	if !t.IsEnd() {
		return fmt.Errorf("%w: %s is not an end transition", ErrUnknownState, t.To())
	}
	s.end = t
	return nil
}

// EndTransition returns the end transition, or nil.
func (s *State) EndTransition() *Transition { return s.end }

// HasEnd reports whether an end transition was declared.
func (s *State) HasEnd() bool { return s.end != nil }

// EndLogProb returns the log probability of ending from this state,
// or -Inf when no end transition was declared.
func (s *State) EndLogProb() float64 {
	if s.end == nil {
		return math.Inf(-1)
	}
	return s.end.LogProb()
}

// SetSingleEmission attaches a single-track emission model.
func (s *State) SetSingleEmission(e SingleEmission) error {
	if s.IsInit() {
		return fmt.Errorf("%w: single", ErrInitEmission)
	}
	s.single = e
	return nil
}

// SetPairEmission attaches a two-track emission model.
func (s *State) SetPairEmission(e PairEmission) error {
	if s.IsInit() {
		return fmt.Errorf("%w: pair", ErrInitEmission)
	}
	s.pair = e
	return nil
}

// SingleEmission returns the single-track emission model, if any.
func (s *State) SingleEmission() (SingleEmission, bool) {
	return s.single, s.single != nil
}

// PairEmission returns the two-track emission model, if any.
func (s *State) PairEmission() (PairEmission, bool) {
	return s.pair, s.pair != nil
}

// Iterator returns the position assigned by the owning topology,
// or Unassigned.
func (s *State) Iterator() int { return s.iterator }

// SetIterator assigns the state's dense position. Only the owning topology
// should call it, before any state is finalized.
func (s *State) SetIterator(i int) { s.iterator = i }

// Finalized reports whether the transitions are in dense form.
func (s *State) Finalized() bool { return s.finalized }

// Transitions returns a copy of the current transitions: parse order before
// Finalize, dense by destination iterator after (nil slots have no edge).
func (s *State) Transitions() []*Transition {
	if s.finalized {
		return slices.Clone(s.dense)
	}
	return slices.Clone(s.sparse)
}

// TransitionTo returns the transition to the state with iterator k.
// It returns nil before Finalize, for empty slots and for out-of-range k.
func (s *State) TransitionTo(k int) *Transition {
	if !s.finalized || k < 0 || k >= len(s.dense) {
		return nil
	}
	return s.dense[k]
}

// LogProbTo returns the log probability of moving to the state with
// iterator k, or -Inf when there is no such transition.
func (s *State) LogProbTo(k int) float64 {
	if t := s.TransitionTo(k); t != nil {
		return t.LogProb()
	}
	return math.Inf(-1)
}
