package topology

import (
	"errors"

	"github.com/aretw0/ham/pkg/domain"
	"github.com/aretw0/ham/pkg/emission"
)

// ErrDuplicateState is returned when two state blocks share a name.
var ErrDuplicateState = errors.New("duplicate state name")

// ErrMissingInit is returned when no state is named "init".
var ErrMissingInit = errors.New("topology has no init state")

// ErrNoStates is returned for a document without a states list.
var ErrNoStates = errors.New("topology has no states")

// Topology owns every state of a model. States live in an arena addressed by
// stable integer handles; name lookups go through the handle map, so no
// state pointer is cached across the finalization pass.
type Topology struct {
	name   string
	tracks emission.Tracks

	arena   []*domain.State // declaration order
	handles map[string]int  // name -> arena handle
	dense   []int           // iterator -> arena handle, init excluded
}

// Lookup implements domain.StateIndex.
func (t *Topology) Lookup(name string) (*domain.State, bool) {
	h, ok := t.handles[name]
	if !ok {
		return nil, false
	}
	return t.arena[h], true
}

// Name returns the topology name from the document.
func (t *Topology) Name() string { return t.name }

// Tracks returns the shared emission tracks.
func (t *Topology) Tracks() emission.Tracks { return t.tracks }

// Len returns the total number of states, init included.
func (t *Topology) Len() int { return len(t.arena) }

// Init returns the start state.
func (t *Topology) Init() *domain.State {
	st, _ := t.Lookup(domain.InitState)
	return st
}

// State returns the state whose iterator is k, or nil.
func (t *Topology) State(k int) *domain.State {
	if k < 0 || k >= len(t.dense) {
		return nil
	}
	return t.arena[t.dense[k]]
}

// States returns the non-init states in iterator order.
func (t *Topology) States() []*domain.State {
	out := make([]*domain.State, len(t.dense))
	for k, h := range t.dense {
		out[k] = t.arena[h]
	}
	return out
}

// All returns every state in declaration order, init included.
func (t *Topology) All() []*domain.State {
	return append([]*domain.State(nil), t.arena...)
}
