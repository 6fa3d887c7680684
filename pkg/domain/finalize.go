package domain

import "fmt"

// StateIndex resolves state names to registered states during finalization.
// It is only read, never mutated.
type StateIndex interface {
	Lookup(name string) (*State, bool)
}

// Index is a plain name -> state StateIndex.
type Index map[string]*State

// Lookup implements StateIndex.
func (idx Index) Lookup(name string) (*State, bool) {
	st, ok := idx[name]
	return st, ok && st != nil
}

// Finalize rewrites the sparse, name-addressed transitions into a dense slice
// of total-1 slots (the init state has no column), where slot k holds the
// transition to the state whose iterator is k.
//
// Every destination must resolve through index and carry an assigned
// iterator. Resolution completes before anything is mutated, so on error the
// state stays sparse. Finalize is one-shot: a second call returns
// ErrAlreadyFinalized.
func (s *State) Finalize(index StateIndex, total int) error {
	if s.finalized {
		return fmt.Errorf("%w: %s", ErrAlreadyFinalized, s.Name)
	}
	if total < 1 {
		return fmt.Errorf("%w: total state count %d", ErrIteratorRange, total)
	}

	dense := make([]*Transition, total-1)
	for _, t := range s.sparse {
		dest, ok := index.Lookup(t.To())
		if !ok {
			return fmt.Errorf("%w: %q (from %q)", ErrUndefinedState, t.To(), s.Name)
		}
		k := dest.Iterator()
		if k == Unassigned {
			return fmt.Errorf("%w: %q (from %q)", ErrIteratorUnassigned, t.To(), s.Name)
		}
		if k < 0 || k >= len(dense) {
			return fmt.Errorf("%w: %q has iterator %d, row has %d slots", ErrIteratorRange, t.To(), k, len(dense))
		}
		dense[k] = t
	}

	s.dense = dense
	s.sparse = nil
	s.finalized = true
	return nil
}
