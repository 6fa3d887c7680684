package domain

import "fmt"

const (
	// InitState is the reserved name of the start state.
	// It owns transitions but never emissions.
	InitState = "init"

	// EndState is the reserved destination name of the terminal pseudo-state.
	// It is not a member of the indexed state array.
	EndState = "end"

	// Unassigned is the iterator value of a state that has no position yet.
	Unassigned = -1
)

// DuplicateEndPolicy decides what happens when a state declares more than
// one transition to EndState.
type DuplicateEndPolicy string

const (
	// DuplicateEndLastWins keeps the last declared end transition.
	DuplicateEndLastWins DuplicateEndPolicy = "last-wins"
	// DuplicateEndReject fails parsing with ErrDuplicateEnd.
	DuplicateEndReject DuplicateEndPolicy = "reject"
)

// ParseDuplicateEndPolicy maps a config string onto a policy.
// The empty string selects DuplicateEndLastWins.
func ParseDuplicateEndPolicy(s string) (DuplicateEndPolicy, error) {
	switch DuplicateEndPolicy(s) {
	case "", DuplicateEndLastWins:
		return DuplicateEndLastWins, nil
	case DuplicateEndReject:
		return DuplicateEndReject, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownPolicy, s)
	}
}
