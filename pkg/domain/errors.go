package domain

import "errors"

// ErrUnknownState is returned at parse time when a transition targets a name
// that is neither "end" nor a declared state.
var ErrUnknownState = errors.New("transition to unknown state")

// ErrUndefinedState is returned at finalize time when a transition targets a
// name that has no registered state.
var ErrUndefinedState = errors.New("state was declared but not defined in the model")

// ErrAlreadyFinalized is returned when Finalize is called on a dense state.
var ErrAlreadyFinalized = errors.New("state transitions already finalized")

// ErrIteratorUnassigned is returned when a transition target has no iterator.
var ErrIteratorUnassigned = errors.New("state iterator not assigned")

// ErrIteratorRange is returned when an iterator does not fit the dense row.
var ErrIteratorRange = errors.New("state iterator out of range")

// ErrProbabilityRange is returned for probabilities outside [0, 1].
var ErrProbabilityRange = errors.New("probability must be within [0, 1]")

// ErrDuplicateEnd is returned under DuplicateEndReject when "end" is declared twice.
var ErrDuplicateEnd = errors.New("duplicate end transition")

// ErrDuplicateTransition is returned when a destination appears twice in one state.
var ErrDuplicateTransition = errors.New("duplicate transition")

// ErrUnknownPolicy is returned for an unrecognized duplicate-end policy name.
var ErrUnknownPolicy = errors.New("unknown duplicate end policy")

// ErrInitEmission is returned when an emission model is attached to the init state.
var ErrInitEmission = errors.New("init state cannot have emissions")
