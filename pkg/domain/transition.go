package domain

import (
	"fmt"
	"math"
)

// Transition is an immutable edge from a state to the named destination.
type Transition struct {
	to      string
	logProb float64
}

// NewTransition builds a transition to the named state with probability prob.
// A zero probability is stored as -Inf so it never turns into NaN downstream.
func NewTransition(to string, prob float64) (*Transition, error) {
	if math.IsNaN(prob) || prob < 0 || prob > 1 {
		return nil, fmt.Errorf("%w: %s -> %v", ErrProbabilityRange, to, prob)
	}
	logProb := math.Inf(-1)
	if prob > 0 {
		logProb = math.Log(prob)
	}
	return &Transition{to: to, logProb: logProb}, nil
}

// To returns the destination state name.
func (t *Transition) To() string { return t.to }

// LogProb returns the natural log of the transition probability.
func (t *Transition) LogProb() float64 { return t.logProb }

// Prob returns the transition probability.
func (t *Transition) Prob() float64 { return math.Exp(t.logProb) }

// IsEnd reports whether the transition leads to the end pseudo-state.
func (t *Transition) IsEnd() bool { return t.to == EndState }

func (t *Transition) String() string {
	return fmt.Sprintf("%s %.6g (log %.6g)", t.to, t.Prob(), t.logProb)
}
