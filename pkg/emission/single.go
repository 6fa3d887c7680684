package emission

import (
	"fmt"
	"math"
	"strings"
)

// Single emits one symbol of one track per position.
type Single struct {
	track    *Track
	logProbs []float64
}

// NewSingle builds a single-track emission from symbol probabilities.
// Symbols missing from probs get -Inf.
func NewSingle(track *Track, probs map[string]float64) (*Single, error) {
	logProbs := make([]float64, len(track.Alphabet))
	for i := range logProbs {
		logProbs[i] = math.Inf(-1)
	}
	for sym, p := range probs {
		i, ok := track.SymbolIndex(sym)
		if !ok {
			return nil, fmt.Errorf("%w: %q not in track %q", ErrUnknownSymbol, sym, track.Name)
		}
		lp, err := logProb(p)
		if err != nil {
			return nil, fmt.Errorf("symbol %q: %w", sym, err)
		}
		logProbs[i] = lp
	}
	return &Single{track: track, logProbs: logProbs}, nil
}

// TrackName returns the emitting track.
func (e *Single) TrackName() string { return e.track.Name }

// LogProb returns the log probability of emitting symbol, -Inf if unknown.
func (e *Single) LogProb(symbol string) float64 {
	i, ok := e.track.SymbolIndex(symbol)
	if !ok {
		return math.Inf(-1)
	}
	return e.logProbs[i]
}

// LogProbAt returns the log probability of the i-th alphabet symbol.
func (e *Single) LogProbAt(i int) float64 {
	if i < 0 || i >= len(e.logProbs) {
		return math.Inf(-1)
	}
	return e.logProbs[i]
}

// Summary lists the track and each symbol's probability.
func (e *Single) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "track: %s\n", e.track.Name)
	for i, sym := range e.track.Alphabet {
		fmt.Fprintf(&sb, "  %s %.4g\n", sym, math.Exp(e.logProbs[i]))
	}
	return sb.String()
}
