package emission

import (
	"fmt"
	"math"
	"strings"
)

// Pair emits one symbol from each of two tracks per position.
type Pair struct {
	tracks   [2]*Track
	logProbs [][]float64
}

// NewPair builds a two-track emission from nested probabilities
// probs[a][b]. Missing pairs get -Inf.
func NewPair(first, second *Track, probs map[string]map[string]float64) (*Pair, error) {
	logProbs := make([][]float64, len(first.Alphabet))
	for i := range logProbs {
		row := make([]float64, len(second.Alphabet))
		for j := range row {
			row[j] = math.Inf(-1)
		}
		logProbs[i] = row
	}

	for a, row := range probs {
		i, ok := first.SymbolIndex(a)
		if !ok {
			return nil, fmt.Errorf("%w: %q not in track %q", ErrUnknownSymbol, a, first.Name)
		}
		for b, p := range row {
			j, ok := second.SymbolIndex(b)
			if !ok {
				return nil, fmt.Errorf("%w: %q not in track %q", ErrUnknownSymbol, b, second.Name)
			}
			lp, err := logProb(p)
			if err != nil {
				return nil, fmt.Errorf("symbols %q,%q: %w", a, b, err)
			}
			logProbs[i][j] = lp
		}
	}
	return &Pair{tracks: [2]*Track{first, second}, logProbs: logProbs}, nil
}

// TrackNames returns the two emitting tracks.
func (e *Pair) TrackNames() [2]string {
	return [2]string{e.tracks[0].Name, e.tracks[1].Name}
}

// LogProb returns the log probability of emitting (a, b), -Inf if unknown.
func (e *Pair) LogProb(a, b string) float64 {
	i, ok := e.tracks[0].SymbolIndex(a)
	if !ok {
		return math.Inf(-1)
	}
	j, ok := e.tracks[1].SymbolIndex(b)
	if !ok {
		return math.Inf(-1)
	}
	return e.logProbs[i][j]
}

// Summary lists the tracks and the probability table.
func (e *Pair) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "tracks: %s, %s\n", e.tracks[0].Name, e.tracks[1].Name)
	sb.WriteString(" ")
	for _, b := range e.tracks[1].Alphabet {
		fmt.Fprintf(&sb, " %8s", b)
	}
	sb.WriteString("\n")
	for i, a := range e.tracks[0].Alphabet {
		sb.WriteString(a)
		for j := range e.tracks[1].Alphabet {
			fmt.Fprintf(&sb, " %8.4g", math.Exp(e.logProbs[i][j]))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
