package emission_test

import (
	"math"
	"testing"

	"github.com/aretw0/ham/pkg/domain"
	"github.com/aretw0/ham/pkg/emission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var (
	_ domain.SingleEmission = (*emission.Single)(nil)
	_ domain.PairEmission   = (*emission.Pair)(nil)
)

func mustNode(t *testing.T, src string) *yaml.Node {
	t.Helper()
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))
	require.Equal(t, yaml.DocumentNode, doc.Kind)
	return doc.Content[0]
}

func nukes(t *testing.T) emission.Tracks {
	t.Helper()
	tracks, err := emission.ParseTracks(mustNode(t, `
nukes: [A, C, G, T]
bits: ["0", "1"]
`))
	require.NoError(t, err)
	return tracks
}

func TestParseTracks(t *testing.T) {
	tracks := nukes(t)
	assert.Equal(t, []string{"nukes", "bits"}, tracks.Names())

	tr, ok := tracks.Lookup("nukes")
	require.True(t, ok)
	i, ok := tr.SymbolIndex("G")
	assert.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = tracks.Lookup("missing")
	assert.False(t, ok)
}

func TestParseTracks_Errors(t *testing.T) {
	tests := map[string]string{
		"not a mapping":    `[A, C]`,
		"duplicate symbol": `nukes: [A, A]`,
		"empty alphabet":   `nukes: []`,
		"duplicate track":  "nukes: [A]\nnukes: [C]",
		"scalar alphabet":  `nukes: ACGT`,
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := emission.ParseTracks(mustNode(t, src))
			assert.Error(t, err)
		})
	}
}

func TestParseSingle(t *testing.T) {
	e, err := emission.ParseSingle(mustNode(t, `
track: nukes
probs: {A: 0.5, C: 0.25, G: 0.25}
`), nukes(t))
	require.NoError(t, err)

	assert.Equal(t, "nukes", e.TrackName())
	assert.Equal(t, math.Log(0.5), e.LogProb("A"))
	assert.Equal(t, math.Log(0.25), e.LogProbAt(1))
	assert.True(t, math.IsInf(e.LogProb("T"), -1), "unset symbol")
	assert.True(t, math.IsInf(e.LogProb("N"), -1), "foreign symbol")
	assert.True(t, math.IsInf(e.LogProbAt(9), -1))
	assert.Contains(t, e.Summary(), "track: nukes\n  A 0.5\n")
}

func TestParseSingle_IntegerProbability(t *testing.T) {
	e, err := emission.ParseSingle(mustNode(t, `{track: bits, probs: {"1": 1, "0": 0}}`), nukes(t))
	require.NoError(t, err)
	assert.Equal(t, 0.0, e.LogProb("1"))
	assert.True(t, math.IsInf(e.LogProb("0"), -1))
}

func TestParseSingle_NumericSymbols(t *testing.T) {
	tracks, err := emission.ParseTracks(mustNode(t, `bits: [0, 1]`))
	require.NoError(t, err)

	e, err := emission.ParseSingle(mustNode(t, `{track: bits, probs: {0: .5, 1: "0.5"}}`), tracks)
	require.NoError(t, err)
	assert.Equal(t, math.Log(0.5), e.LogProb("0"))
	assert.Equal(t, math.Log(0.5), e.LogProb("1"))
}

func TestParseSingle_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		is   error
	}{
		{"unknown track", `{track: aminos, probs: {A: 1}}`, emission.ErrUnknownTrack},
		{"unknown symbol", `{track: nukes, probs: {N: 1}}`, emission.ErrUnknownSymbol},
		{"out of range", `{track: nukes, probs: {A: 2}}`, nil},
		{"unused key", `{track: nukes, prob: {A: 1}}`, nil},
		{"missing track", `{probs: {A: 1}}`, nil},
		{"not a number", `{track: nukes, probs: {A: lots}}`, nil},
		{"duplicate symbol", `{track: nukes, probs: {A: 0.5, A: 0.5}}`, nil},
		{"not a mapping", `[track, nukes]`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := emission.ParseSingle(mustNode(t, tt.src), nukes(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), emission.ModeSingle)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestParsePair(t *testing.T) {
	e, err := emission.ParsePair(mustNode(t, `
tracks: [nukes, bits]
probs:
  A: {"0": 0.4, "1": 0.1}
  T: {"1": 0.5}
`), nukes(t))
	require.NoError(t, err)

	assert.Equal(t, [2]string{"nukes", "bits"}, e.TrackNames())
	assert.Equal(t, math.Log(0.4), e.LogProb("A", "0"))
	assert.Equal(t, math.Log(0.5), e.LogProb("T", "1"))
	assert.True(t, math.IsInf(e.LogProb("C", "0"), -1))
	assert.True(t, math.IsInf(e.LogProb("A", "2"), -1))
	assert.True(t, math.IsInf(e.LogProb("N", "0"), -1))
	assert.Contains(t, e.Summary(), "tracks: nukes, bits")
}

func TestParsePair_NumericSymbols(t *testing.T) {
	tracks, err := emission.ParseTracks(mustNode(t, `bits: [0, 1]`))
	require.NoError(t, err)

	e, err := emission.ParsePair(mustNode(t, `
tracks: [bits, bits]
probs:
  0: {0: 0.5, 1: 0.25}
  1: {1: 0.25}
`), tracks)
	require.NoError(t, err)
	assert.Equal(t, math.Log(0.5), e.LogProb("0", "0"))
	assert.Equal(t, math.Log(0.25), e.LogProb("1", "1"))
	assert.True(t, math.IsInf(e.LogProb("1", "0"), -1))
}

func TestParsePair_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		is   error
	}{
		{"one track", `{tracks: [nukes], probs: {}}`, nil},
		{"unknown track", `{tracks: [nukes, aminos], probs: {}}`, emission.ErrUnknownTrack},
		{"unknown first symbol", `{tracks: [nukes, nukes], probs: {N: {A: 1}}}`, emission.ErrUnknownSymbol},
		{"unknown second symbol", `{tracks: [nukes, nukes], probs: {A: {N: 1}}}`, emission.ErrUnknownSymbol},
		{"negative", `{tracks: [nukes, nukes], probs: {A: {A: -1}}}`, nil},
		{"tracks not a list", `{tracks: nukes, probs: {}}`, nil},
		{"row not a mapping", `{tracks: [nukes, nukes], probs: {A: 1}}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := emission.ParsePair(mustNode(t, tt.src), nukes(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), emission.ModePair)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}
