package validator_test

import (
	"testing"

	"github.com/aretw0/ham/internal/testutils"
	"github.com/aretw0/ham/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTopology_Clean(t *testing.T) {
	topo := testutils.LoadTopology(t, `
tracks:
  bits: ["0", "1"]
states:
  - {name: init, label: s, transitions: {A: 1}}
  - name: A
    label: a
    transitions: {A: 0.5, end: 0.5}
    emissions: {track: bits, probs: {"0": 0.25, "1": 0.75}}
    pair_emissions: {tracks: [bits, bits], probs: {"0": {"0": 0.5}, "1": {"1": 0.5}}}
`)
	assert.NoError(t, validator.ValidateTopology(topo))
	assert.Empty(t, validator.Inspect(topo))
}

func TestInspect_FindsEveryKind(t *testing.T) {
	topo := testutils.LoadTopology(t, `
tracks:
  bits: ["0", "1"]
states:
  - {name: init, label: s, transitions: {A: 1, B: 0}}
  - {name: A, label: a, transitions: {A: 0.9, end: 0.1}, emissions: {track: bits, probs: {"0": 0.5}}}
  - {name: B, label: b, transitions: {C: 1}}
  - {name: C, label: c, transitions: {B: 0.5}}
`)
	issues := validator.Inspect(topo)

	assert.Equal(t, []validator.Issue{
		{State: "A", Kind: validator.KindEmissionMass, Detail: `emissions on "bits" sum to 0.5`},
		{State: "B", Kind: validator.KindUnreachable, Detail: "no path from init"},
		{State: "B", Kind: validator.KindCannotEnd, Detail: "no path to end"},
		{State: "C", Kind: validator.KindUnreachable, Detail: "no path from init"},
		{State: "C", Kind: validator.KindCannotEnd, Detail: "no path to end"},
		{State: "C", Kind: validator.KindTransitionMass, Detail: "transitions sum to 0.5"},
	}, issues)

	err := validator.ValidateTopology(topo)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "found 6 issues:\n- A: emissions")
}

func TestInspect_NoEndAnywhereIsNotFlaggedPerState(t *testing.T) {
	topo := testutils.LoadTopology(t, `{states: [{name: init, label: s, transitions: {A: 1}}, {name: A, label: a, transitions: {A: 1}}]}`)
	assert.Empty(t, validator.Inspect(topo))
}
