package domain_test

import (
	"math"
	"testing"

	"github.com/aretw0/ham/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransition_LogProbability(t *testing.T) {
	tests := []struct {
		name string
		prob float64
	}{
		{"quarter", 0.25},
		{"certain", 1},
		{"tiny", 1e-300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := domain.NewTransition("B", tt.prob)
			require.NoError(t, err)
			assert.Equal(t, "B", tr.To())
			assert.Equal(t, math.Log(tt.prob), tr.LogProb())
			assert.False(t, tr.IsEnd())
		})
	}
}

func TestNewTransition_ZeroIsNegativeInfinity(t *testing.T) {
	tr, err := domain.NewTransition("B", 0)
	require.NoError(t, err)

	assert.True(t, math.IsInf(tr.LogProb(), -1))
	assert.False(t, math.IsNaN(tr.LogProb()))
	assert.Equal(t, 0.0, tr.Prob())
}

func TestNewTransition_OutOfRange(t *testing.T) {
	for _, p := range []float64{-0.1, 1.0001, math.NaN(), math.Inf(1)} {
		_, err := domain.NewTransition("B", p)
		assert.ErrorIs(t, err, domain.ErrProbabilityRange, "p=%v", p)
	}
}

func TestTransition_End(t *testing.T) {
	tr, err := domain.NewTransition(domain.EndState, 0.75)
	require.NoError(t, err)

	assert.True(t, tr.IsEnd())
	assert.InDelta(t, 0.75, tr.Prob(), 1e-12)
	assert.Contains(t, tr.String(), "end 0.75")
}
