package domain_test

import (
	"math"
	"testing"

	"github.com/aretw0/ham/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinalize_TwoStateScenario(t *testing.T) {
	a := domain.NewState("A", "a")
	b := domain.NewState("B", "b")
	a.SetIterator(1)
	b.SetIterator(0)

	require.NoError(t, a.AddTransition(mustTransition(t, "B", 0.25)))
	require.NoError(t, a.AddTransition(mustTransition(t, "end", 0.75)))
	assert.Equal(t, math.Log(0.75), a.EndLogProb())

	idx := domain.Index{"A": a, "B": b, "init": domain.NewState("init", "start")}
	require.NoError(t, a.Finalize(idx, 3))

	dense := a.Transitions()
	require.Len(t, dense, 2)
	require.NotNil(t, dense[0])
	assert.Equal(t, "B", dense[0].To())
	assert.Equal(t, math.Log(0.25), dense[0].LogProb())
	assert.Nil(t, dense[1])

	assert.Equal(t, math.Log(0.25), a.LogProbTo(0))
	assert.True(t, math.IsInf(a.LogProbTo(1), -1))
	assert.True(t, math.IsInf(a.LogProbTo(7), -1))
	assert.True(t, a.Finalized())
}

func TestFinalize_SlotMatchesDestinationIterator(t *testing.T) {
	states := map[string]*domain.State{}
	names := []string{"S0", "S1", "S2", "S3"}
	for i, n := range names {
		states[n] = domain.NewState(n, n)
		states[n].SetIterator(i)
	}

	src := domain.NewState("src", "src")
	src.SetIterator(4)
	states["src"] = src
	probs := map[string]float64{"S3": 0.1, "S0": 0.2, "S2": 0.3}
	for _, n := range []string{"S3", "S0", "S2"} {
		require.NoError(t, src.AddTransition(mustTransition(t, n, probs[n])))
	}

	total := len(states) + 1
	require.NoError(t, src.Finalize(domain.Index(states), total))

	dense := src.Transitions()
	require.Len(t, dense, total-1)
	for n, p := range probs {
		k := states[n].Iterator()
		require.NotNil(t, dense[k], n)
		assert.Equal(t, n, dense[k].To())
		assert.Equal(t, math.Log(p), dense[k].LogProb())
	}
	assert.Nil(t, src.TransitionTo(states["S1"].Iterator()))
}

func TestFinalize_UndefinedDestination(t *testing.T) {
	c := domain.NewState("C", "c")
	c.SetIterator(0)
	require.NoError(t, c.AddTransition(mustTransition(t, "D", 1)))

	err := c.Finalize(domain.Index{"C": c}, 2)
	require.ErrorIs(t, err, domain.ErrUndefinedState)
	assert.Contains(t, err.Error(), `"D"`)

	assert.False(t, c.Finalized(), "a failed finalize must leave the state sparse")
	require.Len(t, c.Transitions(), 1)
	assert.Equal(t, "D", c.Transitions()[0].To())
}

func TestFinalize_FailureIsNotPartial(t *testing.T) {
	a := domain.NewState("A", "a")
	b := domain.NewState("B", "b")
	b.SetIterator(0)
	require.NoError(t, a.AddTransition(mustTransition(t, "B", 0.5)))
	require.NoError(t, a.AddTransition(mustTransition(t, "ghost", 0.5)))

	err := a.Finalize(domain.Index{"A": a, "B": b}, 3)
	require.ErrorIs(t, err, domain.ErrUndefinedState)
	assert.Nil(t, a.TransitionTo(0))
	assert.Len(t, a.Transitions(), 2)
}

func TestFinalize_IsOneShot(t *testing.T) {
	a := domain.NewState("A", "a")
	a.SetIterator(0)
	require.NoError(t, a.AddTransition(mustTransition(t, "A", 0.5)))

	idx := domain.Index{"A": a}
	require.NoError(t, a.Finalize(idx, 2))

	err := a.Finalize(idx, 2)
	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)
	assert.Equal(t, math.Log(0.5), a.LogProbTo(0))

	assert.ErrorIs(t, a.AddTransition(mustTransition(t, "A", 0.1)), domain.ErrAlreadyFinalized)
}

func TestFinalize_IteratorChecks(t *testing.T) {
	t.Run("unassigned", func(t *testing.T) {
		a := domain.NewState("A", "a")
		require.NoError(t, a.AddTransition(mustTransition(t, "init", 1)))
		err := a.Finalize(domain.Index{"init": domain.NewState("init", "")}, 2)
		assert.ErrorIs(t, err, domain.ErrIteratorUnassigned)
	})

	t.Run("out of range", func(t *testing.T) {
		a := domain.NewState("A", "a")
		b := domain.NewState("B", "b")
		b.SetIterator(5)
		require.NoError(t, a.AddTransition(mustTransition(t, "B", 1)))
		err := a.Finalize(domain.Index{"B": b}, 3)
		assert.ErrorIs(t, err, domain.ErrIteratorRange)
	})

	t.Run("empty topology", func(t *testing.T) {
		a := domain.NewState("A", "a")
		assert.ErrorIs(t, a.Finalize(domain.Index{}, 0), domain.ErrIteratorRange)
	})
}

func TestFinalize_NoTransitions(t *testing.T) {
	a := domain.NewState("A", "a")
	require.NoError(t, a.Finalize(domain.Index{}, 4))

	dense := a.Transitions()
	assert.Len(t, dense, 3)
	for _, tr := range dense {
		assert.Nil(t, tr)
	}
}

func TestIndex_NilEntryIsMissing(t *testing.T) {
	_, ok := domain.Index{"A": nil}.Lookup("A")
	assert.False(t, ok)
}
