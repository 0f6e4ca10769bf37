package poisson

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbability(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, math.Exp(-1.5), Probability(0, 1.5), 1e-12)
	assert.InDelta(t, 1.5*1.5*math.Exp(-1.5)/2, Probability(2, 1.5), 1e-12)
	assert.Equal(t, 0.0, Probability(-1, 1.5))
	assert.Equal(t, 1.0, Probability(0, 0))
	assert.Equal(t, 0.0, Probability(3, -2))
}

func TestCompute_TypicalPair(t *testing.T) {
	t.Parallel()

	got := Compute(1.8, 1.1)

	require.Len(t, got.Top, TopScorelines)
	assert.Contains(t, []string{"1-1", "1-0"}, got.Top[0].Label)
	assert.Greater(t, got.BTTS, 45.0)
	assert.Less(t, got.BTTS, 57.0)
	assert.Less(t, got.Coverage(), 100.0)
	assert.Greater(t, got.Coverage(), 90.0)
	assert.InDelta(t, 100, got.Over25+got.Under25, 5)

	for i := 1; i < len(got.Top); i++ {
		assert.GreaterOrEqual(t, got.Top[i-1].Probability, got.Top[i].Probability)
	}
	for h := range got.Grid {
		for a := range got.Grid[h] {
			assert.GreaterOrEqual(t, got.Grid[h][a], 0.0)
		}
	}
}

func TestCompute_CoverageAcrossRange(t *testing.T) {
	t.Parallel()

	for _, lambda := range []float64{0.5, 1, 1.5, 2, 2.5, 3} {
		got := Compute(lambda, 3.5-lambda)
		assert.Less(t, got.Coverage(), 100.0, "lambda %v", lambda)
		assert.Greater(t, got.Coverage(), 90.0, "lambda %v", lambda)
	}
}

func TestCompute_TiesKeepEnumerationOrder(t *testing.T) {
	t.Parallel()

	got := Compute(1, 1)
	// P(1)=P(0) for λ=1, so 0-0, 0-1, 1-0 and 1-1 tie.
	labels := make([]string, 0, len(got.Top))
	for _, s := range got.Top {
		labels = append(labels, s.Label)
	}
	assert.Equal(t, []string{"0-0", "0-1", "1-0", "1-1", "0-2"}, labels)
}

func TestCompute_DegenerateLambda(t *testing.T) {
	t.Parallel()

	got := Compute(0, -1)
	assert.InDelta(t, 100, got.Draw, 1e-9)
	assert.Equal(t, "0-0", got.Top[0].Label)
	assert.Equal(t, 0.0, got.BTTS)
}
