package mathkernel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		name            string
		x, lo, hi, want float64
	}{
		{"within range", 0.5, 0, 1, 0.5},
		{"below lo", -1, 0, 1, 0},
		{"above hi", 2, 0, 1, 1},
		{"at boundary", 1, 0, 1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Clamp(tc.x, tc.lo, tc.hi))
		})
	}
}

func TestSafeDivide(t *testing.T) {
	assert.Equal(t, 2.0, SafeDivide(4, 2, -1))
	assert.Equal(t, -1.0, SafeDivide(4, 0, -1), "zero denominator falls back")
	assert.Equal(t, -1.0, SafeDivide(4, math.NaN(), -1), "NaN denominator falls back")
	assert.Equal(t, -1.0, SafeDivide(4, math.Inf(1), -1), "infinite denominator falls back")
}

func TestWilsonHalfWidthDegenerateZeroGames(t *testing.T) {
	assert.Equal(t, 0.08, WilsonHalfWidth(0, 0, 1.64))
}

func TestWilsonHalfWidthClampedToUnitRange(t *testing.T) {
	for _, games := range []float64{1, 10, 1000, 1_000_000} {
		hw := WilsonHalfWidth(games/2, games, 1.64)
		assert.GreaterOrEqual(t, hw, 0.0)
		assert.LessOrEqual(t, hw, 0.5)
	}
}

func TestWilsonHalfWidthShrinksWithMoreGames(t *testing.T) {
	small := WilsonHalfWidth(5, 10, 1.64)
	large := WilsonHalfWidth(500, 1000, 1.64)
	assert.Greater(t, small, large, "the same winrate backed by fewer games must carry a wider interval")
}

func TestReliabilityWeightApproachesOneWithHugeSampleSize(t *testing.T) {
	w := ReliabilityWeight(500_000, 1_000_000, 1.64)
	assert.Greater(t, w, 0.99)
}

func TestReliabilityWeightLowWithNoGames(t *testing.T) {
	w := ReliabilityWeight(0, 0, 1.64)
	assert.Less(t, w, 0.2)
}

func TestReliabilityWeightMonotonicInGames(t *testing.T) {
	w10 := ReliabilityWeight(5, 10, 1.64)
	w100 := ReliabilityWeight(50, 100, 1.64)
	w1000 := ReliabilityWeight(500, 1000, 1.64)
	assert.Less(t, w10, w100)
	assert.Less(t, w100, w1000)
}

func TestJeffreysMean(t *testing.T) {
	assert.Equal(t, 0.5, JeffreysMean(0, 0))
	assert.InDelta(t, 0.5, JeffreysMean(5, 10), 1e-9)
}

func TestWeightedMeanVarianceFloorsVariance(t *testing.T) {
	mean, variance := WeightedMeanVariance([]float64{3, 3, 3}, []float64{1, 1, 1})
	assert.Equal(t, 3.0, mean)
	assert.Equal(t, 1e-6, variance, "a zero-spread population still floors variance so z-scores stay finite")
}

func TestWeightedMeanVarianceMismatchedLengths(t *testing.T) {
	mean, variance := WeightedMeanVariance([]float64{1, 2}, []float64{1})
	assert.Equal(t, 0.0, mean)
	assert.Equal(t, 1e-6, variance)
}

func TestMomentsFromSumsZeroCount(t *testing.T) {
	mean, std := MomentsFromSums(0, 0, 0)
	assert.Equal(t, 0.0, mean)
	assert.Equal(t, math.Sqrt(1e-6), std)
}
