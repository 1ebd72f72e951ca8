package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kihw/draftlens/internal/aggregate"
)

// TestCompileSynergiesNPMIBoundaryVanishes covers the case where a pair
// always appears together and never apart: pAB == pA == pB == 1, so the
// information-theoretic denominator -ln(pAB) vanishes and npmi must fall
// back to 0 rather than blow up toward 1.
func TestCompileSynergiesNPMIBoundaryVanishes(t *testing.T) {
	pairs := map[aggregate.PairKey]*aggregate.PairSynergyAccumulator{
		aggregate.NewPairKey("X", "Y"): {Games: 1, Wins: 1},
	}
	solo := map[string]*aggregate.SoloSynergyAccumulator{
		"X": {Games: 1, Wins: 1},
		"Y": {Games: 1, Wins: 1},
	}

	entries := compileSynergies(solo, pairs, 1, DefaultPriors())

	assert.Len(t, entries, 1)
	assert.InDelta(t, 0, entries[0].NPMI, 1e-9)
}

func TestCompileSynergiesNPMIInRangeWhenPairIsRarerThanMarginals(t *testing.T) {
	pairs := map[aggregate.PairKey]*aggregate.PairSynergyAccumulator{
		aggregate.NewPairKey("A", "B"): {Games: 5, Wins: 3},
	}
	solo := map[string]*aggregate.SoloSynergyAccumulator{
		"A": {Games: 50, Wins: 25},
		"B": {Games: 50, Wins: 25},
	}

	entries := compileSynergies(solo, pairs, 100, DefaultPriors())

	assert.Len(t, entries, 1)
	assert.False(t, entries[0].NPMI != entries[0].NPMI, "npmi must be a real number, not NaN")
	assert.GreaterOrEqual(t, entries[0].NPMI, -1.0)
	assert.LessOrEqual(t, entries[0].NPMI, 1.0)
}

func TestCompileSynergiesMissingSoloFallsBackToZeroMarginal(t *testing.T) {
	pairs := map[aggregate.PairKey]*aggregate.PairSynergyAccumulator{
		aggregate.NewPairKey("A", "B"): {Games: 1, Wins: 1},
	}
	// No solo accumulators at all: soloMarginal/soloWinrate both hit
	// their nil-pointer fallbacks.
	entries := compileSynergies(nil, pairs, 10, DefaultPriors())

	assert.Len(t, entries, 1)
	assert.Equal(t, "A", entries[0].ChampionA)
	assert.Equal(t, "B", entries[0].ChampionB)
}

func TestCompileCountersBasicWinrateShrinkage(t *testing.T) {
	accs := map[aggregate.CounterKey]*aggregate.CounterAccumulator{
		{Role: 0, Champion: "A", Opponent: "B"}: {Games: 10, Wins: 7, LaneSum: 5, LaneCount: 10, KPSum: 3, KPCount: 10},
	}
	dist := roleDistributions{}

	entries := compileCounters(accs, dist, DefaultPriors())

	assert.Len(t, entries, 1)
	assert.Equal(t, 10, entries[0].Samples)
	assert.Equal(t, 7, entries[0].Wins)
	// A 70% observed winrate over 10 games shrinks toward the 0.5 prior.
	assert.Greater(t, entries[0].Winrate, 0.5)
	assert.Less(t, entries[0].Winrate, 0.7)
}
