package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kihw/draftlens/internal/artifact"
	"github.com/kihw/draftlens/internal/index"
	"github.com/kihw/draftlens/internal/mathkernel"
	"github.com/kihw/draftlens/internal/metrics"
	"github.com/kihw/draftlens/internal/role"
)

func emptyTestIndex() *index.Index {
	return index.Build(&artifact.PrecomputedDraftMetrics{
		RoleWinrate:        map[string]float64{},
		RoleGames:          map[string]int{},
		CounterRoleWeights: artifact.DefaultRoleWeightMatrix(),
		SynergyRoleWeights: artifact.DefaultRoleWeightMatrix(),
	})
}

// TestEvaluateCandidateUsesWilsonReliabilityWeight covers the
// reliability wiring: a candidate's reliability feature must come from
// the Wilson-half-width-derived weight over its own wins/games, not
// straight from the snapshot's RelN field.
func TestEvaluateCandidateUsesWilsonReliabilityWeight(t *testing.T) {
	idx := emptyTestIndex()

	m := &metrics.ChampionRoleMetrics{ChampionKey: "Ahri", Role: role.Mid, Games: 100, Wins: 55}
	pop := rolePickPopulation{role.Mid: distStat{mean: 50, std: 10}}

	c := evaluateCandidate(idx, pop, role.Mid, "Ahri", m, nil, nil)

	want := mathkernel.ReliabilityWeight(55, 100, wilsonZ)
	assert.InDelta(t, want, c.reliability, 1e-12)
	assert.InDelta(t, want, c.sugg.Scores.Reliability, 1e-12)
}

// TestEvaluateCandidateReliabilityGrowsWithSampleSize covers candidate
// monotonicity in the reliability feature: a snapshot backed by more
// games at the same winrate must never score a lower reliability.
func TestEvaluateCandidateReliabilityGrowsWithSampleSize(t *testing.T) {
	idx := emptyTestIndex()
	pop := rolePickPopulation{role.Mid: distStat{mean: 50, std: 10}}

	small := evaluateCandidate(idx, pop, role.Mid, "Ahri", &metrics.ChampionRoleMetrics{Games: 10, Wins: 6}, nil, nil)
	large := evaluateCandidate(idx, pop, role.Mid, "Ahri", &metrics.ChampionRoleMetrics{Games: 1000, Wins: 600}, nil, nil)

	assert.Greater(t, large.reliability, small.reliability)
}
