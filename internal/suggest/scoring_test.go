package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kihw/draftlens/internal/role"
)

// TestApplyStageScoringStageWeightsChangeAcrossStages covers the R3/R5
// stage-weight table: the same candidate (counterAverage=1, everything
// else zero) must score exactly that stage's Counter weight, since every
// other term is zero.
func TestApplyStageScoringStageWeightsChangeAcrossStages(t *testing.T) {
	newCandidate := func() *candidate {
		return &candidate{sugg: Suggestion{Role: role.Mid, Champion: "A"}, counterAverage: 1}
	}

	r3 := []*candidate{newCandidate()}
	applyStageScoring(r3, WeightsFor(StageR3))
	assert.InDelta(t, 0.45, r3[0].sugg.Scores.Global, 1e-9)

	r5 := []*candidate{newCandidate()}
	applyStageScoring(r5, WeightsFor(StageR5))
	assert.InDelta(t, 0.55, r5[0].sugg.Scores.Global, 1e-9)
}

// TestApplyStageScoringMonotonicInIntrinsic covers candidate-score
// monotonicity: holding every other feature fixed, a larger intrinsic
// value must strictly increase the stage score by the weighted delta.
func TestApplyStageScoringMonotonicInIntrinsic(t *testing.T) {
	weak := &candidate{sugg: Suggestion{Role: role.Top, Champion: "A"}, intrinsic: 0.2, synergyAverage: 0.1}
	strong := &candidate{sugg: Suggestion{Role: role.Top, Champion: "B"}, intrinsic: 0.8, synergyAverage: 0.1}

	cands := []*candidate{weak, strong}
	weights := WeightsFor(StageDefault)
	applyStageScoring(cands, weights)

	assert.Greater(t, strong.sugg.Scores.Global, weak.sugg.Scores.Global)
	assert.InDelta(t, weights.Intrinsic*(0.8-0.2), strong.sugg.Scores.Global-weak.sugg.Scores.Global, 1e-9)
}

// TestApplyStageScoringR4AddsUniversalTerm covers the R4-only Universal
// term, which layers (synergyAverage - exposure) on top of the usual
// weighted sum rather than replacing it.
func TestApplyStageScoringR4AddsUniversalTerm(t *testing.T) {
	c := &candidate{sugg: Suggestion{Role: role.Jungle, Champion: "A"}, synergyAverage: 0.5, exposure: 0.2}
	cands := []*candidate{c}
	weights := WeightsFor(StageR4)
	applyStageScoring(cands, weights)

	want := weights.Synergy*0.5 + weights.Exposure*0.2 + weights.Universal*(0.5-0.2)
	assert.InDelta(t, want, c.sugg.Scores.Global, 1e-9)
}
