package suggest

// Stage identifies the specific pick/ban slot driving weight
// selection, per the competitive draft sequence.
type Stage string

const (
	StageDefault Stage = "default"
	StageB1      Stage = "B1"
	StageB2B3    Stage = "B2B3"
	StageB4B5    Stage = "B4B5"
	StageR1R2    Stage = "R1R2"
	StageR3      Stage = "R3"
	StageR4      Stage = "R4"
	StageR5      Stage = "R5"
)

// PairWeights weights the five features a pair-boost score combines:
// summed pick-rate z, synergy, summed flex, summed intrinsic, and
// summed counter.
type PairWeights struct {
	PickRateSum  float64
	Synergy      float64
	FlexSum      float64
	IntrinsicSum float64
	CounterSum   float64
}

// StageWeights is the linear combination a stage applies to a
// candidate's features. Universal, when non-zero, adds a single
// (synergyAvg - exposure) term on top of the usual synergy/exposure
// terms (R4 only).
type StageWeights struct {
	Synergy     float64
	Counter     float64
	Flex        float64
	PickRate    float64
	Intrinsic   float64
	Reliability float64
	Exposure    float64
	Blind       float64
	Deny        float64
	Universal   float64
	Pair        *PairWeights
	BanRecommendations bool
}

// stageWeightTable holds the per-stage default weighting: later draft
// stages lean harder on synergy/counter as more of the enemy comp is
// visible, while the blind first pick leans on raw pick rate, flex,
// and intrinsic strength instead.
var stageWeightTable = map[Stage]StageWeights{
	StageDefault: {Synergy: .35, Counter: .3, Flex: .1, PickRate: .1, Intrinsic: .05, Reliability: .05, Exposure: -.05},
	StageB1:      {PickRate: .5, Blind: .2, Flex: .15, Intrinsic: .1, Reliability: .03, Exposure: -.02, Deny: .02},
	StageB2B3:    {Synergy: .35, Counter: .25, Flex: .1, PickRate: .03, Intrinsic: .02, Exposure: -.05, Pair: &PairWeights{Synergy: .25}},
	StageB4B5:    {Synergy: .45, Counter: .35, Flex: .1, PickRate: .05, Reliability: .05, Exposure: -.05},
	StageR1R2:    {PickRate: .05, Flex: .05, Synergy: .1, Exposure: -.05, Pair: &PairWeights{PickRateSum: .35, Synergy: .3, FlexSum: .1, IntrinsicSum: .1, CounterSum: .15}},
	StageR3:      {Counter: .45, Synergy: .25, Flex: .1, PickRate: .1, Intrinsic: .05, Reliability: .05, Exposure: -.05, BanRecommendations: true},
	StageR4:      {Universal: .4, Synergy: .3, Counter: .15, PickRate: .1, Flex: .05, Exposure: -.05},
	StageR5:      {Counter: .55, Synergy: .2, Reliability: .1, Flex: .1, PickRate: .05, Exposure: -.05},
}

// WeightsFor returns the configured weights for stage, or the default
// stage's weights if stage is unrecognised.
func WeightsFor(stage Stage) StageWeights {
	if w, ok := stageWeightTable[stage]; ok {
		return w
	}
	return stageWeightTable[StageDefault]
}
