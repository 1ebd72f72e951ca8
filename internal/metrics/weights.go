// Package metrics implements the C4 metric compiler: it turns the
// Aggregator's accumulators into z-scored, shrunk, and cross-indexed
// metrics — the per-(champion,role) snapshot, the global counter and
// synergy tables, and the flex scores — everything the artifact
// freezes.
package metrics

// Priors holds the Beta-Binomial/continuous shrinkage strengths. Zero
// value is invalid; use DefaultPriors.
type Priors struct {
	WinrateN0   float64 `json:"n0"`
	ContinuousN0 float64 `json:"continuousN0"`
}

// DefaultPriors returns the default shrinkage strengths.
func DefaultPriors() Priors {
	return Priors{WinrateN0: 12, ContinuousN0: 20}
}

// IntrinsicWeights weights the five intrinsic pillars.
type IntrinsicWeights struct {
	A, B, C, D, E float64
}

// BlindWeights weights the blind-pick composite's four terms (w4, the
// flex term, is folded in post-hoc once flex scores exist).
type BlindWeights struct {
	W1, W2, W3, W4 float64
}

// FlexWeights weights the flex-propensity composite.
type FlexWeights struct {
	U1, U2, U3 float64
}

// ReliabilityWeights holds the reliability weights v1..v3. They are
// frozen into the artifact with the other weights; no code in this
// module reads them.
type ReliabilityWeights struct {
	V1, V2, V3 float64
}

// StateWeights weights the per-pick draft-evaluator total (k1..k7).
type StateWeights struct {
	K1, K2, K3, K4, K5, K6, K7 float64
}

// Weights bundles every pillar's weighting, frozen into the artifact
// alongside Priors so a consumer can reproduce every composite from
// raw snapshot fields.
type Weights struct {
	Intrinsic   IntrinsicWeights   `json:"intrinsic"`
	Blind       BlindWeights       `json:"blind"`
	Flex        FlexWeights        `json:"flex"`
	Reliability ReliabilityWeights `json:"reliability"`
	State       StateWeights       `json:"state"`
}

// DefaultWeights returns the default weight set.
func DefaultWeights() Weights {
	return Weights{
		Intrinsic:   IntrinsicWeights{A: 1, B: .8, C: .7, D: .6, E: .7},
		Blind:       BlindWeights{W1: .9, W2: .6, W3: .5, W4: .5},
		Flex:        FlexWeights{U1: .7, U2: .6, U3: .4},
		Reliability: ReliabilityWeights{V1: .6, V2: .3, V3: .3},
		State:       StateWeights{K1: .8, K2: .7, K3: .6, K4: .6, K5: .5, K6: .4, K7: .5},
	}
}
