package suggest

import "github.com/kihw/draftlens/internal/role"

// ReasonCategory is the dimension a Reason speaks to.
type ReasonCategory string

const (
	ReasonSynergy     ReasonCategory = "synergy"
	ReasonCounter     ReasonCategory = "counter"
	ReasonMeta        ReasonCategory = "meta"
	ReasonPerformance ReasonCategory = "performance"
	ReasonReliability ReasonCategory = "reliability"
	ReasonRisk        ReasonCategory = "risk"
)

// ReasonPolarity is whether a Reason argues for, against, or merely
// informs about a candidate.
type ReasonPolarity string

const (
	Positive ReasonPolarity = "positive"
	Negative ReasonPolarity = "negative"
	Info     ReasonPolarity = "info"
)

// Reason is a tagged variant over (category, polarity) plus a label
// and the numeric value that triggered it.
type Reason struct {
	Category ReasonCategory `json:"category"`
	Polarity ReasonPolarity `json:"polarity"`
	Label    string         `json:"label"`
	Value    float64        `json:"value"`
}

// ProReference is a surfaced pro-play sample backing a synergy or
// matchup claim.
type ProReference struct {
	Kind      string  `json:"kind"` // "synergy" or "matchup"
	ChampionA string  `json:"championA"`
	ChampionB string  `json:"championB"`
	Samples   int     `json:"samples"`
	Winrate   float64 `json:"winrate"`
}

// BanRecommendation is one dangerous opponent worth banning away from
// a candidate, emitted only at stage R3.
type BanRecommendation struct {
	OpponentRole     role.Role `json:"opponentRole"`
	OpponentChampion string    `json:"opponentChampion"`
	Games            int       `json:"games"`
	WinrateAgainst   float64   `json:"winrateAgainst"`
}

// Scores bundles every raw feature and the blended stage score for a
// Suggestion.
type Scores struct {
	Global      float64 `json:"global"`
	Synergy     float64 `json:"synergy"`
	Counter     float64 `json:"counter"`
	PickRate    float64 `json:"pickRate"`
	Flex        float64 `json:"flex"`
	Intrinsic   float64 `json:"intrinsic"`
	Reliability float64 `json:"reliability"`
	Exposure    float64 `json:"exposure"`
	Blind       float64 `json:"blind"`
	Deny        float64 `json:"deny"`
	Trend       float64 `json:"trend"`
}

// PairBoost is the best partner candidate found for a pair-weighted
// stage, and its contribution to Scores.Global.
type PairBoost struct {
	PartnerRole     role.Role `json:"partnerRole"`
	PartnerChampion string    `json:"partnerChampion"`
	Score           float64   `json:"score"`
}

// Suggestion is one ranked candidate pick.
type Suggestion struct {
	Role      role.Role `json:"role"`
	Champion  string    `json:"champion"`
	Scores    Scores    `json:"scores"`
	Reasons   []Reason  `json:"reasons"`

	TeamWinrateAfter  float64 `json:"teamWinrateAfter"`
	TeamWinrateDelta  float64 `json:"teamWinrateDelta"`
	TeamRatingDelta   float64 `json:"teamRatingDelta"`

	PairBoost          *PairBoost          `json:"pairBoost,omitempty"`
	ProReferences      []ProReference      `json:"proReferences,omitempty"`
	BanRecommendations []BanRecommendation `json:"banRecommendations,omitempty"`
}

// SynergyReference is one pro-play sample of a champion pair's
// observed co-occurrence, with example highlights.
type SynergyReference struct {
	ChampionA, ChampionB string
	RoleA, RoleB         role.Role
	Samples              int
	Winrate              float64
	Highlights           []string
}

// MatchupReference is one pro-play sample of a head-to-head matchup.
type MatchupReference struct {
	Role             role.Role
	Champion         string
	Opponent         string
	Samples          int
	Winrate          float64
	Highlights       []string
}

// ReferenceDataset is the richer synergy/matchup dataset view the
// ranker draws pro references from — distinct from the current
// dataset view the analyzeDraft oracle reads, and outside this
// module's core (its concrete backing is an opaque collaborator).
type ReferenceDataset interface {
	SynergyReferences() []SynergyReference
	MatchupReferences() []MatchupReference
}
