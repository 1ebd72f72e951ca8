package metrics

import "github.com/kihw/draftlens/internal/role"

// LaneScores holds the lane-composite deltas at each of the four time
// marks plus the lane-15 volatility (std).
type LaneScores struct {
	Delta10    float64 `json:"delta10"`
	Delta15    float64 `json:"delta15"`
	Delta20    float64 `json:"delta20"`
	Delta25    float64 `json:"delta25"`
	Volatility float64 `json:"volatility"`
}

// Reliability holds the player-independent reliability signal derived
// purely from sample size and lane-15 variance.
type Reliability struct {
	RelN         float64 `json:"relN"`
	VarianceLane float64 `json:"varianceLane"`
	Sigma        float64 `json:"sigma"`
}

// ComponentBreakdown exposes the raw per-pillar z-scores a snapshot's
// composites were built from, so the draft evaluator's composition
// rules can read them directly instead of recomputing.
type ComponentBreakdown struct {
	Prio              float64 `json:"prio"`
	Teamfight         float64 `json:"teamfight"`
	Scaling           float64 `json:"scaling"`
	Lane              float64 `json:"lane"`
	Safety            float64 `json:"safety"`
	VolatilityPenalty float64 `json:"volatilityPenalty"`
}

// Opponent is one entry in a champion-role's opponents histogram,
// with its empirical encounter probability.
type Opponent struct {
	ChampionKey string  `json:"championKey"`
	Games       int     `json:"games"`
	Probability float64 `json:"probability"`
}

// ChampionRoleMetrics is the fully-compiled snapshot for one
// (champion, role) pair — the artifact's primary per-entity record.
type ChampionRoleMetrics struct {
	ChampionKey string    `json:"championKey"`
	Role        role.Role `json:"role"`
	Games       int       `json:"games"`
	Wins        int       `json:"wins"`
	Minutes     float64   `json:"minutes"`

	WinrateAdj float64 `json:"winrateAdj"`
	WinrateZ   float64 `json:"winrateZ"`

	LaneScores LaneScores `json:"laneScores"`

	PrioZ      float64 `json:"prioZ"`
	TfZ        float64 `json:"tfZ"`
	ScalZ      float64 `json:"scalZ"`
	SafetyZ    float64 `json:"safetyZ"`
	FrontlineZ float64 `json:"frontlineZ"`

	// ExposureScore is zero until the counter table is built, then
	// filled by the second build phase.
	ExposureScore float64 `json:"exposureScore"`

	Intrinsic float64 `json:"intrinsic"`
	Blind     float64 `json:"blind"`

	Reliability Reliability `json:"reliability"`

	// FlexPrior and FlexScore are zero until flex is computed, then
	// filled by the third (final) build phase.
	FlexPrior float64 `json:"flexPrior"`
	FlexScore float64 `json:"flexScore"`

	ComponentBreakdown ComponentBreakdown `json:"componentBreakdown"`
	Opponents          []Opponent         `json:"opponents"`
}

// ChampionFlexMetrics is the per-champion flex-propensity record.
type ChampionFlexMetrics struct {
	ChampionKey    string  `json:"championKey"`
	TotalGames     int     `json:"totalGames"`
	Entropy        float64 `json:"entropy"`
	PracticalFlex  float64 `json:"practicalFlex"`
	FlexScore      float64 `json:"flexScore"`
}

// SynergyEntry is one unordered champion pair's precomputed synergy.
type SynergyEntry struct {
	ChampionA     string  `json:"championA"`
	ChampionB     string  `json:"championB"`
	Samples       int     `json:"samples"`
	NPMI          float64 `json:"npmi"`
	DeltaWinrate  float64 `json:"deltaWinrate"`
	Winrate       float64 `json:"winrate"`
	Score         float64 `json:"score"`
}

// CounterEntry is one (role, champion, opponent) head-to-head record.
type CounterEntry struct {
	Role      role.Role `json:"role"`
	Champion  string    `json:"champion"`
	Opponent  string    `json:"opponent"`
	Samples   int       `json:"samples"`
	Wins      int       `json:"wins"`
	Winrate   float64   `json:"winrate"`
	LaneScore float64   `json:"laneScore"`
	LaneDelta float64   `json:"laneDelta"`
	KPEarly   float64   `json:"kpEarly"`
	Score     float64   `json:"score"`
}

// PlayerReliability is one (player, champion, role)'s track record.
// RecentForm is always 0: the moments are collected but no
// recent-window computation is specified (open question in spec).
type PlayerReliability struct {
	Player     string    `json:"player"`
	Champion   string    `json:"champion"`
	Role       role.Role `json:"role"`
	Games      int       `json:"games"`
	Wins       int       `json:"wins"`
	WinrateAdj float64   `json:"winrateAdj"`
	LaneMean15 float64   `json:"laneMean15"`
	LaneStd15  float64   `json:"laneStd15"`
	// ComfortScore is always 0 — whether player recency/comfort is a
	// planned dimension is unresolved upstream.
	ComfortScore float64 `json:"comfortScore"`
	RecentForm   float64 `json:"recentForm"`
}

// RoleSummary is the top-level per-role winrate/games pair.
type RoleSummary struct {
	Role       role.Role `json:"role"`
	Games      int       `json:"games"`
	Wins       int       `json:"wins"`
	Winrate    float64   `json:"winrate"`
}

// Result bundles every list the compiler produces, ready to freeze
// into the artifact.
type Result struct {
	RoleSummaries       [role.NumRoles]RoleSummary
	ChampionRoleMetrics []ChampionRoleMetrics
	ChampionFlexMetrics []ChampionFlexMetrics
	SynergyMatrix       []SynergyEntry
	CounterMatrix       []CounterEntry
	PlayerReliability   []PlayerReliability
}
