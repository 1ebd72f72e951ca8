package aggregate

import "github.com/kihw/draftlens/internal/role"

// ChampionRoleAccumulator holds the running sums for one (champion,
// role) pair. It is mutated only by the Aggregator and is read-only
// once the metric compiler has consumed it.
type ChampionRoleAccumulator struct {
	Games, Wins int
	MinutesSum  float64

	PlatesSum                                      float64
	FirstTowerCount, FirstMidTowerCount             int
	FirstToThreeCount                               int
	HeraldsDeltaSum, GrubsDeltaSum                   float64
	DragonsDeltaSum, BaronsDeltaSum, AtakhansDeltaSum float64

	// *PMWeightedSum accumulate rate*minutes so the compiler can derive
	// a minutes-weighted average rate (sum / totalMinutes).
	DamagePMWeightedSum           float64
	DamageTakenPMWeightedSum      float64
	DamageMitigatedPMWeightedSum  float64
	VisionPMWeightedSum           float64

	KillsSum, DeathsSum, AssistsSum, TeamKillsSum int

	// LaneSum/LaneCount hold the per-game weighted lane composite at
	// each of the four time marks (10/15/20/25), indexed 0..3.
	LaneSum   [4]float64
	LaneCount [4]int

	Lane15Sum, Lane15SumSq float64
	Lane15Count            int

	// Opponents is the (champion -> games-faced) histogram built during
	// opponent attachment.
	Opponents map[string]int
}

func newChampionRoleAccumulator() *ChampionRoleAccumulator {
	return &ChampionRoleAccumulator{Opponents: make(map[string]int)}
}

// ChampionFlexAccumulator tracks a champion's total games and its
// per-role game counts, the raw material for the flex-propensity
// score.
type ChampionFlexAccumulator struct {
	TotalGames int
	RoleGames  [role.NumRoles]int
}

// CounterAccumulator holds the running (role, champion, opponent)
// head-to-head sample: win rate plus lane-15 and early-KP moments.
type CounterAccumulator struct {
	Games, Wins int

	LaneSum, LaneSumSq float64
	LaneCount          int

	KPSum, KPSumSq float64
	KPCount        int
}

// PlayerChampionAccumulator holds one player's track record on one
// champion in one role.
type PlayerChampionAccumulator struct {
	Games, Wins int
	MinutesSum  float64

	Lane15Sum, Lane15SumSq float64
	Lane15Count            int
}

// SoloSynergyAccumulator holds a champion's solo team-presence rate,
// used as the marginal in the pairwise NPMI calculation.
type SoloSynergyAccumulator struct {
	Games, Wins int
}

// PairSynergyAccumulator holds an unordered champion pair's
// co-occurrence and shared win rate.
type PairSynergyAccumulator struct {
	Games, Wins int
}

// RoleTotals accumulates the top-level per-role winrate/games the
// artifact exposes directly (roleWinrate, roleGames).
type RoleTotals struct {
	Games, Wins int
}
