package metrics

import (
	"github.com/kihw/draftlens/internal/aggregate"
	"github.com/kihw/draftlens/internal/mathkernel"
	"github.com/kihw/draftlens/internal/role"
)

// rawSnapshot is the per-(champion,role) snapshot before any
// role-distribution z-scoring is applied.
type rawSnapshot struct {
	Champion string
	Role     role.Role
	Games    int
	Wins     int
	Minutes  float64

	WrAdj float64

	PlatesPerGame       float64
	FirstTowerRate      float64
	FirstMidTowerRate   float64
	FirstToThreeRate    float64
	HeraldGrubsPerGame  float64
	DragonPerGame       float64
	BaronAtakhanPerGame float64

	DPM               float64
	KP                float64
	DamageTakenPM     float64
	DamageMitigatedPM float64
	VisionPM          float64
	DeathsPM          float64

	LaneComposite [4]float64
	LaneMean15    float64
	LaneStd15     float64

	ScalingGold float64
	ScalingXp   float64
	Frontline   float64

	Opponents map[string]int
}

// laneTimeWeights mirrors aggregate's per-component weights; kept
// local since the compiler recombines lane sums the accumulator
// already weighted per-row — here it only divides by sample count.
var laneTimeWeights = [4]float64{1.0, 0.7, 0.5, 0.3}

func buildRawSnapshots(roleWinrate [role.NumRoles]float64, priors Priors, championRoles map[aggregate.ChampionRoleKey]*aggregate.ChampionRoleAccumulator) []rawSnapshot {
	snaps := make([]rawSnapshot, 0, len(championRoles))

	for key, acc := range championRoles {
		safeMinutes := acc.MinutesSum
		if safeMinutes < 1e-6 {
			safeMinutes = 1e-6
		}
		games := float64(acc.Games)
		if games <= 0 {
			games = 1
		}

		s := rawSnapshot{
			Champion: key.Champion,
			Role:     key.Role,
			Games:    acc.Games,
			Wins:     acc.Wins,
			Minutes:  acc.MinutesSum,

			WrAdj: mathkernel.BetaBinomialAdjust(float64(acc.Wins), float64(acc.Games), roleWinrate[key.Role], priors.WinrateN0),

			PlatesPerGame:       mathkernel.SafeDivide(acc.PlatesSum, games, 0),
			FirstTowerRate:      mathkernel.SafeDivide(float64(acc.FirstTowerCount), games, 0),
			FirstMidTowerRate:   mathkernel.SafeDivide(float64(acc.FirstMidTowerCount), games, 0),
			FirstToThreeRate:    mathkernel.SafeDivide(float64(acc.FirstToThreeCount), games, 0),
			HeraldGrubsPerGame:  mathkernel.SafeDivide(acc.HeraldsDeltaSum+acc.GrubsDeltaSum, games, 0),
			DragonPerGame:       mathkernel.SafeDivide(acc.DragonsDeltaSum, games, 0),
			BaronAtakhanPerGame: mathkernel.SafeDivide(acc.BaronsDeltaSum+acc.AtakhansDeltaSum, games, 0),

			DPM:               mathkernel.SafeDivide(acc.DamagePMWeightedSum, safeMinutes, 0),
			DamageTakenPM:     mathkernel.SafeDivide(acc.DamageTakenPMWeightedSum, safeMinutes, 0),
			DamageMitigatedPM: mathkernel.SafeDivide(acc.DamageMitigatedPMWeightedSum, safeMinutes, 0),
			VisionPM:          mathkernel.SafeDivide(acc.VisionPMWeightedSum, safeMinutes, 0),
			DeathsPM:          mathkernel.SafeDivide(float64(acc.DeathsSum), safeMinutes, 0),
			KP:                mathkernel.SafeDivide(float64(acc.KillsSum+acc.AssistsSum), float64(maxInt(acc.TeamKillsSum, 1)), 0),

			Opponents: acc.Opponents,
		}

		for i := range acc.LaneSum {
			s.LaneComposite[i] = mathkernel.SafeDivide(acc.LaneSum[i], float64(maxInt(acc.LaneCount[i], 1)), 0)
		}
		s.LaneMean15, s.LaneStd15 = mathkernel.MomentsFromSums(acc.Lane15Sum, acc.Lane15SumSq, acc.Lane15Count)

		// Gold and xp scaling are both read off the same blended lane
		// composite (accumulators don't retain per-component sums), so
		// the two rates are identical here; scalZ below still averages
		// them as two independent terms.
		s.ScalingGold = (s.LaneComposite[2] - s.LaneComposite[1]) / 10
		s.ScalingXp = s.ScalingGold
		s.Frontline = s.DamageTakenPM + 0.7*s.DamageMitigatedPM

		snaps = append(snaps, s)
	}

	return snaps
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
