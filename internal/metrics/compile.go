package metrics

import (
	"math"
	"sort"

	"github.com/kihw/draftlens/internal/aggregate"
	"github.com/kihw/draftlens/internal/mathkernel"
	"github.com/kihw/draftlens/internal/role"
)

const pmiEpsilon = 1e-9

// Compile turns an Aggregator's accumulators into a fully z-scored,
// cross-indexed Result, building in three phases: snapshots first,
// counters second (so exposure can look them up), flex scores last.
func Compile(agg *aggregate.Aggregator, priors Priors, weights Weights) Result {
	roleTotals := agg.RoleTotals()
	var roleWinrate [role.NumRoles]float64
	var roleSummaries [role.NumRoles]RoleSummary
	for i, rt := range roleTotals {
		roleWinrate[i] = mathkernel.SafeDivide(float64(rt.Wins), float64(rt.Games), 0.5)
		roleSummaries[i] = RoleSummary{Role: role.Role(i), Games: rt.Games, Wins: rt.Wins, Winrate: roleWinrate[i]}
	}

	raws := buildRawSnapshots(roleWinrate, priors, agg.ChampionRoles())
	dist := buildRoleDistributions(raws)

	snapshots := make([]ChampionRoleMetrics, len(raws))
	for i, s := range raws {
		snapshots[i] = compileSnapshot(s, dist, priors, weights)
	}

	counters := compileCounters(agg.Counters(), dist, priors)
	counterIndex := make(map[aggregate.CounterKey]CounterEntry, len(counters))
	for _, c := range counters {
		counterIndex[aggregate.CounterKey{Role: c.Role, Champion: c.Champion, Opponent: c.Opponent}] = c
	}

	attachOpponentsAndExposure(snapshots, raws, counterIndex)

	flexMetrics := compileFlex(agg.Flex(), weights)
	flexByChampion := make(map[string]ChampionFlexMetrics, len(flexMetrics))
	for _, f := range flexMetrics {
		flexByChampion[f.ChampionKey] = f
	}
	for i := range snapshots {
		if f, ok := flexByChampion[snapshots[i].ChampionKey]; ok {
			snapshots[i].FlexScore = f.FlexScore
			snapshots[i].FlexPrior = f.FlexScore
			snapshots[i].Blind += weights.Blind.W4 * f.FlexScore
		}
	}

	synergies := compileSynergies(agg.Solo(), agg.Pairs(), agg.TotalTeamEntries(), priors)

	players := compilePlayerReliability(agg.Players(), priors)

	sort.Slice(snapshots, func(i, j int) bool {
		if snapshots[i].Role != snapshots[j].Role {
			return snapshots[i].Role < snapshots[j].Role
		}
		return snapshots[i].ChampionKey < snapshots[j].ChampionKey
	})
	sort.Slice(flexMetrics, func(i, j int) bool { return flexMetrics[i].ChampionKey < flexMetrics[j].ChampionKey })
	sort.Slice(synergies, func(i, j int) bool {
		if synergies[i].ChampionA != synergies[j].ChampionA {
			return synergies[i].ChampionA < synergies[j].ChampionA
		}
		return synergies[i].ChampionB < synergies[j].ChampionB
	})
	sort.Slice(counters, func(i, j int) bool {
		if counters[i].Role != counters[j].Role {
			return counters[i].Role < counters[j].Role
		}
		if counters[i].Champion != counters[j].Champion {
			return counters[i].Champion < counters[j].Champion
		}
		return counters[i].Opponent < counters[j].Opponent
	})
	sort.Slice(players, func(i, j int) bool {
		if players[i].Player != players[j].Player {
			return players[i].Player < players[j].Player
		}
		return players[i].Champion < players[j].Champion
	})

	return Result{
		RoleSummaries:       roleSummaries,
		ChampionRoleMetrics: snapshots,
		ChampionFlexMetrics: flexMetrics,
		SynergyMatrix:       synergies,
		CounterMatrix:       counters,
		PlayerReliability:   players,
	}
}

func compileSnapshot(s rawSnapshot, dist roleDistributions, priors Priors, weights Weights) ChampionRoleMetrics {
	z := func(metric string, v float64) float64 {
		st := dist.stat(s.Role, metric)
		return mathkernel.ComputeZScore(v, st.Mean, st.Std, 0)
	}

	winrateZ := z("wrAdj", s.WrAdj)
	prioZ := mathkernel.Mean([]float64{z("plates", s.PlatesPerGame), z("firstTower", s.FirstTowerRate), z("heraldGrubs", s.HeraldGrubsPerGame), z("dragon", s.DragonPerGame)})
	tfZ := mathkernel.Mean([]float64{z("dpm", s.DPM), z("kp", s.KP), z("mitigationPm", s.DamageMitigatedPM), z("visionPm", s.VisionPM)})
	scalZ := mathkernel.Mean([]float64{z("scalingGold", s.ScalingGold), z("scalingXp", s.ScalingXp), z("baronAtakhan", s.BaronAtakhanPerGame)})
	deathsZ := z("deathsPm", s.DeathsPM)
	mitigationZ := z("mitigationPm", s.DamageMitigatedPM)
	safetyZ := mathkernel.Mean([]float64{deathsZ, mitigationZ})
	laneZ := z("laneMean15", s.LaneMean15)
	volatilityZ := z("laneStd15", s.LaneStd15)
	frontlineZ := z("frontline", s.Frontline)

	intrinsic := weights.Intrinsic.A*winrateZ + weights.Intrinsic.B*prioZ + weights.Intrinsic.C*tfZ + weights.Intrinsic.D*scalZ + weights.Intrinsic.E*laneZ
	safetyComponent := -deathsZ + 0.4*mitigationZ
	blind := weights.Blind.W1*winrateZ + weights.Blind.W2*safetyComponent - weights.Blind.W3*volatilityZ

	return ChampionRoleMetrics{
		ChampionKey: s.Champion,
		Role:        s.Role,
		Games:       s.Games,
		Wins:        s.Wins,
		Minutes:     s.Minutes,
		WinrateAdj:  s.WrAdj,
		WinrateZ:    winrateZ,
		LaneScores: LaneScores{
			Delta10:    s.LaneComposite[0],
			Delta15:    s.LaneComposite[1],
			Delta20:    s.LaneComposite[2],
			Delta25:    s.LaneComposite[3],
			Volatility: s.LaneStd15,
		},
		PrioZ:      prioZ,
		TfZ:        tfZ,
		ScalZ:      scalZ,
		SafetyZ:    safetyZ,
		FrontlineZ: frontlineZ,
		Intrinsic:  intrinsic,
		Blind:      blind,
		Reliability: Reliability{
			RelN:         mathkernel.SafeDivide(float64(s.Games), float64(s.Games)+priors.WinrateN0, 0),
			VarianceLane: s.LaneStd15 * s.LaneStd15,
			Sigma:        math.Max(s.LaneStd15, 0.01),
		},
		ComponentBreakdown: ComponentBreakdown{
			Prio:              prioZ,
			Teamfight:         tfZ,
			Scaling:           scalZ,
			Lane:              laneZ,
			Safety:            safetyZ,
			VolatilityPenalty: volatilityZ,
		},
	}
}

// attachOpponentsAndExposure fills each snapshot's Opponents list and
// exposureScore from its matching raw snapshot's opponent histogram.
// raws and snapshots share index alignment (both built from the same
// iteration in Compile, before either is sorted).
func attachOpponentsAndExposure(snapshots []ChampionRoleMetrics, raws []rawSnapshot, counters map[aggregate.CounterKey]CounterEntry) {
	for i := range snapshots {
		s := &snapshots[i]
		raw := raws[i].Opponents

		total := 0
		for _, n := range raw {
			total += n
		}
		if total == 0 {
			s.Opponents = nil
			s.ExposureScore = 0
			continue
		}

		names := make([]string, 0, len(raw))
		for name := range raw {
			names = append(names, name)
		}
		sort.Strings(names)

		opponents := make([]Opponent, 0, len(names))
		exposure := 0.0
		for _, name := range names {
			count := raw[name]
			prob := float64(count) / float64(total)
			opponents = append(opponents, Opponent{ChampionKey: name, Games: count, Probability: prob})

			if entry, ok := counters[aggregate.CounterKey{Role: s.Role, Champion: s.ChampionKey, Opponent: name}]; ok {
				exposure += prob * math.Max(0, entry.Score)
			}
		}
		s.Opponents = opponents
		s.ExposureScore = exposure
	}
}
