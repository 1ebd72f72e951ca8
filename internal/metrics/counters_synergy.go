package metrics

import (
	"math"

	"github.com/kihw/draftlens/internal/aggregate"
	"github.com/kihw/draftlens/internal/mathkernel"
)

func compileCounters(accs map[aggregate.CounterKey]*aggregate.CounterAccumulator, dist roleDistributions, priors Priors) []CounterEntry {
	out := make([]CounterEntry, 0, len(accs))
	for key, acc := range accs {
		games := float64(acc.Games)
		winrate := mathkernel.BetaBinomialAdjust(float64(acc.Wins), games, 0.5, priors.WinrateN0)

		laneCount := acc.LaneCount
		if laneCount <= 0 {
			laneCount = 1
		}
		laneMean := mathkernel.SafeDivide(acc.LaneSum, float64(laneCount), 0)
		laneStat := dist.stat(key.Role, "laneMean15")
		laneScore := mathkernel.ComputeZScore(laneMean, laneStat.Mean, laneStat.Std, 0)

		kpCount := acc.KPCount
		if kpCount <= 0 {
			kpCount = 1
		}
		kpEarly := mathkernel.SafeDivide(acc.KPSum, float64(kpCount), 0)

		out = append(out, CounterEntry{
			Role:      key.Role,
			Champion:  key.Champion,
			Opponent:  key.Opponent,
			Samples:   acc.Games,
			Wins:      acc.Wins,
			Winrate:   winrate,
			LaneScore: laneScore,
			LaneDelta: laneMean,
			KPEarly:   kpEarly,
			Score:     winrate - 0.5,
		})
	}
	return out
}

func compileSynergies(solo map[string]*aggregate.SoloSynergyAccumulator, pairs map[aggregate.PairKey]*aggregate.PairSynergyAccumulator, totalTeamEntries int, priors Priors) []SynergyEntry {
	total := float64(totalTeamEntries)
	if total <= 0 {
		total = 1
	}

	out := make([]SynergyEntry, 0, len(pairs))
	for key, acc := range pairs {
		soloA := solo[key.A]
		soloB := solo[key.B]

		pAB := float64(acc.Games) / total
		pA := soloMarginal(soloA, total)
		pB := soloMarginal(soloB, total)

		pmi := math.Log((pAB + pmiEpsilon) / ((pA + pmiEpsilon) * (pB + pmiEpsilon)))
		npmi := 0.0
		if pAB > 0 && pAB < 1 {
			npmi = pmi / -math.Log(pAB)
		}

		winPair := mathkernel.BetaBinomialAdjust(float64(acc.Wins), float64(acc.Games), 0.5, priors.WinrateN0)
		winA := soloWinrate(soloA, priors)
		winB := soloWinrate(soloB, priors)

		out = append(out, SynergyEntry{
			ChampionA:    key.A,
			ChampionB:    key.B,
			Samples:      acc.Games,
			NPMI:         mathkernel.Clamp(npmi, -1, 1),
			DeltaWinrate: winPair - (winA+winB)/2,
			Winrate:      winPair,
			Score:        winPair - 0.5,
		})
	}
	return out
}

func soloMarginal(s *aggregate.SoloSynergyAccumulator, total float64) float64 {
	if s == nil {
		return 0
	}
	return float64(s.Games) / total
}

func soloWinrate(s *aggregate.SoloSynergyAccumulator, priors Priors) float64 {
	if s == nil {
		return 0.5
	}
	return mathkernel.BetaBinomialAdjust(float64(s.Wins), float64(s.Games), 0.5, priors.WinrateN0)
}

func compileFlex(accs map[string]*aggregate.ChampionFlexAccumulator, weights Weights) []ChampionFlexMetrics {
	out := make([]ChampionFlexMetrics, 0, len(accs))
	for champion, acc := range accs {
		total := float64(acc.TotalGames)
		entropy := 0.0
		practical := 0
		if total > 0 {
			for _, gr := range acc.RoleGames {
				if gr <= 0 {
					continue
				}
				p := float64(gr) / total
				entropy -= p * math.Log(p)
				if gr >= 3 {
					practical++
				}
			}
			entropy /= math.Log(5)
		}
		practicalFlex := float64(practical) / 5

		out = append(out, ChampionFlexMetrics{
			ChampionKey:   champion,
			TotalGames:    acc.TotalGames,
			Entropy:       entropy,
			PracticalFlex: practicalFlex,
			FlexScore:     weights.Flex.U1*entropy + weights.Flex.U2*practicalFlex,
		})
	}
	return out
}

func compilePlayerReliability(accs map[aggregate.PlayerChampionKey]*aggregate.PlayerChampionAccumulator, priors Priors) []PlayerReliability {
	out := make([]PlayerReliability, 0, len(accs))
	for key, acc := range accs {
		mean, std := mathkernel.MomentsFromSums(acc.Lane15Sum, acc.Lane15SumSq, acc.Lane15Count)
		out = append(out, PlayerReliability{
			Player:     key.Player,
			Champion:   key.Champion,
			Role:       key.Role,
			Games:      acc.Games,
			Wins:       acc.Wins,
			WinrateAdj: mathkernel.BetaBinomialAdjust(float64(acc.Wins), float64(acc.Games), 0.5, priors.WinrateN0),
			LaneMean15: mean,
			LaneStd15:  std,
		})
	}
	return out
}
