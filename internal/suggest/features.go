package suggest

import (
	"github.com/kihw/draftlens/internal/draft"
	"github.com/kihw/draftlens/internal/index"
	"github.com/kihw/draftlens/internal/mathkernel"
	"github.com/kihw/draftlens/internal/metrics"
	"github.com/kihw/draftlens/internal/role"
)

// wilsonZ is the Wilson-interval critical value used by the query-time
// reliability math (the standard ~95% one-sided, ~90% two-sided
// critical value).
const wilsonZ = 1.64

// evaluateCandidate computes every raw feature for one (role,
// champion) candidate against the current team/enemy; the oracle call
// (team-winrate delta) is added by the caller since it needs the
// augmented-team map.
func evaluateCandidate(idx *index.Index, rolePop rolePickPopulation, r role.Role, champion string, m *metrics.ChampionRoleMetrics, team, enemy []draft.Assignment) *candidate {
	c := &candidate{
		sugg:        Suggestion{Role: r, Champion: champion},
		intrinsic:   m.Intrinsic,
		reliability: mathkernel.ReliabilityWeight(float64(m.Wins), float64(m.Games), wilsonZ),
		exposure:    m.ExposureScore,
		blind:       m.Blind,
	}

	if flex := idx.FlexMetrics(champion); flex != nil {
		c.flexScore = flex.FlexScore
	}

	var synergySum float64
	var synergyCount int
	for _, ally := range team {
		entry := idx.SynergyScore(champion, ally.Champion)
		if entry == nil {
			continue
		}
		synergySum += synergyValue(entry)
		synergyCount++
	}
	c.synergyAverage = mathkernel.SafeDivide(synergySum, float64(synergyCount), 0)

	var counterSum float64
	var counterCount int
	for _, en := range enemy {
		entry := idx.CounterEntry(r, champion, en.Champion)
		if entry == nil {
			continue
		}
		counterSum += entry.Score
		counterCount++
	}
	c.counterAverage = mathkernel.SafeDivide(counterSum, float64(counterCount), 0)

	var enemySynergySum float64
	var enemySynergyCount int
	for _, en := range enemy {
		entry := idx.SynergyScore(champion, en.Champion)
		if entry == nil {
			continue
		}
		enemySynergySum += synergyValue(entry)
		enemySynergyCount++
	}
	c.enemySynergyAverage = mathkernel.SafeDivide(enemySynergySum, float64(enemySynergyCount), 0)

	stat := rolePop[r]
	c.pickRateZ = mathkernel.ComputeZScore(float64(m.Games), stat.mean, stat.std, 0)

	roleGames := idx.Artifact().RoleGames[r.String()]
	roleWinrate := idx.Artifact().RoleWinrate[r.String()]
	fallbackJeffreys := mathkernel.JeffreysMean(roleWinrate*float64(roleGames), float64(roleGames))
	currentJeffreys := mathkernel.JeffreysMean(float64(m.Wins), float64(m.Games))
	trendScore := mathkernel.Saturate(currentJeffreys-fallbackJeffreys, 0.03)

	c.sugg.Scores = Scores{
		Synergy:     c.synergyAverage,
		Counter:     c.counterAverage,
		PickRate:    c.pickRateZ,
		Flex:        c.flexScore,
		Intrinsic:   c.intrinsic,
		Reliability: c.reliability,
		Exposure:    c.exposure,
		Blind:       c.blind,
		Deny:        c.enemySynergyAverage,
		Trend:       trendScore,
	}

	return c
}

// synergyValue prefers npmi when finite, else falls back to the raw
// score. The compiler stores the saturated boundary case (a pair that
// always appears together) as npmi 0, which is finite and returned as
// is.
func synergyValue(entry *metrics.SynergyEntry) float64 {
	v := entry.NPMI
	if v != v || v > 1e308 || v < -1e308 {
		return entry.Score
	}
	return v
}
