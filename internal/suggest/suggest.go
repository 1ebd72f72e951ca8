// Package suggest implements the C8 suggestion ranker: for every
// unassigned role and every legal champion, it evaluates a candidate
// pick against a stage-specific weighting and emits ranked
// Suggestions with typed reasons, pro-play references, and (at stage
// R3) ban recommendations.
package suggest

import (
	"context"
	"math"
	"sort"

	"github.com/kihw/draftlens/internal/draft"
	"github.com/kihw/draftlens/internal/draftresult"
	"github.com/kihw/draftlens/internal/index"
	"github.com/kihw/draftlens/internal/mathkernel"
	"github.com/kihw/draftlens/internal/metrics"
	"github.com/kihw/draftlens/internal/role"
)

// priorityDuoRoles is the fixed pair-priority table pro references
// prefer when ranking synergy samples.
var priorityDuoRoles = map[[2]role.Role]bool{
	{role.Top, role.Jungle}:     true,
	{role.Jungle, role.Mid}:     true,
	{role.Bot, role.Support}:    true,
	{role.Jungle, role.Support}: true,
	{role.Top, role.Mid}:        true,
}

func isPriorityDuo(a, b role.Role) bool {
	return priorityDuoRoles[[2]role.Role{a, b}] || priorityDuoRoles[[2]role.Role{b, a}]
}

// candidate is one (role, champion) evaluated suggestion plus the raw
// features later stages (pair boost, reasons) read.
type candidate struct {
	sugg Suggestion

	synergyAverage      float64
	counterAverage      float64
	enemySynergyAverage float64 // doubles as denyScore
	pickRateZ           float64
	intrinsic           float64
	reliability         float64
	flexScore           float64
	exposure            float64
	blind               float64
}

// rolePickPopulation holds the mean/std of games-played across a
// role's candidate population, for pickRateZ.
type rolePickPopulation map[role.Role]distStat

type distStat struct{ mean, std float64 }

func buildRolePickPopulation(idx *index.Index, roles []role.Role) rolePickPopulation {
	pop := make(rolePickPopulation, len(roles))
	for _, r := range roles {
		snaps := idx.ChampionRoleMetricsForRole(r)
		games := make([]float64, len(snaps))
		weights := make([]float64, len(snaps))
		for i, s := range snaps {
			games[i] = float64(s.Games)
			weights[i] = 1
		}
		mean, variance := mathkernel.WeightedMeanVariance(games, weights)
		pop[r] = distStat{mean: mean, std: math.Sqrt(variance)}
	}
	return pop
}

// Rank evaluates every legal candidate pick for the unassigned roles
// in team against enemy, under stage's weighting, and returns them
// sorted by global score descending (ties by synergy, then pickRate).
func Rank(ctx context.Context, engine *draft.Engine, oracle draftresult.Analyzer, dataset draftresult.Dataset, refs ReferenceDataset, team, enemy []draft.Assignment, stage Stage) ([]Suggestion, error) {
	weights := WeightsFor(stage)
	idx := engine.Index()

	assignedChampions := make(map[string]bool, len(team)+len(enemy))
	assignedRoles := make(map[role.Role]bool, len(team))
	for _, a := range team {
		assignedChampions[a.Champion] = true
		assignedRoles[a.Role] = true
	}
	for _, a := range enemy {
		assignedChampions[a.Champion] = true
	}

	var unassigned []role.Role
	for _, r := range role.All {
		if !assignedRoles[r] {
			unassigned = append(unassigned, r)
		}
	}

	teamMap := assignmentsToMap(team)
	enemyMap := assignmentsToMap(enemy)

	baseline, err := oracle.AnalyzeDraft(dataset, teamMap, enemyMap)
	if err != nil {
		return nil, err
	}

	rolePop := buildRolePickPopulation(idx, unassigned)

	type job struct {
		r        role.Role
		champion string
		m        *metrics.ChampionRoleMetrics
	}
	var legal []job
	for _, r := range unassigned {
		for _, champion := range idx.Champions() {
			if assignedChampions[champion] {
				continue
			}
			m := idx.ChampionRoleMetrics(champion, r)
			if m == nil {
				continue
			}
			legal = append(legal, job{r: r, champion: champion, m: m})
		}
	}

	candidates := make([]*candidate, len(legal))
	jobs := make([]candidateJob, len(legal))
	for i, j := range legal {
		i, j := i, j
		jobs[i] = candidateJob{
			index: i,
			eval: func() (Suggestion, bool) {
				c := evaluateCandidate(idx, rolePop, j.r, j.champion, j.m, team, enemy)

				augmented := make([]draft.Assignment, 0, len(team)+1)
				augmented = append(augmented, team...)
				augmented = append(augmented, draft.Assignment{Role: j.r, Champion: j.champion})
				if result, err := oracle.AnalyzeDraft(dataset, assignmentsToMap(augmented), enemyMap); err == nil {
					c.sugg.TeamWinrateAfter = result.Winrate
					c.sugg.TeamWinrateDelta = result.Winrate - baseline.Winrate
					c.sugg.TeamRatingDelta = result.TotalRating - baseline.TotalRating
				}

				candidates[i] = c
				return c.sugg, true
			},
		}
	}

	// evaluateCandidates runs eval() for its side effect of populating
	// candidates[i]; its own return value is superseded by the
	// post-scoring rebuild below, which needs the richer *candidate
	// feature set, not just the bare Suggestion.
	evaluateCandidates(ctx, jobs)

	live := make([]*candidate, 0, len(candidates))
	for _, c := range candidates {
		if c != nil {
			live = append(live, c)
		}
	}

	applyStageScoring(live, weights)
	if weights.Pair != nil {
		applyPairBoost(live, weights.Pair, idx)
	}
	attachReasons(live, stage)
	attachProReferences(live, refs, team, enemy)
	if weights.BanRecommendations {
		attachBanRecommendations(live, idx)
	}

	out := make([]Suggestion, len(live))
	for i, c := range live {
		out[i] = c.sugg
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Scores.Global != out[j].Scores.Global {
			return out[i].Scores.Global > out[j].Scores.Global
		}
		if out[i].Scores.Synergy != out[j].Scores.Synergy {
			return out[i].Scores.Synergy > out[j].Scores.Synergy
		}
		return out[i].Scores.PickRate > out[j].Scores.PickRate
	})

	return out, nil
}

func assignmentsToMap(as []draft.Assignment) map[role.Role]string {
	m := make(map[role.Role]string, len(as))
	for _, a := range as {
		m[a.Role] = a.Champion
	}
	return m
}
