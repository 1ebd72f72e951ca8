// Package draft implements the C7 draft evaluator: given a partial
// team/enemy draft and an Engine built over a precompute artifact, it
// scores each filled ally pick's intrinsic/synergy/counter/exposure/
// flex contributions and rolls them into one composition-level
// evaluation.
package draft

import (
	"sort"

	"github.com/kihw/draftlens/internal/artifact"
	"github.com/kihw/draftlens/internal/index"
	"github.com/kihw/draftlens/internal/mathkernel"
	"github.com/kihw/draftlens/internal/metrics"
	"github.com/kihw/draftlens/internal/role"
)

// wilsonZ is the Wilson-interval critical value used when folding a
// pick's sample size into its reliability weight.
const wilsonZ = 1.64

// Engine is the query-time façade over one precompute artifact: an
// index plus the frozen priors/weights/role-weight tables needed to
// evaluate a draft. Immutable once built; safe for concurrent use.
type Engine struct {
	idx *index.Index
}

// NewEngine builds an Engine over a, which must outlive it.
func NewEngine(a *artifact.PrecomputedDraftMetrics) *Engine {
	return &Engine{idx: index.Build(a)}
}

// Index exposes the underlying lookup index for callers (the
// suggestion ranker) that need direct synergy/counter access.
func (e *Engine) Index() *index.Index { return e.idx }

// Artifact exposes the frozen priors/weights/role-weight tables.
func (e *Engine) Artifact() *artifact.PrecomputedDraftMetrics { return e.idx.Artifact() }

// Assignment is one role's filled pick, with an optional player name
// for player-specific reliability lookups.
type Assignment struct {
	Role     role.Role
	Champion string
	Player   string // empty if unassigned
}

// PickContribution is one ally pick's scored contribution to a draft
// evaluation.
type PickContribution struct {
	Role          role.Role
	Champion      string
	Intrinsic     float64
	Reliability   float64
	FlexScore     float64
	SynergyScore  float64
	CounterScore  float64
	DenyScore     float64
	ExposureScore float64
	Total         float64
}

// Evaluation is the draft evaluator's output for one (team, enemy)
// state.
type Evaluation struct {
	Picks             []PickContribution
	SynergyTotal      float64
	CompositionBonus  float64
	CompositionPenalty float64
	Notes             []string
	TotalScore        float64
}

type weightedContribution struct {
	pickIndex int
	score     float64
	weight    float64
}

// Evaluate scores every filled ally pick in team against enemy.
// playerAssignments maps role to player name for reliability lookups;
// pass nil when no player is assigned.
func (e *Engine) Evaluate(team, enemy []Assignment, playerAssignments map[role.Role]string) Evaluation {
	weights := e.Artifact().Weights
	counterWeights := e.Artifact().CounterRoleWeights
	synergyWeights := e.Artifact().SynergyRoleWeights

	picks := make([]PickContribution, len(team))
	snapshots := make([]*metrics.ChampionRoleMetrics, len(team))

	for i, a := range team {
		m := e.idx.ChampionRoleMetrics(a.Champion, a.Role)
		snapshots[i] = m

		pc := PickContribution{Role: a.Role, Champion: a.Champion}
		if m != nil {
			pc.Intrinsic = m.Intrinsic
			pc.ExposureScore = m.ExposureScore
			pc.Reliability = mathkernel.ReliabilityWeight(float64(m.Wins), float64(m.Games), wilsonZ)
		}
		if flex := e.idx.FlexMetrics(a.Champion); flex != nil {
			pc.FlexScore = flex.FlexScore
		}
		player := a.Player
		if player == "" && playerAssignments != nil {
			player = playerAssignments[a.Role]
		}
		if player != "" {
			if rel := e.idx.PlayerChampionReliability(player, a.Champion, a.Role); rel != nil {
				pc.Reliability = rel.WinrateAdj
			}
		}
		picks[i] = pc
	}

	synergyContribs := make(map[int][]weightedContribution)
	var synergyTotal float64
	for i := range team {
		for j := range team {
			if i == j {
				continue
			}
			entry := e.idx.SynergyScore(team[i].Champion, team[j].Champion)
			if entry == nil {
				continue
			}
			score := entry.NPMI
			if score == 0 || isNonFinite(score) {
				score = entry.Score
			}
			if score == 0 {
				continue
			}
			w := synergyWeights.Weight(team[i].Role, team[j].Role)
			synergyContribs[i] = append(synergyContribs[i], weightedContribution{pickIndex: i, score: score, weight: w})
			synergyTotal += score
		}
	}
	for i, contribs := range synergyContribs {
		picks[i].SynergyScore = normalizedSum(contribs)
	}

	counterContribs := make(map[int][]weightedContribution)
	for i := range team {
		for _, en := range enemy {
			w := counterWeights.Weight(team[i].Role, en.Role)
			if w <= 0 {
				continue
			}
			entry := e.idx.CounterEntry(team[i].Role, team[i].Champion, en.Champion)
			if entry == nil {
				continue
			}
			counterContribs[i] = append(counterContribs[i], weightedContribution{pickIndex: i, score: entry.Score, weight: w})
		}
	}
	for i, contribs := range counterContribs {
		picks[i].CounterScore = normalizedSum(contribs)
	}

	var totalScore float64
	for i := range picks {
		pc := &picks[i]
		pc.Total = pc.Intrinsic +
			weights.State.K1*pc.Reliability +
			weights.State.K3*pc.FlexScore +
			weights.State.K4*pc.SynergyScore +
			weights.State.K5*pc.CounterScore +
			weights.State.K6*pc.DenyScore -
			weights.State.K7*pc.ExposureScore
		totalScore += pc.Total
	}

	bonus, penalty, notes := compositionRules(snapshots)
	if maxField(picks, func(p PickContribution) float64 { return p.SynergyScore }) < 0 {
		notes = append(notes, "Faible synergie interne")
	}
	if maxField(picks, func(p PickContribution) float64 { return p.CounterScore }) < 0 {
		notes = append(notes, "Matchups defavorables identifies")
	}

	return Evaluation{
		Picks:              picks,
		SynergyTotal:       synergyTotal,
		CompositionBonus:   bonus,
		CompositionPenalty: penalty,
		Notes:              notes,
		TotalScore:         totalScore + bonus - penalty,
	}
}

func normalizedSum(contribs []weightedContribution) float64 {
	var totalWeight float64
	for _, c := range contribs {
		totalWeight += c.weight
	}
	if totalWeight <= 0 {
		return 0
	}
	var sum float64
	for _, c := range contribs {
		sum += c.score * (c.weight / totalWeight)
	}
	return sum
}

func isNonFinite(f float64) bool {
	return f != f || f > 1e308 || f < -1e308
}

func maxField(picks []PickContribution, get func(PickContribution) float64) float64 {
	max := 0.0
	first := true
	for _, p := range picks {
		v := get(p)
		if first || v > max {
			max = v
			first = false
		}
	}
	return max
}

func meanField(snaps []*metrics.ChampionRoleMetrics, get func(*metrics.ChampionRoleMetrics) float64) float64 {
	var sum float64
	n := 0
	for _, s := range snaps {
		if s == nil {
			continue
		}
		sum += get(s)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func maxSnapField(snaps []*metrics.ChampionRoleMetrics, get func(*metrics.ChampionRoleMetrics) float64) float64 {
	max := 0.0
	first := true
	for _, s := range snaps {
		if s == nil {
			continue
		}
		v := get(s)
		if first || v > max {
			max = v
			first = false
		}
	}
	return max
}

// compositionRules applies a fixed set of composition-health
// thresholds over the team's frontline/priority/scaling/lane/teamfight/
// safety snapshots, returning one aggregate bonus, one aggregate
// penalty, and any notes they produced.
func compositionRules(snaps []*metrics.ChampionRoleMetrics) (bonus, penalty float64, notes []string) {
	frontline := maxSnapField(snaps, func(m *metrics.ChampionRoleMetrics) float64 { return m.FrontlineZ })
	switch {
	case frontline < -0.2:
		penalty += 0.4
		notes = append(notes, "Frontline fragile")
	case frontline > 0.6:
		bonus += 0.2
	}

	prio := meanField(snaps, func(m *metrics.ChampionRoleMetrics) float64 { return m.PrioZ })
	switch {
	case prio < -0.2:
		penalty += 0.3
	case prio > 0.2:
		bonus += 0.15
	}

	scaling := meanField(snaps, func(m *metrics.ChampionRoleMetrics) float64 { return m.ScalZ })
	switch {
	case scaling < -0.25:
		penalty += 0.2
	case scaling > 0.25:
		bonus += 0.15
	}

	lane := meanField(snaps, func(m *metrics.ChampionRoleMetrics) float64 { return m.ComponentBreakdown.Lane })
	if lane < -0.3 {
		penalty += 0.2
	}

	teamfight := meanField(snaps, func(m *metrics.ChampionRoleMetrics) float64 { return m.TfZ })
	switch {
	case teamfight < -0.2:
		penalty += 0.2
	case teamfight > 0.25:
		bonus += 0.15
	}

	safety := meanField(snaps, func(m *metrics.ChampionRoleMetrics) float64 { return m.SafetyZ })
	if safety < -0.2 {
		penalty += 0.1
	}

	sort.Strings(notes)
	return bonus, penalty, notes
}
