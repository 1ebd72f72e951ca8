// Package index builds hash-backed O(1) lookups over an artifact, so
// the draft evaluator and suggestion ranker never scan its lists.
package index

import (
	"github.com/kihw/draftlens/internal/artifact"
	"github.com/kihw/draftlens/internal/metrics"
	"github.com/kihw/draftlens/internal/role"
)

type championRoleKey struct {
	Champion string
	Role     role.Role
}

type pairKey struct {
	A, B string
}

func newPairKey(a, b string) pairKey {
	if a < b {
		return pairKey{A: a, B: b}
	}
	return pairKey{A: b, B: a}
}

type counterKey struct {
	Role     role.Role
	Champion string
	Opponent string
}

type playerChampionKey struct {
	Player   string
	Champion string
	Role     role.Role
}

// Index holds non-owning lookups into an artifact. It never mutates
// or copies the underlying lists; it only indexes them by key.
type Index struct {
	artifact *artifact.PrecomputedDraftMetrics

	championRole map[championRoleKey]*metrics.ChampionRoleMetrics
	flex         map[string]*metrics.ChampionFlexMetrics
	synergy      map[pairKey]*metrics.SynergyEntry
	counter      map[counterKey]*metrics.CounterEntry
	countersBy   map[championRoleKey][]*metrics.CounterEntry
	reliability  map[playerChampionKey]*metrics.PlayerReliability
	byRole       [role.NumRoles][]*metrics.ChampionRoleMetrics
	champions    []string
}

// Build constructs an Index over a, which must outlive it.
func Build(a *artifact.PrecomputedDraftMetrics) *Index {
	idx := &Index{
		artifact:     a,
		championRole: make(map[championRoleKey]*metrics.ChampionRoleMetrics, len(a.ChampionRoleMetrics)),
		flex:         make(map[string]*metrics.ChampionFlexMetrics, len(a.ChampionFlexMetrics)),
		synergy:      make(map[pairKey]*metrics.SynergyEntry, len(a.SynergyMatrix)),
		counter:      make(map[counterKey]*metrics.CounterEntry, len(a.CounterMatrix)),
		countersBy:   make(map[championRoleKey][]*metrics.CounterEntry, len(a.CounterMatrix)),
		reliability:  make(map[playerChampionKey]*metrics.PlayerReliability, len(a.PlayerReliability)),
	}

	seenChampion := make(map[string]struct{}, len(a.ChampionRoleMetrics))
	for i := range a.ChampionRoleMetrics {
		m := &a.ChampionRoleMetrics[i]
		idx.championRole[championRoleKey{Champion: m.ChampionKey, Role: m.Role}] = m
		idx.byRole[m.Role] = append(idx.byRole[m.Role], m)
		if _, ok := seenChampion[m.ChampionKey]; !ok {
			seenChampion[m.ChampionKey] = struct{}{}
			idx.champions = append(idx.champions, m.ChampionKey)
		}
	}
	for i := range a.ChampionFlexMetrics {
		m := &a.ChampionFlexMetrics[i]
		idx.flex[m.ChampionKey] = m
	}
	for i := range a.SynergyMatrix {
		s := &a.SynergyMatrix[i]
		idx.synergy[newPairKey(s.ChampionA, s.ChampionB)] = s
	}
	for i := range a.CounterMatrix {
		c := &a.CounterMatrix[i]
		idx.counter[counterKey{Role: c.Role, Champion: c.Champion, Opponent: c.Opponent}] = c
		crKey := championRoleKey{Champion: c.Champion, Role: c.Role}
		idx.countersBy[crKey] = append(idx.countersBy[crKey], c)
	}
	for i := range a.PlayerReliability {
		p := &a.PlayerReliability[i]
		idx.reliability[playerChampionKey{Player: p.Player, Champion: p.Champion, Role: p.Role}] = p
	}

	return idx
}

// Artifact returns the underlying artifact the index was built over.
func (idx *Index) Artifact() *artifact.PrecomputedDraftMetrics { return idx.artifact }

// ChampionRoleMetrics returns the metrics for (champion, role), or nil
// if absent — callers treat absence as "no information."
func (idx *Index) ChampionRoleMetrics(champion string, r role.Role) *metrics.ChampionRoleMetrics {
	return idx.championRole[championRoleKey{Champion: champion, Role: r}]
}

// FlexMetrics returns the flex-propensity record for champion, or nil.
func (idx *Index) FlexMetrics(champion string) *metrics.ChampionFlexMetrics {
	return idx.flex[champion]
}

// SynergyScore returns the synergy entry for the unordered pair (a,b),
// or nil if the pair was never observed together.
func (idx *Index) SynergyScore(a, b string) *metrics.SynergyEntry {
	return idx.synergy[newPairKey(a, b)]
}

// CounterEntry returns the head-to-head entry for (role, champion,
// opponent), or nil if they were never observed opposing each other.
func (idx *Index) CounterEntry(r role.Role, champion, opponent string) *metrics.CounterEntry {
	return idx.counter[counterKey{Role: r, Champion: champion, Opponent: opponent}]
}

// PlayerChampionReliability returns the player's track record on
// (champion, role), or nil if the player never played it in-sample.
func (idx *Index) PlayerChampionReliability(player, champion string, r role.Role) *metrics.PlayerReliability {
	return idx.reliability[playerChampionKey{Player: player, Champion: champion, Role: r}]
}

// Champions returns every champion with at least one champion-role
// snapshot, in no particular order.
func (idx *Index) Champions() []string { return idx.champions }

// ChampionRoleMetricsForRole returns every champion-role snapshot for
// role r, used to build the candidate population for z-scoring and
// pair-boost bucketing.
func (idx *Index) ChampionRoleMetricsForRole(r role.Role) []*metrics.ChampionRoleMetrics {
	return idx.byRole[r]
}

// CountersForChampionRole returns every counter entry recorded for a
// champion in role r (one per opponent faced), used by the ban
// recommendation pass.
func (idx *Index) CountersForChampionRole(champion string, r role.Role) []*metrics.CounterEntry {
	return idx.countersBy[championRoleKey{Champion: champion, Role: r}]
}
