// Package draftresult declares the opaque oracle the suggestion
// ranker consumes for dataset-derived draft ratings. The rating
// composition itself — how winrate, duo synergy, and matchup ratings
// are actually computed from a dataset view — is a separate
// collaborator outside this module's core; only the fields the
// ranker reads are specified here.
package draftresult

import "github.com/kihw/draftlens/internal/role"

// DuoResult is one ally-pair's contribution to the team's duo rating.
type DuoResult struct {
	RoleA, RoleB         role.Role
	ChampionA, ChampionB string
	Rating               float64
	Samples              int
}

// AllyDuoRating bundles every ally pair's duo rating for a team.
type AllyDuoRating struct {
	DuoResults []DuoResult
}

// MatchupResult is one ally-vs-enemy pick's head-to-head rating.
type MatchupResult struct {
	AllyRole, EnemyRole   role.Role
	AllyChampion          string
	EnemyChampion         string
	Rating                float64
	Samples               int
}

// MatchupRating bundles every ally/enemy matchup rating.
type MatchupRating struct {
	MatchupResults []MatchupResult
}

// DraftResult is the externally-computed rating for one team
// composition: a richer, dataset-specific rating than the artifact's
// closed-form composites, produced by a separate rating pipeline this
// module treats as an opaque collaborator.
type DraftResult struct {
	Winrate       float64
	TotalRating   float64
	AllyDuoRating AllyDuoRating
	MatchupRating MatchupRating
}

// Dataset is the dataset view the Analyzer reads match history and
// reference samples from — an opaque boundary; its concrete backing
// (CSV export, database query, cached blob) lives outside the core.
type Dataset interface {
	Name() string
}

// Analyzer is the oracle the suggestion ranker queries for a team
// composition's dataset-derived rating. Implementations must be
// thread-safe: candidate evaluation in the ranker is embarrassingly
// parallel across (role, champion) pairs.
type Analyzer interface {
	AnalyzeDraft(dataset Dataset, team map[role.Role]string, enemy map[role.Role]string) (DraftResult, error)
}
