// Package artifact defines PrecomputedDraftMetrics, the immutable
// data product the precompute pipeline emits and every query-time
// package (index, draft, suggest) consumes by reference.
package artifact

import (
	"encoding/json"
	"io"

	"github.com/kihw/draftlens/internal/metrics"
	"github.com/kihw/draftlens/internal/role"
)

// RoleWeightMatrix is a 5x5 table, one row per acting role, giving
// the weight that role's matchups or duos with each other role
// contribute. Rows are row-normalised to sum to 1 before use (see
// Normalized).
type RoleWeightMatrix [role.NumRoles][role.NumRoles]float64

// DefaultRoleWeightMatrix returns a matrix where every role weighs
// every other role's interactions equally. The counter and synergy
// matrices ship with identical defaults; they are separate artifact
// fields, so a decoded artifact may carry different ones.
func DefaultRoleWeightMatrix() RoleWeightMatrix {
	var m RoleWeightMatrix
	for i := range m {
		for j := range m[i] {
			if i == j {
				continue
			}
			m[i][j] = 1
		}
	}
	return m
}

// Normalized returns the row-normalised form of m: each row's weights
// sum to 1, or is all-zero if the row summed to 0.
func (m RoleWeightMatrix) Normalized() RoleWeightMatrix {
	var out RoleWeightMatrix
	for i := range m {
		var sum float64
		for _, w := range m[i] {
			sum += w
		}
		if sum <= 0 {
			continue
		}
		for j, w := range m[i] {
			out[i][j] = w / sum
		}
	}
	return out
}

// Weight returns the row-normalised weight acting role `from`
// assigns to interactions with role `to`.
func (m RoleWeightMatrix) Weight(from, to role.Role) float64 {
	return m.Normalized()[from][to]
}

// PrecomputedDraftMetrics is the precompute pipeline's single output:
// a self-contained, immutable snapshot of every derived statistic a
// query-time draft evaluation needs. Once built it is never mutated;
// concurrent readers share it without locking.
type PrecomputedDraftMetrics struct {
	Patch       string `json:"patch"`
	GeneratedAt string `json:"generatedAt"`
	SampleSize  int    `json:"sampleSize"`

	RoleWinrate map[string]float64 `json:"roleWinrate"`
	RoleGames   map[string]int     `json:"roleGames"`

	ChampionRoleMetrics []metrics.ChampionRoleMetrics `json:"championRoleMetrics"`
	ChampionFlexMetrics []metrics.ChampionFlexMetrics `json:"championFlexMetrics"`
	SynergyMatrix       []metrics.SynergyEntry        `json:"synergyMatrix"`
	CounterMatrix       []metrics.CounterEntry         `json:"counterMatrix"`
	PlayerReliability   []metrics.PlayerReliability    `json:"playerReliability"`

	CounterRoleWeights RoleWeightMatrix `json:"counterRoleWeights"`
	SynergyRoleWeights RoleWeightMatrix `json:"synergyRoleWeights"`

	Priors  metrics.Priors  `json:"priors"`
	Weights metrics.Weights `json:"weights"`
}

// Build assembles the artifact from a compiled metrics.Result plus
// the run's patch/priors/weights/timestamp, freezing the default
// role-weight matrices.
func Build(patch, generatedAt string, sampleSize int, result metrics.Result, priors metrics.Priors, weights metrics.Weights) PrecomputedDraftMetrics {
	roleWinrate := make(map[string]float64, role.NumRoles)
	roleGames := make(map[string]int, role.NumRoles)
	for _, rs := range result.RoleSummaries {
		roleWinrate[rs.Role.String()] = rs.Winrate
		roleGames[rs.Role.String()] = rs.Games
	}

	return PrecomputedDraftMetrics{
		Patch:               patch,
		GeneratedAt:         generatedAt,
		SampleSize:          sampleSize,
		RoleWinrate:         roleWinrate,
		RoleGames:           roleGames,
		ChampionRoleMetrics: result.ChampionRoleMetrics,
		ChampionFlexMetrics: result.ChampionFlexMetrics,
		SynergyMatrix:       result.SynergyMatrix,
		CounterMatrix:       result.CounterMatrix,
		PlayerReliability:   result.PlayerReliability,
		CounterRoleWeights:  DefaultRoleWeightMatrix(),
		SynergyRoleWeights:  DefaultRoleWeightMatrix(),
		Priors:              priors,
		Weights:             weights,
	}
}

// Encode writes the artifact as pretty-printed (2-space indent) UTF-8
// JSON, preserving the insertion order already established by the
// compiler's sort passes.
func (a PrecomputedDraftMetrics) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(a)
}

// Decode reads a previously-encoded artifact back.
func Decode(r io.Reader) (PrecomputedDraftMetrics, error) {
	var a PrecomputedDraftMetrics
	dec := json.NewDecoder(r)
	err := dec.Decode(&a)
	return a, err
}
