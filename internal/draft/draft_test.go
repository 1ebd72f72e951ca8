package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kihw/draftlens/internal/artifact"
	"github.com/kihw/draftlens/internal/metrics"
	"github.com/kihw/draftlens/internal/role"
)

func newTestArtifact() *artifact.PrecomputedDraftMetrics {
	return &artifact.PrecomputedDraftMetrics{
		Patch:              "15.20",
		RoleWinrate:        map[string]float64{},
		RoleGames:          map[string]int{},
		CounterRoleWeights: artifact.DefaultRoleWeightMatrix(),
		SynergyRoleWeights: artifact.DefaultRoleWeightMatrix(),
		ChampionRoleMetrics: []metrics.ChampionRoleMetrics{
			{ChampionKey: "Ahri", Role: role.Mid, Games: 100, Wins: 55, Intrinsic: 0.4},
		},
		PlayerReliability: []metrics.PlayerReliability{
			{Player: "Faker", Champion: "Ahri", Role: role.Mid, Games: 200, Wins: 130, WinrateAdj: 0.62},
		},
	}
}

// TestEvaluateUsesPlayerAssignmentsFallback covers the playerAssignments
// fallback: when an Assignment's own Player field is empty, the
// provided map for that role must still be consulted so a known
// player's track record (not the population-wide reliability weight)
// drives the pick's reliability score.
func TestEvaluateUsesPlayerAssignmentsFallback(t *testing.T) {
	e := NewEngine(newTestArtifact())

	team := []Assignment{{Role: role.Mid, Champion: "Ahri"}}
	players := map[role.Role]string{role.Mid: "Faker"}

	eval := e.Evaluate(team, nil, players)

	require.Len(t, eval.Picks, 1)
	assert.Equal(t, 0.62, eval.Picks[0].Reliability, "the player-specific reliability must win over the population-wide weight")
}

// TestEvaluateWithoutPlayerUsesPopulationReliability covers the
// no-player path: absent both Assignment.Player and a map entry, the
// pick falls back to the Wilson-based population reliability weight.
func TestEvaluateWithoutPlayerUsesPopulationReliability(t *testing.T) {
	e := NewEngine(newTestArtifact())

	team := []Assignment{{Role: role.Mid, Champion: "Ahri"}}

	eval := e.Evaluate(team, nil, nil)

	require.Len(t, eval.Picks, 1)
	assert.NotEqual(t, 0.62, eval.Picks[0].Reliability)
	assert.Greater(t, eval.Picks[0].Reliability, 0.0)
	assert.Less(t, eval.Picks[0].Reliability, 1.0)
}

// TestEvaluateAssignmentPlayerTakesPrecedenceOverMap covers the case
// where Assignment.Player is already set: the playerAssignments map
// must not override it.
func TestEvaluateAssignmentPlayerTakesPrecedenceOverMap(t *testing.T) {
	e := NewEngine(newTestArtifact())

	team := []Assignment{{Role: role.Mid, Champion: "Ahri", Player: "Faker"}}
	players := map[role.Role]string{role.Mid: "SomeoneElse"}

	eval := e.Evaluate(team, nil, players)

	require.Len(t, eval.Picks, 1)
	assert.Equal(t, 0.62, eval.Picks[0].Reliability)
}
