package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kihw/draftlens/internal/role"
	"github.com/kihw/draftlens/internal/row"
)

// TestFinalizeAttachesOpponentAcrossSides covers the opponent-attachment
// pass: two rows sharing a gameId and role, on opposite sides, must
// produce one counter sample in each direction plus a matching entry in
// each side's champion-role opponents histogram.
func TestFinalizeAttachesOpponentAcrossSides(t *testing.T) {
	a := New()
	a.AddPlayerRow(row.PlayerRow{GameID: "G1", Side: "Blue", Role: role.Mid, Champion: "A", Win: true, TeamKills: 1})
	a.AddPlayerRow(row.PlayerRow{GameID: "G1", Side: "Red", Role: role.Mid, Champion: "B", Win: false, TeamKills: 1})

	a.Finalize()

	counters := a.Counters()
	ab := counters[CounterKey{Role: role.Mid, Champion: "A", Opponent: "B"}]
	require.NotNil(t, ab)
	assert.Equal(t, 1, ab.Games)
	assert.Equal(t, 1, ab.Wins)

	ba := counters[CounterKey{Role: role.Mid, Champion: "B", Opponent: "A"}]
	require.NotNil(t, ba)
	assert.Equal(t, 1, ba.Games)
	assert.Equal(t, 0, ba.Wins)

	crA := a.ChampionRoles()[ChampionRoleKey{Champion: "A", Role: role.Mid}]
	require.NotNil(t, crA)
	assert.Equal(t, 1, crA.Opponents["B"])

	crB := a.ChampionRoles()[ChampionRoleKey{Champion: "B", Role: role.Mid}]
	require.NotNil(t, crB)
	assert.Equal(t, 1, crB.Opponents["A"])
}

// TestFinalizeSkipsUnpairedRows covers a role with only one side present
// in a game (no opposing pick recorded): no counter sample should be
// produced since there's nothing to attach it against.
func TestFinalizeSkipsUnpairedRows(t *testing.T) {
	a := New()
	a.AddPlayerRow(row.PlayerRow{GameID: "G1", Side: "Blue", Role: role.Mid, Champion: "A", Win: true})

	a.Finalize()

	assert.Empty(t, a.Counters())
}

// TestFinalizeSkipsSameSideDuplicates covers two rows on the same side
// for the same (gameId, role) — a malformed export row — which must not
// be treated as a valid Blue/Red pair.
func TestFinalizeSkipsSameSideDuplicates(t *testing.T) {
	a := New()
	a.AddPlayerRow(row.PlayerRow{GameID: "G1", Side: "Blue", Role: role.Mid, Champion: "A", Win: true})
	a.AddPlayerRow(row.PlayerRow{GameID: "G1", Side: "Blue", Role: role.Mid, Champion: "C", Win: true})

	a.Finalize()

	assert.Empty(t, a.Counters())
}

func TestAddTeamRowBuildsSoloAndPairSynergy(t *testing.T) {
	a := New()
	a.AddTeamRow(row.TeamRow{GameID: "G1", Side: "Blue", Win: true, Picks: []string{"X", "Y"}})

	assert.Equal(t, 1, a.TotalTeamEntries())

	soloX := a.Solo()["X"]
	require.NotNil(t, soloX)
	assert.Equal(t, 1, soloX.Games)
	assert.Equal(t, 1, soloX.Wins)

	pair := a.Pairs()[NewPairKey("X", "Y")]
	require.NotNil(t, pair)
	assert.Equal(t, 1, pair.Games)
	assert.Equal(t, 1, pair.Wins)
}

// TestAddTeamRowDedupsRepeatedPicks covers the pick set [X,X,Y,Y,Y] used
// by the synergy boundary scenario: duplicate picks must collapse to a
// single team entry touching only the distinct champions X and Y.
func TestAddTeamRowDedupsRepeatedPicks(t *testing.T) {
	a := New()
	a.AddTeamRow(row.TeamRow{GameID: "G1", Side: "Blue", Win: true, Picks: []string{"X", "X", "Y", "Y", "Y"}})

	assert.Equal(t, 1, a.TotalTeamEntries())
	assert.Len(t, a.Solo(), 2)
	assert.Len(t, a.Pairs(), 1)

	pair := a.Pairs()[NewPairKey("X", "Y")]
	require.NotNil(t, pair)
	assert.Equal(t, 1, pair.Games)
}

func TestAddTeamRowSkipsEmptyPickSet(t *testing.T) {
	a := New()
	a.AddTeamRow(row.TeamRow{GameID: "G1", Side: "Blue", Win: true, Picks: nil})

	assert.Equal(t, 0, a.TotalTeamEntries())
}
