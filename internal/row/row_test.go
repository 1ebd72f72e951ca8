package row

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvHeader = "gameid,patch,side,position,champion,result,gamelength,playername,teamname,pick1,pick2,pick3,pick4,pick5"

func TestParseEmptyInputIsFatal(t *testing.T) {
	_, _, err := Parse(strings.NewReader(""), "15.20")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestParseMissingRequiredHeaderIsFatal(t *testing.T) {
	_, _, err := Parse(strings.NewReader("gameid,patch\nG1,15.20\n"), "15.20")
	assert.Error(t, err)
}

// TestParseFiltersByPatch covers the patch-filter behaviour: a row on a
// different patch than requested is silently dropped, not an error.
func TestParseFiltersByPatch(t *testing.T) {
	csv := csvHeader + "\n" +
		"G1,15.19,Blue,mid,Azir,1,1800,playerA,TeamA,,,,,\n" +
		"G1,15.20,Blue,mid,Ahri,1,1800,playerB,TeamA,,,,,\n"

	players, _, err := Parse(strings.NewReader(csv), "15.20")
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Ahri", players[0].Champion)
}

func TestParseSkipsRowMissingGameID(t *testing.T) {
	csv := csvHeader + "\n" +
		",15.20,Blue,mid,Ahri,1,1800,playerB,TeamA,,,,,\n"

	players, _, err := Parse(strings.NewReader(csv), "15.20")
	require.NoError(t, err)
	assert.Empty(t, players)
}

func TestParseSkipsRowWithNonPositiveDuration(t *testing.T) {
	csv := csvHeader + "\n" +
		"G1,15.20,Blue,mid,Ahri,1,0,playerB,TeamA,,,,,\n"

	players, _, err := Parse(strings.NewReader(csv), "15.20")
	require.NoError(t, err)
	assert.Empty(t, players)
}

func TestParseDispatchesTeamRows(t *testing.T) {
	csv := csvHeader + "\n" +
		"G1,15.20,Blue,team,,1,1800,,TeamA,Ahri,Lee Sin,Azir,Jinx,Thresh\n"

	players, teams, err := Parse(strings.NewReader(csv), "15.20")
	require.NoError(t, err)
	assert.Empty(t, players)
	require.Len(t, teams, 1)
	assert.Equal(t, []string{"Ahri", "Lee Sin", "Azir", "Jinx", "Thresh"}, teams[0].Picks)
	assert.True(t, teams[0].Win)
}

func TestParsePlayerRowNormalisesRoleAliases(t *testing.T) {
	csv := csvHeader + "\n" +
		"G1,15.20,Blue,adc,Jinx,1,1800,playerB,TeamA,,,,,\n"

	players, _, err := Parse(strings.NewReader(csv), "15.20")
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "bot", players[0].Role.String())
}

func TestParseUnknownRoleIsSkipped(t *testing.T) {
	csv := csvHeader + "\n" +
		"G1,15.20,Blue,coach,Jinx,1,1800,playerB,TeamA,,,,,\n"

	players, _, err := Parse(strings.NewReader(csv), "15.20")
	require.NoError(t, err)
	assert.Empty(t, players)
}
