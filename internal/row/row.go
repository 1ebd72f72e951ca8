// Package row parses the flat per-player/per-team pro-play CSV export
// into typed rows, normalising role spellings and applying the patch
// filter. Rows that fail to parse for a reason the dataset is known to
// exhibit routinely (missing role, non-positive duration, missing
// gameId) are silently skipped rather than treated as errors — only an
// empty input or a header missing a required column is fatal.
package row

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kihw/draftlens/internal/role"
)

// ErrEmptyInput is returned when the CSV has no header, or no data rows
// at all. Apart from it, only an unreadable header or a missing
// required header column is fatal; every other problem degrades to a
// silently-skipped row.
var ErrEmptyInput = errors.New("row: empty CSV input")

// DefaultPatch is the patch filter applied when none is configured,
// overridable via the DRAFT_METRICS_PATCH environment variable at the
// CLI entry point or the --patch flag.
const DefaultPatch = "15.20"

// Opt is an optional float64: present values carry real data, absent
// values are the CSV's "NA"/"None"/empty-string cells.
type Opt struct {
	V  float64
	Ok bool
}

func optOf(v float64) Opt { return Opt{V: v, Ok: true} }

// TimeSlot holds the four lane-diff components recorded at one of the
// 10/15/20/25 minute marks.
type TimeSlot struct {
	Gold, XP, CS, KillDiff Opt
}

// timeMarks are the minute marks the CSV records lane state at.
var timeMarks = [4]int{10, 15, 20, 25}

// PlayerRow is one (game, player) record.
type PlayerRow struct {
	GameID   string
	Patch    string
	Side     string // "Blue" or "Red"
	Role     role.Role
	Champion string
	Player   string
	Team     string
	Opponent string

	Win        bool
	GameLength float64 // seconds
	Minutes    float64 // gamelength/60

	Kills, Deaths, Assists     int
	TeamKills, TeamDeaths      int
	TurretPlates               float64
	FirstTower                 bool
	FirstMidTower               bool
	FirstToThreeTowers          bool
	HeraldsDelta, GrubsDelta    float64
	DragonsDelta, BaronsDelta   float64
	AtakhansDelta               float64
	DPM, DamageTakenPM          float64
	DamageMitigatedPM, VisionPM float64
	KillsAt15, DeathsAt15       float64
	AssistsAt15                 float64

	TimeSlots [4]TimeSlot

	// OpponentChampion is attached post-hoc by the aggregator once rows
	// are grouped by (gameId, role); zero value until then.
	OpponentChampion string
	// LaneComposite15 is stashed by the aggregator after computing the
	// weighted lane-15 composite, for later counter-sample use.
	LaneComposite15 Opt
}

// TeamRow is one (game, side) record: the ordered multiset of 5 picks.
type TeamRow struct {
	GameID string
	Patch  string
	Side   string
	Team   string
	Win    bool
	Picks  []string
}

type header struct {
	idx map[string]int
}

func (h header) col(name string) (int, bool) {
	i, ok := h.idx[name]
	return i, ok
}

func (h header) get(rec []string, name string) string {
	i, ok := h.col(name)
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}

var requiredHeaders = []string{"gameid", "patch", "side", "position", "champion", "result", "gamelength"}

// Parse reads a full CSV document (with header) and splits it into
// player and team rows, applying the given patch filter. An empty
// document or one missing a required header column is a fatal
// ErrEmptyInput / wrapped error; every other malformed row is skipped.
func Parse(r io.Reader, patch string) ([]PlayerRow, []TeamRow, error) {
	if patch == "" {
		patch = DefaultPatch
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	headRec, err := cr.Read()
	if err == io.EOF {
		return nil, nil, ErrEmptyInput
	}
	if err != nil {
		return nil, nil, fmt.Errorf("row: reading header: %w", err)
	}

	h := header{idx: make(map[string]int, len(headRec))}
	for i, name := range headRec {
		h.idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, req := range requiredHeaders {
		if _, ok := h.col(req); !ok {
			return nil, nil, fmt.Errorf("row: missing required header column %q", req)
		}
	}

	var players []PlayerRow
	var teams []TeamRow
	sawAnyRow := false

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A malformed CSV record is treated the same as an
			// unparseable row: skipped, not fatal.
			continue
		}
		sawAnyRow = true

		if h.get(rec, "patch") != patch {
			continue
		}

		if strings.EqualFold(strings.TrimSpace(h.get(rec, "position")), "team") {
			if tr, ok := parseTeamRow(h, rec); ok {
				teams = append(teams, tr)
			}
			continue
		}

		if pr, ok := parsePlayerRow(h, rec); ok {
			players = append(players, pr)
		}
	}

	if !sawAnyRow {
		return nil, nil, ErrEmptyInput
	}

	return players, teams, nil
}

func parseTeamRow(h header, rec []string) (TeamRow, bool) {
	gameID := h.get(rec, "gameid")
	if gameID == "" {
		return TeamRow{}, false
	}

	var picks []string
	for i := 1; i <= 5; i++ {
		col := fmt.Sprintf("pick%d", i)
		if v := strings.TrimSpace(h.get(rec, col)); v != "" && !isMissing(v) {
			picks = append(picks, v)
		}
	}
	if len(picks) == 0 {
		return TeamRow{}, false
	}

	return TeamRow{
		GameID: gameID,
		Patch:  h.get(rec, "patch"),
		Side:   h.get(rec, "side"),
		Team:   h.get(rec, "teamname"),
		Win:    h.get(rec, "result") == "1",
		Picks:  picks,
	}, true
}

func parsePlayerRow(h header, rec []string) (PlayerRow, bool) {
	gameID := h.get(rec, "gameid")
	if gameID == "" {
		return PlayerRow{}, false
	}

	r, ok := role.Parse(h.get(rec, "position"))
	if !ok {
		return PlayerRow{}, false
	}

	gameLength := parseFloat(h.get(rec, "gamelength"))
	if gameLength <= 0 {
		return PlayerRow{}, false
	}

	champion := strings.TrimSpace(h.get(rec, "champion"))
	if champion == "" {
		return PlayerRow{}, false
	}

	pr := PlayerRow{
		GameID:     gameID,
		Patch:      h.get(rec, "patch"),
		Side:       h.get(rec, "side"),
		Role:       r,
		Champion:   champion,
		Player:     h.get(rec, "playername"),
		Team:       h.get(rec, "teamname"),
		Opponent:   h.get(rec, "opponent"),
		Win:        h.get(rec, "result") == "1",
		GameLength: gameLength,
		Minutes:    gameLength / 60.0,

		Kills:   int(parseFloat(h.get(rec, "kills"))),
		Deaths:  int(parseFloat(h.get(rec, "deaths"))),
		Assists: int(parseFloat(h.get(rec, "assists"))),

		TeamKills:  int(parseFloat(h.get(rec, "teamkills"))),
		TeamDeaths: int(parseFloat(h.get(rec, "teamdeaths"))),

		TurretPlates: parseFloat(h.get(rec, "turretplates")),

		FirstTower:        h.get(rec, "firsttower") == "1",
		FirstMidTower:     h.get(rec, "firstmidtower") == "1",
		FirstToThreeTowers: h.get(rec, "firsttothreetowers") == "1",

		HeraldsDelta:  parseFloat(h.get(rec, "heralds")) - parseFloat(h.get(rec, "opp_heralds")),
		GrubsDelta:    parseFloat(h.get(rec, "void_grubs")) - parseFloat(h.get(rec, "opp_void_grubs")),
		DragonsDelta:  parseFloat(h.get(rec, "dragons")) - parseFloat(h.get(rec, "opp_dragons")),
		BaronsDelta:   parseFloat(h.get(rec, "barons")) - parseFloat(h.get(rec, "opp_barons")),
		AtakhansDelta: parseFloat(h.get(rec, "atakhans")) - parseFloat(h.get(rec, "opp_atakhans")),

		DPM:               parseFloat(h.get(rec, "dpm")),
		DamageTakenPM:     parseFloat(h.get(rec, "damagetakenperminute")),
		DamageMitigatedPM: parseFloat(h.get(rec, "damagemitigatedperminute")),
		VisionPM:          parseFloat(h.get(rec, "vspm")),

		AssistsAt15: parseFloat(h.get(rec, "assistsat15")),
		KillsAt15:   parseFloat(h.get(rec, "killsat15")),
		DeathsAt15:  parseFloat(h.get(rec, "deathsat15")),
	}

	for i, t := range timeMarks {
		pr.TimeSlots[i] = buildTimeSlot(h, rec, t)
	}

	return pr, true
}

func buildTimeSlot(h header, rec []string, t int) TimeSlot {
	var slot TimeSlot

	slot.Gold = diffOrDerived(h, rec, fmt.Sprintf("golddiffat%d", t), fmt.Sprintf("goldat%d", t), fmt.Sprintf("opp_goldat%d", t))
	slot.XP = diffOrDerived(h, rec, fmt.Sprintf("xpdiffat%d", t), fmt.Sprintf("xpat%d", t), fmt.Sprintf("opp_xpat%d", t))
	slot.CS = diffOrDerived(h, rec, fmt.Sprintf("csdiffat%d", t), fmt.Sprintf("csat%d", t), fmt.Sprintf("opp_csat%d", t))

	killsCol := fmt.Sprintf("killsat%d", t)
	deathsCol := fmt.Sprintf("deathsat%d", t)
	kills, kOk := optFloat(h.get(rec, killsCol))
	deaths, dOk := optFloat(h.get(rec, deathsCol))
	if kOk && dOk {
		slot.KillDiff = optOf(kills - deaths)
	}

	return slot
}

// diffOrDerived prefers the explicit *diffat{t} column; failing that it
// derives own-minus-opponent from the paired own/opp columns. Absent
// when neither source is available.
func diffOrDerived(h header, rec []string, diffCol, ownCol, oppCol string) Opt {
	if v, ok := optFloat(h.get(rec, diffCol)); ok {
		return optOf(v)
	}
	own, ownOk := optFloat(h.get(rec, ownCol))
	opp, oppOk := optFloat(h.get(rec, oppCol))
	if ownOk && oppOk {
		return optOf(own - opp)
	}
	return Opt{}
}

func isMissing(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "na", "null", "none":
		return true
	}
	return false
}

// optFloat parses s as a float64, treating missing-value sentinels as
// absent rather than zero.
func optFloat(s string) (float64, bool) {
	if isMissing(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseFloat parses s as a float64, defaulting missing or unparseable
// cells to 0 (the "optional numerics default to 0 when missing" rule).
func parseFloat(s string) float64 {
	v, ok := optFloat(s)
	if !ok {
		return 0
	}
	return v
}
