// Package aggregate implements the single-pass (plus one deterministic
// post-pass for opponent attachment) accumulation step of the
// precompute pipeline: it turns a stream of parsed rows into the set
// of mutable accumulators the metric compiler will later z-score.
//
// The aggregator is the sole owner of its accumulators. Nothing here
// is safe for concurrent mutation from multiple goroutines; sharding
// (if wanted) happens by running independent Aggregators over row
// subsets and merging their accumulators element-wise, since every
// field here is a plain sum, count, or histogram.
package aggregate

import (
	"math"

	"github.com/kihw/draftlens/internal/role"
	"github.com/kihw/draftlens/internal/row"
)

// laneWeights are the fixed (gold, xp, cs, killDiff) weights used to
// combine the four lane-diff components into a single composite,
// both for the lane-15 specific moments and for the general per-time
// lane composite used in scaling rates.
var laneWeights = [4]float64{1.0, 0.7, 0.5, 0.3}

// Aggregator accumulates rows into the precompute pipeline's
// intermediate statistics.
type Aggregator struct {
	championRole map[ChampionRoleKey]*ChampionRoleAccumulator
	flex         map[string]*ChampionFlexAccumulator
	counter      map[CounterKey]*CounterAccumulator
	player       map[PlayerChampionKey]*PlayerChampionAccumulator
	solo         map[string]*SoloSynergyAccumulator
	pair         map[PairKey]*PairSynergyAccumulator
	roleTotals   [role.NumRoles]RoleTotals

	totalTeamEntries int

	// playerRows is retained until Finalize performs opponent
	// attachment, which needs the full (gameId, role) grouping.
	playerRows []row.PlayerRow
}

// New creates an empty Aggregator.
func New() *Aggregator {
	return &Aggregator{
		championRole: make(map[ChampionRoleKey]*ChampionRoleAccumulator),
		flex:         make(map[string]*ChampionFlexAccumulator),
		counter:      make(map[CounterKey]*CounterAccumulator),
		player:       make(map[PlayerChampionKey]*PlayerChampionAccumulator),
		solo:         make(map[string]*SoloSynergyAccumulator),
		pair:         make(map[PairKey]*PairSynergyAccumulator),
	}
}

// laneComposite computes the per-row weighted composite of whichever
// of (gold, xp, cs, killDiff) are defined in slot, normalising by the
// sum of the weights actually used. ok is false when no component is
// defined at all.
func laneComposite(slot row.TimeSlot) (composite float64, ok bool) {
	components := [4]row.Opt{slot.Gold, slot.XP, slot.CS, slot.KillDiff}
	var wSum, wdSum float64
	for i, c := range components {
		if !c.Ok {
			continue
		}
		wSum += laneWeights[i]
		wdSum += laneWeights[i] * c.V
		ok = true
	}
	if !ok {
		return 0, false
	}
	return wdSum / wSum, true
}

// AddPlayerRow folds one player row into the champion-role, flex, and
// player accumulators, and retains the row for the later opponent
// attachment pass.
func (a *Aggregator) AddPlayerRow(pr row.PlayerRow) {
	crKey := ChampionRoleKey{Champion: pr.Champion, Role: pr.Role}
	cr, ok := a.championRole[crKey]
	if !ok {
		cr = newChampionRoleAccumulator()
		a.championRole[crKey] = cr
	}

	cr.Games++
	if pr.Win {
		cr.Wins++
	}
	cr.MinutesSum += pr.Minutes
	cr.PlatesSum += pr.TurretPlates
	if pr.FirstTower {
		cr.FirstTowerCount++
	}
	if pr.FirstMidTower {
		cr.FirstMidTowerCount++
	}
	if pr.FirstToThreeTowers {
		cr.FirstToThreeCount++
	}
	cr.HeraldsDeltaSum += pr.HeraldsDelta
	cr.GrubsDeltaSum += pr.GrubsDelta
	cr.DragonsDeltaSum += pr.DragonsDelta
	cr.BaronsDeltaSum += pr.BaronsDelta
	cr.AtakhansDeltaSum += pr.AtakhansDelta

	cr.DamagePMWeightedSum += pr.DPM * pr.Minutes
	cr.DamageTakenPMWeightedSum += pr.DamageTakenPM * pr.Minutes
	cr.DamageMitigatedPMWeightedSum += pr.DamageMitigatedPM * pr.Minutes
	cr.VisionPMWeightedSum += pr.VisionPM * pr.Minutes

	cr.KillsSum += pr.Kills
	cr.DeathsSum += pr.Deaths
	cr.AssistsSum += pr.Assists
	cr.TeamKillsSum += pr.TeamKills

	for i, slot := range pr.TimeSlots {
		composite, ok := laneComposite(slot)
		if !ok {
			continue
		}
		cr.LaneSum[i] += composite
		cr.LaneCount[i]++
		if i == lane15Index {
			cr.Lane15Sum += composite
			cr.Lane15SumSq += composite * composite
			cr.Lane15Count++
			pr.LaneComposite15 = row.Opt{V: composite, Ok: true}
		}
	}

	flex, ok := a.flex[pr.Champion]
	if !ok {
		flex = &ChampionFlexAccumulator{}
		a.flex[pr.Champion] = flex
	}
	flex.TotalGames++
	flex.RoleGames[pr.Role]++

	pKey := PlayerChampionKey{Player: pr.Player, Champion: pr.Champion, Role: pr.Role}
	pacc, ok := a.player[pKey]
	if !ok {
		pacc = &PlayerChampionAccumulator{}
		a.player[pKey] = pacc
	}
	pacc.Games++
	if pr.Win {
		pacc.Wins++
	}
	pacc.MinutesSum += pr.Minutes
	if pr.LaneComposite15.Ok {
		pacc.Lane15Sum += pr.LaneComposite15.V
		pacc.Lane15SumSq += pr.LaneComposite15.V * pr.LaneComposite15.V
		pacc.Lane15Count++
	}

	rt := &a.roleTotals[pr.Role]
	rt.Games++
	if pr.Win {
		rt.Wins++
	}

	a.playerRows = append(a.playerRows, pr)
}

// lane15Index is the index of the 15-minute mark within the four
// time slots (10, 15, 20, 25).
const lane15Index = 1

// AddTeamRow folds one team row's de-duplicated pick set into the
// solo and pairwise synergy accumulators.
func (a *Aggregator) AddTeamRow(tr row.TeamRow) {
	picks := dedupSorted(tr.Picks)
	if len(picks) == 0 {
		return
	}

	a.totalTeamEntries++

	for _, c := range picks {
		s, ok := a.solo[c]
		if !ok {
			s = &SoloSynergyAccumulator{}
			a.solo[c] = s
		}
		s.Games++
		if tr.Win {
			s.Wins++
		}
	}

	for i := 0; i < len(picks); i++ {
		for j := i + 1; j < len(picks); j++ {
			key := NewPairKey(picks[i], picks[j])
			p, ok := a.pair[key]
			if !ok {
				p = &PairSynergyAccumulator{}
				a.pair[key] = p
			}
			p.Games++
			if tr.Win {
				p.Wins++
			}
		}
	}
}

// Finalize performs the opponent-attachment pass: it groups all
// retained player rows by (gameId, role), and for each game/role with
// exactly one Blue and one Red row, records the counter sample and
// opponent-histogram entry in both directions. Must be called once,
// after every row has been added via AddPlayerRow.
func (a *Aggregator) Finalize() {
	groups := make(map[gameRoleKey][]int, len(a.playerRows))
	for i, pr := range a.playerRows {
		key := gameRoleKey{GameID: pr.GameID, Role: pr.Role}
		groups[key] = append(groups[key], i)
	}

	for _, idxs := range groups {
		if len(idxs) != 2 {
			continue
		}
		first, second := &a.playerRows[idxs[0]], &a.playerRows[idxs[1]]
		blue, red := orderBlueRed(first, second)
		if blue == nil || red == nil {
			continue
		}

		blue.OpponentChampion = red.Champion
		red.OpponentChampion = blue.Champion

		a.addCounterSample(blue, red)
		a.addCounterSample(red, blue)
	}
}

func orderBlueRed(a, b *row.PlayerRow) (blue, red *row.PlayerRow) {
	switch {
	case a.Side == "Blue" && b.Side == "Red":
		return a, b
	case a.Side == "Red" && b.Side == "Blue":
		return b, a
	default:
		return nil, nil
	}
}

// addCounterSample updates self's counter entry against opp, and
// self's champion-role opponents histogram. Called once per direction
// for every attached pair, so the whole head-to-head is captured
// symmetrically.
func (a *Aggregator) addCounterSample(self, opp *row.PlayerRow) {
	key := CounterKey{Role: self.Role, Champion: self.Champion, Opponent: opp.Champion}
	c, ok := a.counter[key]
	if !ok {
		c = &CounterAccumulator{}
		a.counter[key] = c
	}
	c.Games++
	if self.Win {
		c.Wins++
	}
	if self.LaneComposite15.Ok {
		c.LaneSum += self.LaneComposite15.V
		c.LaneSumSq += self.LaneComposite15.V * self.LaneComposite15.V
		c.LaneCount++
	}

	kp := (self.KillsAt15 + self.AssistsAt15) / math.Max(float64(self.TeamKills), 1)
	c.KPSum += kp
	c.KPSumSq += kp * kp
	c.KPCount++

	crKey := ChampionRoleKey{Champion: self.Champion, Role: self.Role}
	if cr, ok := a.championRole[crKey]; ok {
		cr.Opponents[opp.Champion]++
	}
}

// ChampionRoles returns the accumulated champion-role map. Owned by
// the aggregator; callers must not mutate it.
func (a *Aggregator) ChampionRoles() map[ChampionRoleKey]*ChampionRoleAccumulator { return a.championRole }

// Flex returns the accumulated per-champion flex map.
func (a *Aggregator) Flex() map[string]*ChampionFlexAccumulator { return a.flex }

// Counters returns the accumulated counter map.
func (a *Aggregator) Counters() map[CounterKey]*CounterAccumulator { return a.counter }

// Players returns the accumulated player-champion map.
func (a *Aggregator) Players() map[PlayerChampionKey]*PlayerChampionAccumulator { return a.player }

// Solo returns the accumulated solo-synergy map.
func (a *Aggregator) Solo() map[string]*SoloSynergyAccumulator { return a.solo }

// Pairs returns the accumulated pairwise-synergy map.
func (a *Aggregator) Pairs() map[PairKey]*PairSynergyAccumulator { return a.pair }

// RoleTotals returns the per-role games/wins totals, indexed by role id.
func (a *Aggregator) RoleTotals() [role.NumRoles]RoleTotals { return a.roleTotals }

// TotalTeamEntries returns the number of team rows folded in (after
// pick de-duplication), the denominator for synergy co-occurrence
// probabilities.
func (a *Aggregator) TotalTeamEntries() int { return a.totalTeamEntries }
