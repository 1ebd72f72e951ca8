package suggest

import (
	"sort"

	"github.com/kihw/draftlens/internal/draft"
	"github.com/kihw/draftlens/internal/index"
	"github.com/kihw/draftlens/internal/metrics"
	"github.com/kihw/draftlens/internal/role"
)

// applyStageScoring computes each candidate's blended stage score
// from its raw features. The Universal term (R4 only) is added
// alongside the usual synergy/counter terms, not in place of them.
func applyStageScoring(cands []*candidate, w StageWeights) {
	for _, c := range cands {
		s := &c.sugg.Scores
		score := w.Synergy*c.synergyAverage +
			w.Counter*c.counterAverage +
			w.Flex*c.flexScore +
			w.PickRate*c.pickRateZ +
			w.Intrinsic*c.intrinsic +
			w.Reliability*c.reliability +
			w.Exposure*c.exposure +
			w.Blind*c.blind +
			w.Deny*c.enemySynergyAverage

		if w.Universal != 0 {
			score += w.Universal * (c.synergyAverage - c.exposure)
		}

		s.Global = score
	}
}

// applyPairBoost buckets candidates by role, and for stages with
// PairWeights configured, finds each candidate's best partner among
// the top-15-by-pickRateZ candidates of every other unassigned role,
// adding the resulting pair score to the candidate's global score.
func applyPairBoost(cands []*candidate, pw *PairWeights, idx *index.Index) {
	byRole := make(map[role.Role][]*candidate)
	for _, c := range cands {
		byRole[c.sugg.Role] = append(byRole[c.sugg.Role], c)
	}
	for r, bucket := range byRole {
		bucket := bucket
		sort.SliceStable(bucket, func(i, j int) bool { return bucket[i].pickRateZ > bucket[j].pickRateZ })
		byRole[r] = bucket
	}

	for _, c := range cands {
		var best *candidate
		var bestScore float64
		for otherRole, bucket := range byRole {
			if otherRole == c.sugg.Role {
				continue
			}
			limit := len(bucket)
			if limit > 15 {
				limit = 15
			}
			for _, partner := range bucket[:limit] {
				score := pairScore(idx, pw, c, partner)
				if best == nil || score > bestScore {
					best = partner
					bestScore = score
				}
			}
		}
		if best != nil && bestScore > 0 {
			c.sugg.PairBoost = &PairBoost{
				PartnerRole:     best.sugg.Role,
				PartnerChampion: best.sugg.Champion,
				Score:           bestScore,
			}
			c.sugg.Scores.Global += bestScore
		}
	}
}

func pairScore(idx *index.Index, pw *PairWeights, a, b *candidate) float64 {
	pickRateSum := a.pickRateZ + b.pickRateZ
	flexSum := a.flexScore + b.flexScore
	intrinsicSum := a.intrinsic + b.intrinsic
	counterSum := a.counterAverage + b.counterAverage

	var synergy float64
	if entry := idx.SynergyScore(a.sugg.Champion, b.sugg.Champion); entry != nil {
		synergy = synergyValue(entry)
	}

	return pw.PickRateSum*pickRateSum + pw.Synergy*synergy + pw.FlexSum*flexSum + pw.IntrinsicSum*intrinsicSum + pw.CounterSum*counterSum
}

// attachReasons attaches the human-readable explanations that cross a
// fixed set of score thresholds, so the UI can surface why a candidate
// was ranked where it was without re-deriving the scoring math.
func attachReasons(cands []*candidate, stage Stage) {
	for _, c := range cands {
		var reasons []Reason
		s := c.sugg.Scores

		switch {
		case s.Synergy >= 0.4:
			reasons = append(reasons, Reason{Category: ReasonSynergy, Polarity: Positive, Label: "Forte synergie avec l'equipe", Value: s.Synergy})
		case s.Synergy <= -0.3:
			reasons = append(reasons, Reason{Category: ReasonSynergy, Polarity: Negative, Label: "Faible synergie avec l'equipe", Value: s.Synergy})
		}

		switch {
		case s.Counter >= 0.4:
			reasons = append(reasons, Reason{Category: ReasonCounter, Polarity: Positive, Label: "Avantage de matchup favorable", Value: s.Counter})
		case s.Counter <= -0.3:
			reasons = append(reasons, Reason{Category: ReasonCounter, Polarity: Negative, Label: "Matchup defavorable", Value: s.Counter})
		}

		switch {
		case s.PickRate >= 1:
			reasons = append(reasons, Reason{Category: ReasonMeta, Polarity: Positive, Label: "Pick meta", Value: s.PickRate})
		case s.PickRate <= -1:
			reasons = append(reasons, Reason{Category: ReasonMeta, Polarity: Info, Label: "Surprise pick", Value: s.PickRate})
		}

		switch {
		case s.Reliability >= 0.6:
			reasons = append(reasons, Reason{Category: ReasonReliability, Polarity: Positive, Label: "Echantillon fiable", Value: s.Reliability})
		case s.Reliability <= 0.3:
			reasons = append(reasons, Reason{Category: ReasonReliability, Polarity: Negative, Label: "Echantillon limite", Value: s.Reliability})
		}

		if s.Exposure >= 0.6 {
			reasons = append(reasons, Reason{Category: ReasonRisk, Polarity: Negative, Label: "Exposition aux counters elevee", Value: s.Exposure})
		}

		if stage == StageB1 && s.Deny == c.enemySynergyAverage && c.enemySynergyAverage >= 0.3 {
			reasons = append(reasons, Reason{Category: ReasonRisk, Polarity: Info, Label: "Deny potentiel", Value: c.enemySynergyAverage})
		}

		if (stage == StageR1R2 || stage == StageB2B3) && c.sugg.PairBoost != nil {
			reasons = append(reasons, Reason{
				Category: ReasonSynergy,
				Polarity: Positive,
				Label:    "Bonne paire avec " + c.sugg.PairBoost.PartnerChampion,
				Value:    c.sugg.PairBoost.Score,
			})
		}

		c.sugg.Reasons = reasons
	}
}

// attachProReferences surfaces up to 3 synergy and 3 matchup
// references per candidate from the richer reference dataset,
// preferring samples involving present team/enemy members, a minimum
// of 5 games, and the priority duo-role table for synergies.
func attachProReferences(cands []*candidate, refs ReferenceDataset, team, enemy []draft.Assignment) {
	if refs == nil {
		return
	}

	present := make(map[string]bool, len(team)+len(enemy))
	for _, a := range team {
		present[a.Champion] = true
	}
	for _, a := range enemy {
		present[a.Champion] = true
	}

	synergyRefs := refs.SynergyReferences()
	matchupRefs := refs.MatchupReferences()

	for _, c := range cands {
		champ := c.sugg.Champion

		var synCandidates []SynergyReference
		for _, s := range synergyRefs {
			if s.Samples < 5 {
				continue
			}
			if s.ChampionA != champ && s.ChampionB != champ {
				continue
			}
			synCandidates = append(synCandidates, s)
		}
		sort.SliceStable(synCandidates, func(i, j int) bool {
			pi := synergyPriority(synCandidates[i], champ, present)
			pj := synergyPriority(synCandidates[j], champ, present)
			if pi != pj {
				return pi > pj
			}
			return synCandidates[i].Winrate > synCandidates[j].Winrate
		})
		for i := 0; i < len(synCandidates) && i < 3; i++ {
			s := synCandidates[i]
			other := s.ChampionA
			if other == champ {
				other = s.ChampionB
			}
			c.sugg.ProReferences = append(c.sugg.ProReferences, ProReference{
				Kind: "synergy", ChampionA: champ, ChampionB: other, Samples: s.Samples, Winrate: s.Winrate,
			})
		}

		var matchCandidates []MatchupReference
		for _, m := range matchupRefs {
			if m.Samples < 5 {
				continue
			}
			if m.Champion != champ && m.Opponent != champ {
				continue
			}
			matchCandidates = append(matchCandidates, m)
		}
		sort.SliceStable(matchCandidates, func(i, j int) bool {
			pi := present[matchCandidates[i].Opponent] || present[matchCandidates[i].Champion]
			pj := present[matchCandidates[j].Opponent] || present[matchCandidates[j].Champion]
			if pi != pj {
				return pi
			}
			return matchCandidates[i].Winrate > matchCandidates[j].Winrate
		})
		for i := 0; i < len(matchCandidates) && i < 3; i++ {
			m := matchCandidates[i]
			opponent := m.Opponent
			if m.Champion != champ {
				opponent = m.Champion
			}
			c.sugg.ProReferences = append(c.sugg.ProReferences, ProReference{
				Kind: "matchup", ChampionA: champ, ChampionB: opponent, Samples: m.Samples, Winrate: m.Winrate,
			})
		}
	}
}

func synergyPriority(s SynergyReference, champ string, present map[string]bool) int {
	score := 0
	other := s.ChampionA
	if other == champ {
		other = s.ChampionB
	}
	if present[other] {
		score++
	}
	if isPriorityDuo(s.RoleA, s.RoleB) {
		score++
	}
	return score
}

// attachBanRecommendations emits the two most dangerous opponents for
// each candidate's (role, champion), stage R3 only.
func attachBanRecommendations(cands []*candidate, idx *index.Index) {
	for _, c := range cands {
		entries := idx.CountersForChampionRole(c.sugg.Champion, c.sugg.Role)
		sorted := append([]*metrics.CounterEntry(nil), entries...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Score < sorted[j].Score })

		limit := 2
		if len(sorted) < limit {
			limit = len(sorted)
		}
		for i := 0; i < limit; i++ {
			e := sorted[i]
			c.sugg.BanRecommendations = append(c.sugg.BanRecommendations, BanRecommendation{
				OpponentRole:     e.Role,
				OpponentChampion: e.Opponent,
				Games:            e.Samples,
				WinrateAgainst:   1 - e.Winrate,
			})
		}
	}
}
