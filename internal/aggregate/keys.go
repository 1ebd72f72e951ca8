package aggregate

import (
	"sort"
	"strings"

	"github.com/kihw/draftlens/internal/role"
)

// ChampionRoleKey identifies a (champion, role) accumulator.
type ChampionRoleKey struct {
	Champion string
	Role     role.Role
}

// CounterKey identifies a (role, champion, opponent) accumulator.
type CounterKey struct {
	Role     role.Role
	Champion string
	Opponent string
}

// PlayerChampionKey identifies a (player, champion, role) accumulator.
type PlayerChampionKey struct {
	Player   string
	Champion string
	Role     role.Role
}

// PairKey identifies an unordered champion pair, always normalised so
// A < B lexicographically — synergy is symmetric, so the pair (X, Y)
// and (Y, X) must accumulate into the same bucket.
type PairKey struct {
	A, B string
}

// NewPairKey builds a PairKey from two champions in whichever order,
// normalising so the result satisfies A < B.
func NewPairKey(x, y string) PairKey {
	if x < y {
		return PairKey{A: x, B: y}
	}
	return PairKey{A: y, B: x}
}

// dedupSorted returns the distinct champions in picks, sorted for
// deterministic pair iteration (ordering doesn't affect the resulting
// sums, only the iteration order — sorting just makes tests
// reproducible).
func dedupSorted(picks []string) []string {
	seen := make(map[string]struct{}, len(picks))
	out := make([]string, 0, len(picks))
	for _, p := range picks {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

type gameRoleKey struct {
	GameID string
	Role   role.Role
}
