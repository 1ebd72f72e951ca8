package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sort"

	"github.com/kihw/draftlens/internal/draft"
)

// SuggestionKey builds a deterministic cache key for a ranker call,
// scoped by the artifact patch. Two artifacts of the same patch share
// keys; the server drops every suggestion key when it loads a new
// artifact.
func SuggestionKey(patch, stage string, team, enemy []draft.Assignment) string {
	h := sha256.New()
	fmt.Fprintf(h, "patch=%s;stage=%s;", patch, stage)
	writeAssignments(h, "team", team)
	writeAssignments(h, "enemy", enemy)
	return "draftlens:suggest:" + hex.EncodeToString(h.Sum(nil))
}

func writeAssignments(h io.Writer, label string, as []draft.Assignment) {
	sorted := append([]draft.Assignment(nil), as...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Role < sorted[j].Role })
	fmt.Fprintf(h, "%s=", label)
	for _, a := range sorted {
		fmt.Fprintf(h, "%d:%s,", a.Role, a.Champion)
	}
}
