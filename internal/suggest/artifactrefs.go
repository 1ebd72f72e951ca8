package suggest

import "github.com/kihw/draftlens/internal/index"

// ArtifactReferences adapts an Index's own synergy/counter matrices
// into a ReferenceDataset, so pro references can be served straight
// from the precompute artifact when no richer pro-play highlight feed
// is wired in.
type ArtifactReferences struct {
	idx *index.Index
}

// NewArtifactReferences builds a ReferenceDataset backed by idx.
func NewArtifactReferences(idx *index.Index) *ArtifactReferences {
	return &ArtifactReferences{idx: idx}
}

// SynergyReferences implements ReferenceDataset.
func (r *ArtifactReferences) SynergyReferences() []SynergyReference {
	a := r.idx.Artifact()
	out := make([]SynergyReference, 0, len(a.SynergyMatrix))
	for _, s := range a.SynergyMatrix {
		out = append(out, SynergyReference{
			ChampionA: s.ChampionA,
			ChampionB: s.ChampionB,
			Samples:   s.Samples,
			Winrate:   s.Winrate,
		})
	}
	return out
}

// MatchupReferences implements ReferenceDataset.
func (r *ArtifactReferences) MatchupReferences() []MatchupReference {
	a := r.idx.Artifact()
	out := make([]MatchupReference, 0, len(a.CounterMatrix))
	for _, m := range a.CounterMatrix {
		out = append(out, MatchupReference{
			Role:     m.Role,
			Champion: m.Champion,
			Opponent: m.Opponent,
			Samples:  m.Samples,
			Winrate:  m.Winrate,
		})
	}
	return out
}
