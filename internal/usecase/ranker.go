package usecase

import (
	"sort"

	"github.com/nutriscan/backend/internal/domain"
)

// DefaultMaxAlternatives bounds the ranked alternative list.
const DefaultMaxAlternatives = 15

// Rank sorts candidates best-first and truncates to maxResults. The sort is
// stable: candidates equal on all three keys keep their arrival order, which
// makes which duplicate-quality candidate surfaces deterministic within a
// run even though arrival order comes from concurrent fetches.
func Rank(candidates []domain.CandidateScore, maxResults int) []domain.CandidateScore {
	ranked := make([]domain.CandidateScore, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		return betterCandidate(ranked[i], ranked[j])
	})

	if maxResults > 0 && len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}
	return ranked
}

// betterCandidate orders by: strictly-better flag, then fewer failed checks,
// then complete nutrient data.
func betterCandidate(a, b domain.CandidateScore) bool {
	if a.IsStrictlyBetter != b.IsStrictlyBetter {
		return a.IsStrictlyBetter
	}
	if a.FailureCount != b.FailureCount {
		return a.FailureCount < b.FailureCount
	}
	if a.HasCompleteData != b.HasCompleteData {
		return a.HasCompleteData
	}
	return false
}
