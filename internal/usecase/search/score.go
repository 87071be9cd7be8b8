package search

import (
	"sort"
	"strings"

	"specbot/internal/domain/search/candidate"
)

// Ranking weights. Title keyword hits dominate, the whole query appearing in
// a title dominates harder, and earlier strategies break the remaining ties.
const (
	keywordInTitleScore = 10
	queryInTitleScore   = 20
)

// scorer ranks deduplicated candidates for one run.
type scorer struct {
	query    string   // lowercased raw query
	keywords []string // lowercased discriminative keywords
}

// newScorer builds a scorer. keywords should already exclude context terms
// (機能, 仕様書, …) — they narrow queries but say nothing about which title
// is the better answer.
func newScorer(query string, keywords []string) *scorer {
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}
	return &scorer{query: strings.ToLower(query), keywords: lowered}
}

// rank assigns a relevance score to every candidate and orders them best
// first. The sort is stable: ties keep strategy order, then API order.
func (s *scorer) rank(cands []candidate.Candidate) []candidate.Candidate {
	scored := make([]candidate.Candidate, len(cands))
	for i := range cands {
		scored[i] = cands[i].Scored(s.score(&cands[i]))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score() > scored[j].Score()
	})
	return scored
}

func (s *scorer) score(c *candidate.Candidate) int {
	title := strings.ToLower(c.Title())

	score := 0
	for _, kw := range s.keywords {
		if strings.Contains(title, kw) {
			score += keywordInTitleScore
		}
	}
	if strings.Contains(title, s.query) {
		score += queryInTitleScore
	}
	return score + c.Strategy().Bonus()
}
