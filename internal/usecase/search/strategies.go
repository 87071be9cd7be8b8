package search

import (
	"context"
	"fmt"
	"unicode/utf8"

	"specbot/internal/cql"
	"specbot/internal/domain/search/record"
	"specbot/internal/domain/search/strategy"
	"specbot/internal/keyword"
)

// input carries one run's normalized parameters to every strategy.
type input struct {
	query    string
	keywords []string
	space    string
}

// proposer is one search strategy. Propose returns the raw candidate records
// and every CQL string it issued, in order. An error discards the strategy's
// records; the runner logs it and moves on.
type proposer interface {
	Name() strategy.Name
	Propose(ctx context.Context, in input, limit int) ([]record.Record, []string, error)
}

// titlePriority matches the raw query against page titles, retrying with an
// AND conjunction of the keywords when the exact phrase finds nothing.
type titlePriority struct {
	client Searcher
}

func (s *titlePriority) Name() strategy.Name { return strategy.TitlePriority }

func (s *titlePriority) Propose(ctx context.Context, in input, limit int) ([]record.Record, []string, error) {
	q := cql.TitleContains(in.query).InSpace(in.space)
	queries := []string{q}

	results, err := s.client.Search(ctx, q, limit)
	if err != nil {
		return nil, queries, fmt.Errorf("title search: %w", err)
	}
	if len(results) > 0 || len(in.keywords) < 2 {
		return results, queries, nil
	}

	q = cql.And(titleTerms(in.keywords)...).InSpace(in.space)
	queries = append(queries, q)

	results, err = s.client.Search(ctx, q, limit)
	if err != nil {
		return nil, queries, fmt.Errorf("title keyword search: %w", err)
	}
	return results, queries, nil
}

// keywordSplit runs an AND conjunction of the keywords against page text,
// widening to OR only when AND leaves room under the limit.
type keywordSplit struct {
	client Searcher
}

func (s *keywordSplit) Name() strategy.Name { return strategy.KeywordSplit }

func (s *keywordSplit) Propose(ctx context.Context, in input, limit int) ([]record.Record, []string, error) {
	if len(in.keywords) < 2 {
		return nil, nil, nil
	}

	terms := textTerms(in.keywords)

	var queries []string
	var results []record.Record

	// The strict pass gets half the budget; skipped entirely when the
	// budget is too small to split.
	if andLimit := limit / 2; andLimit >= 1 {
		q := cql.And(terms...).InSpace(in.space)
		queries = append(queries, q)

		res, err := s.client.Search(ctx, q, andLimit)
		if err != nil {
			return nil, queries, fmt.Errorf("keyword AND search: %w", err)
		}
		results = res
	}

	if len(results) < limit {
		q := cql.Or(terms...).InSpace(in.space)
		queries = append(queries, q)

		orResults, err := s.client.Search(ctx, q, limit-len(results))
		if err != nil {
			return nil, queries, fmt.Errorf("keyword OR search: %w", err)
		}

		seen := make(map[string]struct{}, len(results))
		for i := range results {
			seen[results[i].ResolveID()] = struct{}{}
		}
		for _, r := range orResults {
			if _, dup := seen[r.ResolveID()]; dup {
				continue
			}
			seen[r.ResolveID()] = struct{}{}
			results = append(results, r)
		}
	}

	return results, queries, nil
}

// phraseSearch matches the raw query against page text.
type phraseSearch struct {
	client Searcher
}

func (s *phraseSearch) Name() strategy.Name { return strategy.PhraseSearch }

func (s *phraseSearch) Propose(ctx context.Context, in input, limit int) ([]record.Record, []string, error) {
	q := cql.TextContains(in.query).InSpace(in.space)

	results, err := s.client.Search(ctx, q, limit)
	if err != nil {
		return nil, []string{q}, fmt.Errorf("phrase search: %w", err)
	}
	return results, []string{q}, nil
}

// partialMatch probes page text with substrings of each keyword, catching
// inflected forms and partial identifiers the exact strategies miss.
type partialMatch struct {
	client Searcher
}

func (s *partialMatch) Name() strategy.Name { return strategy.PartialMatch }

func (s *partialMatch) Propose(ctx context.Context, in input, limit int) ([]record.Record, []string, error) {
	var queries []string
	var results []record.Record

outer:
	for _, kw := range in.keywords {
		if utf8.RuneCountInString(kw) < 3 {
			continue
		}
		subs := substrings(kw)

		perQuery := limit / len(in.keywords) / len(subs)
		if perQuery < 1 {
			perQuery = 1
		}

		for _, sub := range subs {
			q := cql.TextContains(sub).InSpace(in.space)
			queries = append(queries, q)

			res, err := s.client.Search(ctx, q, perQuery)
			if err != nil {
				return nil, queries, fmt.Errorf("partial search %q: %w", sub, err)
			}
			results = append(results, res...)

			if len(results) >= limit {
				break outer
			}
		}
	}

	if len(results) > limit {
		results = results[:limit]
	}
	return results, queries, nil
}

// substrings generates the partial-match probes for one keyword: front half
// and back half (each widened by one rune), then the keyword minus its last
// rune and minus its first. Duplicates keep their first position so runs are
// reproducible. The shapes are a heuristic for Japanese stems and may need
// tuning per corpus.
func substrings(kw string) []string {
	r := []rune(kw)
	n := len(r)

	subs := make([]string, 0, 4)
	if n >= 4 {
		mid := n / 2
		subs = append(subs, string(r[:mid+1]), string(r[mid-1:]))
	}
	if n >= 3 {
		subs = append(subs, string(r[:n-1]))
		if n >= 4 {
			subs = append(subs, string(r[1:]))
		}
	}

	seen := make(map[string]struct{}, len(subs))
	out := subs[:0]
	for _, s := range subs {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// fallback widens the search through the synonym table and, when even that
// finds nothing, returns the most recently modified pages in the space.
type fallback struct {
	client   Searcher
	expander *keyword.Expander
}

func (s *fallback) Name() strategy.Name { return strategy.Fallback }

func (s *fallback) Propose(ctx context.Context, in input, limit int) ([]record.Record, []string, error) {
	var queries []string
	var results []record.Record

	related := s.expander.Related(in.keywords)
	if len(related) > 0 {
		perQuery := limit / len(related)
		if perQuery < 1 {
			perQuery = 1
		}

		for _, term := range related {
			q := cql.TextContains(term).InSpace(in.space)
			queries = append(queries, q)

			res, err := s.client.Search(ctx, q, perQuery)
			if err != nil {
				return nil, queries, fmt.Errorf("related term search %q: %w", term, err)
			}
			results = append(results, res...)

			if len(results) >= limit {
				break
			}
		}
	}

	// Last resort: the most recently modified pages in the space, capped at five.
	if len(results) == 0 {
		q := cql.RecentInSpace(in.space)
		queries = append(queries, q)

		recentLimit := limit
		if recentLimit > 5 {
			recentLimit = 5
		}
		res, err := s.client.Search(ctx, q, recentLimit)
		if err != nil {
			return nil, queries, fmt.Errorf("recent pages search: %w", err)
		}
		results = res
	}

	if len(results) > limit {
		results = results[:limit]
	}
	return results, queries, nil
}

func titleTerms(keywords []string) []cql.Expr {
	exprs := make([]cql.Expr, len(keywords))
	for i, kw := range keywords {
		exprs[i] = cql.TitleContains(kw)
	}
	return exprs
}

func textTerms(keywords []string) []cql.Expr {
	exprs := make([]cql.Expr, len(keywords))
	for i, kw := range keywords {
		exprs[i] = cql.TextContains(kw)
	}
	return exprs
}
