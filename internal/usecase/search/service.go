// Package search implements the multi-strategy Confluence search pipeline:
// normalize the query into keywords, run the strategies in precision order
// against the remote API, deduplicate, then score and rank what they found.
package search

import (
	"context"
	"time"

	"go.uber.org/zap"

	"specbot/internal/domain/search/outcome"
	"specbot/internal/domain/search/request"
	"specbot/internal/keyword"
	"specbot/internal/metrics"
)

// Service runs the search pipeline. It holds no per-run state, so one value
// serves concurrent callers; each invocation is strictly sequential inside.
type Service struct {
	normalizer *keyword.Normalizer
	vocab      keyword.Vocabulary
	strategies []proposer
	space      string
	logger     *zap.Logger
}

// New creates a search service scoped to the given default space.
func New(client Searcher, vocab keyword.Vocabulary, space string, logger *zap.Logger) *Service {
	return &Service{
		normalizer: keyword.NewNormalizer(vocab),
		vocab:      vocab,
		strategies: []proposer{
			&titlePriority{client: client},
			&keywordSplit{client: client},
			&phraseSearch{client: client},
			&partialMatch{client: client},
			&fallback{client: client, expander: keyword.NewExpander(vocab)},
		},
		space:  space,
		logger: logger,
	}
}

// Search executes the strategies in order, folding their results through the
// deduplicator until the limit is reached, then scores and ranks the fold.
// Strategy failures never fail the run: they are logged, recorded on the
// step, and contribute zero candidates. Callers inspect the outcome's steps
// to tell "nothing found" apart from "the strategies errored".
func (s *Service) Search(ctx context.Context, req request.Request) outcome.Outcome {
	start := time.Now()

	space := req.Space()
	if space == "" {
		space = s.space
	}
	in := input{
		query:    req.Query(),
		keywords: s.normalizer.Normalize(req.Query()),
		space:    space,
	}

	quota := perStrategyLimit(req.Limit(), len(s.strategies))
	fold := newDedupe(s.logger)
	steps := make([]outcome.Step, 0, len(s.strategies))

	for _, strat := range s.strategies {
		if ctx.Err() != nil {
			s.logger.Warn("Search canceled", zap.Error(ctx.Err()))
			break
		}

		name := string(strat.Name())
		stepStart := time.Now()

		records, queries, err := strat.Propose(ctx, in, quota)

		stepElapsed := time.Since(stepStart)

		if err != nil {
			metrics.SearchStrategyRunsTotal.WithLabelValues(name, "error").Inc()
			s.logger.Warn("Search strategy failed",
				zap.String("strategy", name),
				zap.Error(err),
			)
			steps = append(steps, outcome.NewStep(strat.Name(), queries, 0, stepElapsed, err.Error()))
			continue
		}

		metrics.SearchStrategyRunsTotal.WithLabelValues(name, "success").Inc()
		metrics.SearchStrategyCandidatesTotal.WithLabelValues(name).Add(float64(len(records)))

		added := fold.absorb(records, strat.Name())
		steps = append(steps, outcome.NewStep(strat.Name(), queries, added, stepElapsed, ""))

		s.logger.Debug("Search strategy completed",
			zap.String("strategy", name),
			zap.Int("raw", len(records)),
			zap.Int("new", added),
			zap.Duration("duration", stepElapsed),
		)

		if len(fold.kept) >= req.Limit() {
			break
		}
	}

	ranked := newScorer(in.query, s.vocab.Discriminative(in.keywords)).rank(fold.kept)
	if len(ranked) > req.Limit() {
		ranked = ranked[:req.Limit()]
	}

	elapsed := time.Since(start)
	s.logger.Info("Search completed",
		zap.String("query", in.query),
		zap.Strings("keywords", in.keywords),
		zap.Int("results", len(ranked)),
		zap.Int("unique", len(fold.kept)),
		zap.Duration("duration", elapsed),
	)

	return outcome.New(in.query, in.keywords, ranked, steps, len(fold.kept), elapsed)
}

// perStrategyLimit splits the result budget evenly across the strategies,
// rounded to the nearest whole number with a floor of one.
func perStrategyLimit(limit, strategies int) int {
	q := (limit + strategies/2) / strategies
	if q < 1 {
		q = 1
	}
	return q
}
