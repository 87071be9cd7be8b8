package ask

import (
	"context"

	"specbot/internal/domain"
	"specbot/internal/domain/search/outcome"
	"specbot/internal/domain/search/request"
)

// Searcher runs the multi-strategy Confluence search.
type Searcher interface {
	Search(ctx context.Context, req request.Request) outcome.Outcome
}

// Summarizer generates an answer from the question and the rendered sources.
type Summarizer interface {
	Summarize(ctx context.Context, question, sources string) (domain.Summary, error)
}

// BudgetChecker gates summarizer calls on the token budget.
type BudgetChecker interface {
	Check(ctx context.Context) error
	Record(tokens int64)
}
