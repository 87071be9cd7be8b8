// Package ask implements the question-answering flow: search the space,
// render the best hits into a source block, and have the summarizer answer
// from those sources. When the search finds nothing the flow short-circuits
// with a fixed "nothing found" answer and never spends LLM tokens.
package ask

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"specbot/internal/domain"
	"specbot/internal/domain/search/candidate"
	"specbot/internal/domain/search/outcome"
	"specbot/internal/domain/search/request"
)

// noResultsText is returned verbatim when the search comes back empty.
const noResultsText = "該当するドキュメントが見つかりませんでした。" +
	"別のキーワードで検索するか、質問を言い換えてみてください。"

// Answer is the result of one Ask invocation.
type Answer struct {
	// Text is the generated answer, or the fixed "nothing found" message.
	Text string
	// Sources are the candidates the answer was generated from, best first.
	Sources []candidate.Candidate
	// Search carries the full search run metadata.
	Search outcome.Outcome
	// Summary holds token usage; zero when the summarizer was not called.
	Summary domain.Summary
	// Answered is false when the search found nothing and the summarizer
	// was skipped.
	Answered bool
}

// Service orchestrates search and summarization.
type Service struct {
	search     Searcher
	summarizer Summarizer
	budget     BudgetChecker // nil = unlimited
	cfg        domain.SummaryConfig
	logger     *zap.Logger
}

// New creates an ask service. budget may be nil when no token limits are
// configured.
func New(
	search Searcher,
	summarizer Summarizer,
	budget BudgetChecker,
	cfg domain.SummaryConfig,
	logger *zap.Logger,
) *Service {
	return &Service{
		search:     search,
		summarizer: summarizer,
		budget:     budget,
		cfg:        cfg,
		logger:     logger,
	}
}

// Ask answers a free-text question from the configured space. An empty
// question returns domain.ErrEmptyQuery before any remote call; an empty
// search result returns the "nothing found" answer without calling the LLM.
func (s *Service) Ask(ctx context.Context, question string, limit int) (Answer, error) {
	req, err := request.New(question, "", limit)
	if err != nil {
		return Answer{}, err
	}

	out := s.search.Search(ctx, req)
	if out.Empty() {
		s.logger.Info("No documents found, skipping summarizer",
			zap.String("question", req.Query()),
		)
		return Answer{Text: noResultsText, Search: out}, nil
	}

	sources := out.Results()
	if len(sources) > s.cfg.MaxContextDocs {
		sources = sources[:s.cfg.MaxContextDocs]
	}

	if s.budget != nil {
		if err := s.budget.Check(ctx); err != nil {
			return Answer{}, fmt.Errorf("summary budget: %w", err)
		}
	}

	summary, err := s.summarizer.Summarize(ctx, req.Query(), s.renderSources(sources))
	if err != nil {
		return Answer{}, fmt.Errorf("summarize: %w", err)
	}

	if s.budget != nil && summary.TotalTokens > 0 {
		s.budget.Record(int64(summary.TotalTokens))
	}

	s.logger.Info("Question answered",
		zap.String("question", req.Query()),
		zap.Int("sources", len(sources)),
		zap.Int("tokens", summary.TotalTokens),
	)

	return Answer{
		Text:     summary.Text,
		Sources:  sources,
		Search:   out,
		Summary:  summary,
		Answered: true,
	}, nil
}

// renderSources formats candidates into the numbered source block the
// summarizer prompt expects.
func (s *Service) renderSources(sources []candidate.Candidate) string {
	var b strings.Builder
	for i := range sources {
		c := &sources[i]
		fmt.Fprintf(&b, "【%d】%s", i+1, c.Title())
		if c.Space() != "" {
			fmt.Fprintf(&b, "（%s）", c.Space())
		}
		b.WriteByte('\n')
		if c.URL() != "" {
			fmt.Fprintf(&b, "URL: %s\n", c.URL())
		}
		if excerpt := cleanExcerpt(c.Excerpt(), s.cfg.MaxExcerptRunes); excerpt != "" {
			fmt.Fprintf(&b, "抜粋: %s\n", excerpt)
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

// cleanExcerpt strips the Confluence highlight markers from a search excerpt
// and truncates it to maxRunes.
func cleanExcerpt(excerpt string, maxRunes int) string {
	excerpt = strings.ReplaceAll(excerpt, "@@@hl@@@", "")
	excerpt = strings.ReplaceAll(excerpt, "@@@endhl@@@", "")
	excerpt = strings.TrimSpace(excerpt)

	if maxRunes > 0 && utf8.RuneCountInString(excerpt) > maxRunes {
		r := []rune(excerpt)
		excerpt = string(r[:maxRunes]) + "…"
	}
	return excerpt
}
