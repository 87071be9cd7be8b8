package ask

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"specbot/internal/domain"
)

func newTestService(search Searcher, sum Summarizer, budget BudgetChecker) *Service {
	return New(search, sum, budget, domain.DefaultSummaryConfig(), zap.NewNop())
}

func TestAsk_EmptyQuestion(t *testing.T) {
	search := &mockSearchService{}
	sum := &mockSummarizer{}
	svc := newTestService(search, sum, nil)

	_, err := svc.Ask(context.Background(), "   ", 0)
	if !errors.Is(err, domain.ErrEmptyQuery) {
		t.Fatalf("expected domain.ErrEmptyQuery, got %v", err)
	}
	if len(search.reqs) != 0 {
		t.Errorf("search should not run for an empty question, got %d calls", len(search.reqs))
	}
	if sum.called != 0 {
		t.Errorf("summarizer should not run for an empty question, got %d calls", sum.called)
	}
}

func TestAsk_NothingFound_SkipsSummarizer(t *testing.T) {
	search := &mockSearchService{out: emptyOutcome()}
	sum := &mockSummarizer{}
	svc := newTestService(search, sum, nil)

	ans, err := svc.Ask(context.Background(), "ログイン機能", 0)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if ans.Answered {
		t.Error("Answered should be false when nothing was found")
	}
	if ans.Text != noResultsText {
		t.Errorf("expected the fixed no-results answer, got %q", ans.Text)
	}
	if sum.called != 0 {
		t.Errorf("summarizer called %d times, want 0", sum.called)
	}
}

func TestAsk_AnswersFromSources(t *testing.T) {
	search := &mockSearchService{out: rankedOutcome(
		hit("1", "ログイン仕様", "https://wiki/1", "ログインは@@@hl@@@二段階認証@@@endhl@@@を使う"),
		hit("2", "認証設計", "https://wiki/2", ""),
	)}
	sum := &mockSummarizer{summary: domain.Summary{
		Text:             "ログインは二段階認証を使います。",
		PromptTokens:     120,
		CompletionTokens: 30,
		TotalTokens:      150,
	}}
	svc := newTestService(search, sum, nil)

	ans, err := svc.Ask(context.Background(), "ログインの仕組みは？", 10)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if !ans.Answered {
		t.Fatal("Answered should be true")
	}
	if ans.Text != "ログインは二段階認証を使います。" {
		t.Errorf("unexpected answer: %q", ans.Text)
	}
	if len(ans.Sources) != 2 {
		t.Fatalf("sources = %d, want 2", len(ans.Sources))
	}
	if ans.Summary.TotalTokens != 150 {
		t.Errorf("tokens = %d, want 150", ans.Summary.TotalTokens)
	}

	block := sum.sources[0]
	if !strings.Contains(block, "【1】ログイン仕様（DOCS）") {
		t.Errorf("source block missing first entry:\n%s", block)
	}
	if !strings.Contains(block, "URL: https://wiki/1") {
		t.Errorf("source block missing URL:\n%s", block)
	}
	if strings.Contains(block, "@@@hl@@@") {
		t.Errorf("highlight markers should be stripped:\n%s", block)
	}
	if !strings.Contains(block, "抜粋: ログインは二段階認証を使う") {
		t.Errorf("source block missing cleaned excerpt:\n%s", block)
	}
}

func TestAsk_SourcesCappedAtMaxContextDocs(t *testing.T) {
	cfg := domain.DefaultSummaryConfig()
	search := &mockSearchService{out: rankedOutcome(
		hit("1", "a", "", ""), hit("2", "b", "", ""), hit("3", "c", "", ""),
		hit("4", "d", "", ""), hit("5", "e", "", ""), hit("6", "f", "", ""),
	)}
	sum := &mockSummarizer{summary: domain.Summary{Text: "ok"}}
	svc := New(search, sum, nil, cfg, zap.NewNop())

	ans, err := svc.Ask(context.Background(), "q", 10)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if len(ans.Sources) != cfg.MaxContextDocs {
		t.Errorf("sources = %d, want %d", len(ans.Sources), cfg.MaxContextDocs)
	}
}

func TestAsk_BudgetReject(t *testing.T) {
	search := &mockSearchService{out: rankedOutcome(hit("1", "t", "", ""))}
	sum := &mockSummarizer{summary: domain.Summary{Text: "ok"}}
	budget := &mockBudget{checkErr: domain.ErrSummaryQuotaExceeded}
	svc := newTestService(search, sum, budget)

	_, err := svc.Ask(context.Background(), "q", 10)
	if !errors.Is(err, domain.ErrSummaryQuotaExceeded) {
		t.Fatalf("expected domain.ErrSummaryQuotaExceeded, got %v", err)
	}
	if sum.called != 0 {
		t.Errorf("summarizer should not run past a rejected budget, got %d calls", sum.called)
	}
}

func TestAsk_RecordsTokens(t *testing.T) {
	search := &mockSearchService{out: rankedOutcome(hit("1", "t", "", ""))}
	sum := &mockSummarizer{summary: domain.Summary{Text: "ok", TotalTokens: 321}}
	budget := &mockBudget{}
	svc := newTestService(search, sum, budget)

	if _, err := svc.Ask(context.Background(), "q", 10); err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if budget.checked != 1 {
		t.Errorf("budget checked %d times, want 1", budget.checked)
	}
	if len(budget.recorded) != 1 || budget.recorded[0] != 321 {
		t.Errorf("recorded = %v, want [321]", budget.recorded)
	}
}

func TestAsk_SummarizerFailurePropagates(t *testing.T) {
	search := &mockSearchService{out: rankedOutcome(hit("1", "t", "", ""))}
	sum := &mockSummarizer{err: domain.ErrSummaryProviderError}
	budget := &mockBudget{}
	svc := newTestService(search, sum, budget)

	_, err := svc.Ask(context.Background(), "q", 10)
	if !errors.Is(err, domain.ErrSummaryProviderError) {
		t.Fatalf("expected domain.ErrSummaryProviderError, got %v", err)
	}
	if len(budget.recorded) != 0 {
		t.Errorf("no tokens should be recorded on failure, got %v", budget.recorded)
	}
}

func TestCleanExcerpt_Truncates(t *testing.T) {
	got := cleanExcerpt("あいうえおかきくけこ", 5)
	if got != "あいうえお…" {
		t.Errorf("cleanExcerpt = %q, want あいうえお…", got)
	}
}
