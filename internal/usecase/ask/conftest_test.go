package ask

import (
	"context"
	"time"

	"specbot/internal/domain"
	"specbot/internal/domain/search/candidate"
	"specbot/internal/domain/search/outcome"
	"specbot/internal/domain/search/request"
	"specbot/internal/domain/search/strategy"
)

// --- Mocks ---

// mockSearchService returns a canned outcome and records the request.
type mockSearchService struct {
	out  outcome.Outcome
	reqs []request.Request
}

func (m *mockSearchService) Search(_ context.Context, req request.Request) outcome.Outcome {
	m.reqs = append(m.reqs, req)
	return m.out
}

// mockSummarizer records the prompt inputs and returns a canned summary.
type mockSummarizer struct {
	summary   domain.Summary
	err       error
	called    int
	questions []string
	sources   []string
}

func (m *mockSummarizer) Summarize(_ context.Context, question, sources string) (domain.Summary, error) {
	m.called++
	m.questions = append(m.questions, question)
	m.sources = append(m.sources, sources)
	if m.err != nil {
		return domain.Summary{}, m.err
	}
	return m.summary, nil
}

// mockBudget records Check/Record calls.
type mockBudget struct {
	checkErr error
	checked  int
	recorded []int64
}

func (m *mockBudget) Check(_ context.Context) error { m.checked++; return m.checkErr }

func (m *mockBudget) Record(tokens int64) { m.recorded = append(m.recorded, tokens) }

func rankedOutcome(cands ...candidate.Candidate) outcome.Outcome {
	steps := []outcome.Step{
		outcome.NewStep(strategy.TitlePriority, []string{`title ~ "q" and space = "DOCS"`}, len(cands), time.Millisecond, ""),
	}
	return outcome.New("q", []string{"q"}, cands, steps, len(cands), time.Millisecond)
}

func emptyOutcome() outcome.Outcome {
	return outcome.New("q", []string{"q"}, nil, nil, 0, time.Millisecond)
}

func hit(id, title, url, excerpt string) candidate.Candidate {
	return candidate.New(id, title, url, excerpt, "DOCS", "2026-08-01T00:00:00Z", strategy.TitlePriority)
}
