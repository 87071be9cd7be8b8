package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"specbot/internal/domain"
	"specbot/internal/domain/search/candidate"
	"specbot/internal/domain/search/outcome"
	"specbot/internal/domain/search/request"
	"specbot/internal/domain/search/strategy"
	domusage "specbot/internal/domain/usage"
	"specbot/internal/domain/usage/budget"
	usagemetrics "specbot/internal/domain/usage/metrics"
	askuc "specbot/internal/usecase/ask"
	healthuc "specbot/internal/usecase/health"
)

// --- Mocks ---

type mockSearch struct {
	out  outcome.Outcome
	reqs []request.Request
}

func (m *mockSearch) Search(_ context.Context, req request.Request) outcome.Outcome {
	m.reqs = append(m.reqs, req)
	return m.out
}

type mockAsk struct {
	answer askuc.Answer
	err    error
}

func (m *mockAsk) Ask(_ context.Context, _ string, _ int) (askuc.Answer, error) {
	if m.err != nil {
		return askuc.Answer{}, m.err
	}
	return m.answer, nil
}

type mockUsage struct {
	report domusage.Report
	err    error
}

func (m *mockUsage) GetReport(_ context.Context, _ domusage.Period) (domusage.Report, error) {
	if m.err != nil {
		return domusage.Report{}, m.err
	}
	return m.report, nil
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report { return m.report }

func testOutcome() outcome.Outcome {
	cand := candidate.New(
		"123", "ログイン仕様", "https://wiki/123", "excerpt", "DOCS",
		"2026-08-01T00:00:00Z", strategy.TitlePriority,
	).Scored(45)
	steps := []outcome.Step{
		outcome.NewStep(strategy.TitlePriority,
			[]string{`title ~ "ログイン" and space = "DOCS"`}, 1, 12*time.Millisecond, ""),
	}
	return outcome.New("ログイン", []string{"ログイン"}, []candidate.Candidate{cand}, steps, 1, 30*time.Millisecond)
}

func newTestRouter(s *Server) http.Handler {
	r := chirouter.NewRouter()
	s.Register(r)
	return r
}

// --- Tests ---

func TestSearchHandler_OK(t *testing.T) {
	search := &mockSearch{out: testOutcome()}
	srv := NewServer(search, &mockAsk{}, &mockUsage{}, &mockHealth{}, zap.NewNop())
	router := newTestRouter(srv)

	body := strings.NewReader(`{"query": "ログイン", "limit": 10}`)
	req := httptest.NewRequest("POST", "/api/v1/search", body)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rr.Code, rr.Body.String())
	}

	var resp SearchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(resp.Results))
	}
	if resp.Results[0].ID != "123" || resp.Results[0].Score != 45 {
		t.Errorf("unexpected result: %+v", resp.Results[0])
	}
	if resp.Results[0].Strategy != "title_priority" {
		t.Errorf("strategy = %q, want title_priority", resp.Results[0].Strategy)
	}
	if len(resp.Steps) != 1 || resp.Steps[0].Found != 1 {
		t.Errorf("unexpected steps: %+v", resp.Steps)
	}
	if resp.TotalUnique != 1 {
		t.Errorf("total_unique = %d, want 1", resp.TotalUnique)
	}

	if len(search.reqs) != 1 || search.reqs[0].Limit() != 10 {
		t.Errorf("unexpected search request: %+v", search.reqs)
	}
}

func TestSearchHandler_EmptyQuery_400NoQuery(t *testing.T) {
	srv := NewServer(&mockSearch{}, &mockAsk{}, &mockUsage{}, &mockHealth{}, zap.NewNop())
	router := newTestRouter(srv)

	req := httptest.NewRequest("POST", "/api/v1/search", strings.NewReader(`{"query": "   "}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if errResp.Code != CodeNoQuery {
		t.Errorf("code = %q, want %q", errResp.Code, CodeNoQuery)
	}
}

func TestSearchHandler_InvalidBody_400(t *testing.T) {
	srv := NewServer(&mockSearch{}, &mockAsk{}, &mockUsage{}, &mockHealth{}, zap.NewNop())
	router := newTestRouter(srv)

	req := httptest.NewRequest("POST", "/api/v1/search", strings.NewReader(`{not json`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestAskHandler_OK(t *testing.T) {
	out := testOutcome()
	ask := &mockAsk{answer: askuc.Answer{
		Text:     "ログインは二段階認証を使います。",
		Sources:  out.Results(),
		Search:   out,
		Summary:  domain.Summary{TotalTokens: 150},
		Answered: true,
	}}
	srv := NewServer(&mockSearch{}, ask, &mockUsage{}, &mockHealth{}, zap.NewNop())
	router := newTestRouter(srv)

	body := strings.NewReader(`{"question": "ログインの仕組みは？"}`)
	req := httptest.NewRequest("POST", "/api/v1/ask", body)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rr.Code, rr.Body.String())
	}

	var resp AskResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Answered {
		t.Error("answered should be true")
	}
	if resp.TokensUsed != 150 {
		t.Errorf("tokens_used = %d, want 150", resp.TokensUsed)
	}
	if len(resp.Sources) != 1 {
		t.Errorf("sources = %d, want 1", len(resp.Sources))
	}
}

func TestAskHandler_QuotaExceeded_429(t *testing.T) {
	ask := &mockAsk{err: domain.ErrSummaryQuotaExceeded}
	srv := NewServer(&mockSearch{}, ask, &mockUsage{}, &mockHealth{}, zap.NewNop())
	router := newTestRouter(srv)

	req := httptest.NewRequest("POST", "/api/v1/ask", strings.NewReader(`{"question": "q"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rr.Code)
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if errResp.Code != CodeSummaryQuotaExceeded {
		t.Errorf("code = %q, want %q", errResp.Code, CodeSummaryQuotaExceeded)
	}
}

func TestAskHandler_ProviderError_502(t *testing.T) {
	ask := &mockAsk{err: domain.ErrSummaryProviderError}
	srv := NewServer(&mockSearch{}, ask, &mockUsage{}, &mockHealth{}, zap.NewNop())
	router := newTestRouter(srv)

	req := httptest.NewRequest("POST", "/api/v1/ask", strings.NewReader(`{"question": "q"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rr.Code)
	}
}

func TestUsageHandler_OK(t *testing.T) {
	report := domusage.NewReport(
		domusage.PeriodDay,
		time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC).UnixMilli(),
		time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC).UnixMilli(),
		"gpt-4o-mini",
		usagemetrics.New(0, 3000, 0),
		budget.New(10000, 7000, false, time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC).UnixMilli()),
	)
	srv := NewServer(&mockSearch{}, &mockAsk{}, &mockUsage{report: report}, &mockHealth{}, zap.NewNop())
	router := newTestRouter(srv)

	req := httptest.NewRequest("GET", "/api/v1/usage?period=day", http.NoBody)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp UsageResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Period != "day" || resp.Model != "gpt-4o-mini" {
		t.Errorf("unexpected report header: %+v", resp)
	}
	if resp.Usage.Tokens != 3000 {
		t.Errorf("tokens = %d, want 3000", resp.Usage.Tokens)
	}
	if resp.Budget.TokensRemaining != 7000 {
		t.Errorf("remaining = %d, want 7000", resp.Budget.TokensRemaining)
	}
}

func TestUsageHandler_InvalidPeriod_400(t *testing.T) {
	srv := NewServer(&mockSearch{}, &mockAsk{}, &mockUsage{err: domain.ErrInvalidPeriod}, &mockHealth{}, zap.NewNop())
	router := newTestRouter(srv)

	req := httptest.NewRequest("GET", "/api/v1/usage?period=week", http.NoBody)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestHealthHandler_Degraded_503(t *testing.T) {
	health := &mockHealth{report: healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{
			"confluence": healthuc.CheckError,
			"llm":        healthuc.CheckOK,
		},
	}}
	srv := NewServer(&mockSearch{}, &mockAsk{}, &mockUsage{}, health, zap.NewNop())
	router := newTestRouter(srv)

	req := httptest.NewRequest("GET", "/health", http.NoBody)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rr.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "degraded" || resp.Checks["confluence"] != "error" {
		t.Errorf("unexpected health response: %+v", resp)
	}
}

func TestHealthHandler_OK_200(t *testing.T) {
	health := &mockHealth{report: healthuc.Report{
		Status: healthuc.Healthy,
		Checks: map[string]healthuc.CheckResult{"confluence": healthuc.CheckOK},
	}}
	srv := NewServer(&mockSearch{}, &mockAsk{}, &mockUsage{}, health, zap.NewNop())
	router := newTestRouter(srv)

	req := httptest.NewRequest("GET", "/health", http.NoBody)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
}
