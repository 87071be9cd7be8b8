// Package chi exposes the specbot services over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"specbot/internal/domain"
	"specbot/internal/domain/search/candidate"
	"specbot/internal/domain/search/outcome"
	"specbot/internal/domain/search/request"
	domusage "specbot/internal/domain/usage"
	askuc "specbot/internal/usecase/ask"
	healthuc "specbot/internal/usecase/health"
)

// ErrorCode identifies an API error class in responses.
type ErrorCode string

// API error codes.
const (
	CodeBadRequest           ErrorCode = "bad_request"
	CodeUnauthorized         ErrorCode = "unauthorized"
	CodeNoQuery              ErrorCode = "no_query"
	CodeValidationFailed     ErrorCode = "validation_failed"
	CodeRateLimited          ErrorCode = "rate_limited"
	CodeSummaryQuotaExceeded ErrorCode = "summary_quota_exceeded"
	CodeSummaryProviderError ErrorCode = "summary_provider_error"
	CodeSearchBackendError   ErrorCode = "search_backend_error"
	CodeInternalError        ErrorCode = "internal_error"
)

// ErrorResponse is the error body for every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

type searchService interface {
	Search(ctx context.Context, req request.Request) outcome.Outcome
}

type askService interface {
	Ask(ctx context.Context, question string, limit int) (askuc.Answer, error)
}

type usageService interface {
	GetReport(ctx context.Context, period domusage.Period) (domusage.Report, error)
}

type healthService interface {
	Check(ctx context.Context) healthuc.Report
}

// Server holds the HTTP handlers for the specbot API.
type Server struct {
	search        searchService
	ask           askService
	usage         usageService
	health        healthService
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search searchService,
	ask askService,
	usage usageService,
	health healthService,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search: search,
		ask:    ask,
		usage:  usage,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, CodeNoQuery),
		sentinelHandler(domain.ErrQueryTooLong, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrInvalidPeriod, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, CodeRateLimited),
		sentinelHandler(domain.ErrSummaryQuotaExceeded, http.StatusTooManyRequests, CodeSummaryQuotaExceeded),
		sentinelHandler(domain.ErrSummaryProviderError, http.StatusBadGateway, CodeSummaryProviderError),
		searchBackendHandler,
	}
	return s
}

// Register mounts the API routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", s.Search)
		r.Post("/ask", s.Ask)
		r.Get("/usage", s.GetUsage)
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// --- Request/response DTOs ---

// SearchRequest is the POST /api/v1/search body.
type SearchRequest struct {
	Query string `json:"query"`
	Space string `json:"space,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

// SearchResult is one ranked document in a search response.
type SearchResult struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	URL          string `json:"url,omitempty"`
	Excerpt      string `json:"excerpt,omitempty"`
	Space        string `json:"space,omitempty"`
	LastModified string `json:"last_modified,omitempty"`
	Strategy     string `json:"strategy"`
	Score        int    `json:"score"`
}

// SearchStep describes one executed strategy.
type SearchStep struct {
	Strategy  string   `json:"strategy"`
	Queries   []string `json:"queries"`
	Found     int      `json:"found"`
	ElapsedMs int64    `json:"elapsed_ms"`
	Error     string   `json:"error,omitempty"`
}

// SearchResponse is the POST /api/v1/search response.
type SearchResponse struct {
	Query       string         `json:"query"`
	Keywords    []string       `json:"keywords"`
	Results     []SearchResult `json:"results"`
	Steps       []SearchStep   `json:"steps"`
	TotalUnique int            `json:"total_unique"`
	ElapsedMs   int64          `json:"elapsed_ms"`
}

// AskRequest is the POST /api/v1/ask body.
type AskRequest struct {
	Question string `json:"question"`
	Limit    int    `json:"limit,omitempty"`
}

// AskResponse is the POST /api/v1/ask response.
type AskResponse struct {
	Answer      string         `json:"answer"`
	Answered    bool           `json:"answered"`
	Sources     []SearchResult `json:"sources,omitempty"`
	TokensUsed  int            `json:"tokens_used,omitempty"`
	Keywords    []string       `json:"keywords"`
	Steps       []SearchStep   `json:"steps"`
	TotalUnique int            `json:"total_unique"`
	ElapsedMs   int64          `json:"elapsed_ms"`
}

// UsageResponse is the GET /api/v1/usage response.
type UsageResponse struct {
	Period        string       `json:"period"`
	Model         string       `json:"model,omitempty"`
	Usage         UsageMetrics `json:"usage"`
	Budget        BudgetStatus `json:"budget"`
	PeriodStartAt *time.Time   `json:"period_start_at,omitempty"`
	PeriodEndAt   *time.Time   `json:"period_end_at,omitempty"`
}

// UsageMetrics holds token consumption for the period.
type UsageMetrics struct {
	Tokens           int  `json:"tokens"`
	CostMillidollars *int `json:"cost_millidollars,omitempty"`
}

// BudgetStatus holds budget state for the period.
type BudgetStatus struct {
	TokensLimit     int        `json:"tokens_limit"`
	TokensRemaining int        `json:"tokens_remaining"`
	IsExhausted     bool       `json:"is_exhausted"`
	ResetsAt        *time.Time `json:"resets_at,omitempty"`
}

// HealthResponse is the GET /health response.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// --- Handlers ---

// Search handles POST /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var body SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	req, err := request.New(body.Query, body.Space, body.Limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	out := s.search.Search(r.Context(), req)
	writeJSON(w, http.StatusOK, searchResponseFrom(&out))
}

// Ask handles POST /api/v1/ask.
func (s *Server) Ask(w http.ResponseWriter, r *http.Request) {
	var body AskRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	answer, err := s.ask.Ask(r.Context(), body.Question, body.Limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	out := answer.Search
	writeJSON(w, http.StatusOK, AskResponse{
		Answer:      answer.Text,
		Answered:    answer.Answered,
		Sources:     resultsFrom(answer.Sources),
		TokensUsed:  answer.Summary.TotalTokens,
		Keywords:    keywordsOrEmpty(out.Keywords()),
		Steps:       stepsFrom(out.Steps()),
		TotalUnique: out.TotalUnique(),
		ElapsedMs:   out.Elapsed().Milliseconds(),
	})
}

// GetUsage handles GET /api/v1/usage.
func (s *Server) GetUsage(w http.ResponseWriter, r *http.Request) {
	period := domusage.PeriodMonth
	if p := r.URL.Query().Get("period"); p != "" {
		period = domusage.Period(p)
	}

	report, err := s.usage.GetReport(r.Context(), period)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := UsageResponse{
		Period: string(report.Period()),
		Model:  report.Model(),
		Usage: UsageMetrics{
			Tokens: report.Metrics().Tokens(),
		},
		Budget: BudgetStatus{
			TokensLimit:     report.Budget().TokensLimit(),
			TokensRemaining: report.Budget().TokensRemaining(),
			IsExhausted:     report.Budget().IsExhausted(),
		},
	}

	if cost := report.Metrics().CostMillidollars(); cost > 0 {
		resp.Usage.CostMillidollars = &cost
	}
	if report.PeriodStart() > 0 {
		start := time.UnixMilli(report.PeriodStart()).UTC()
		end := time.UnixMilli(report.PeriodEnd()).UTC()
		resp.PeriodStartAt = &start
		resp.PeriodEndAt = &end
	}
	if report.Budget().ResetsAt() > 0 {
		resetsAt := time.UnixMilli(report.Budget().ResetsAt()).UTC()
		resp.Budget.ResetsAt = &resetsAt
	}

	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// --- Conversions ---

func searchResponseFrom(out *outcome.Outcome) SearchResponse {
	return SearchResponse{
		Query:       out.Query(),
		Keywords:    keywordsOrEmpty(out.Keywords()),
		Results:     resultsFrom(out.Results()),
		Steps:       stepsFrom(out.Steps()),
		TotalUnique: out.TotalUnique(),
		ElapsedMs:   out.Elapsed().Milliseconds(),
	}
}

func resultsFrom(cands []candidate.Candidate) []SearchResult {
	results := make([]SearchResult, len(cands))
	for i := range cands {
		c := &cands[i]
		results[i] = SearchResult{
			ID:           c.ID(),
			Title:        c.Title(),
			URL:          c.URL(),
			Excerpt:      c.Excerpt(),
			Space:        c.Space(),
			LastModified: c.LastModified(),
			Strategy:     string(c.Strategy()),
			Score:        c.Score(),
		}
	}
	return results
}

func stepsFrom(steps []outcome.Step) []SearchStep {
	out := make([]SearchStep, len(steps))
	for i := range steps {
		st := &steps[i]
		out[i] = SearchStep{
			Strategy:  string(st.Strategy()),
			Queries:   st.Queries(),
			Found:     st.Found(),
			ElapsedMs: st.Elapsed().Milliseconds(),
			Error:     st.Err(),
		}
	}
	return out
}

func keywordsOrEmpty(kws []string) []string {
	if kws == nil {
		return []string{}
	}
	return kws
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEmptyQuery,
		domain.ErrQueryTooLong,
		domain.ErrInvalidPeriod,
		domain.ErrRateLimited,
		domain.ErrSummaryQuotaExceeded,
		domain.ErrSummaryProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// searchBackendHandler maps Confluence API failures to 502.
func searchBackendHandler(w http.ResponseWriter, err error, _ string) bool {
	var be *domain.SearchBackendError
	if !errors.As(err, &be) {
		return false
	}
	writeError(w, http.StatusBadGateway, CodeSearchBackendError, "search backend unavailable")
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
