package sdk

import "time"

// SearchResult is one ranked document.
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

// SearchStep describes one executed search strategy.
type SearchStep struct {
	Strategy  string   `json:"strategy"`
	Queries   []string `json:"queries"`
	Found     int      `json:"found"`
	ElapsedMs int64    `json:"elapsed_ms"`
	Error     string   `json:"error,omitempty"`
}

// SearchResponse is the result of a search call.
type SearchResponse struct {
	Query       string         `json:"query"`
	Keywords    []string       `json:"keywords"`
	Results     []SearchResult `json:"results"`
	Steps       []SearchStep   `json:"steps"`
	TotalUnique int            `json:"total_unique"`
	ElapsedMs   int64          `json:"elapsed_ms"`
}

// AskResponse is the result of an ask call.
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

// UsageMetrics holds token consumption for a period.
type UsageMetrics struct {
	Tokens           int  `json:"tokens"`
	CostMillidollars *int `json:"cost_millidollars,omitempty"`
}

// BudgetStatus holds budget state for a period.
type BudgetStatus struct {
	TokensLimit     int        `json:"tokens_limit"`
	TokensRemaining int        `json:"tokens_remaining"`
	IsExhausted     bool       `json:"is_exhausted"`
	ResetsAt        *time.Time `json:"resets_at,omitempty"`
}

// UsageResponse is the result of a usage call.
type UsageResponse struct {
	Period        string       `json:"period"`
	Model         string       `json:"model,omitempty"`
	Usage         UsageMetrics `json:"usage"`
	Budget        BudgetStatus `json:"budget"`
	PeriodStartAt *time.Time   `json:"period_start_at,omitempty"`
	PeriodEndAt   *time.Time   `json:"period_end_at,omitempty"`
}

// HealthResponse is the result of a health call.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
