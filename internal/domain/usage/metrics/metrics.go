package metrics

// Metrics holds LLM usage for a time period.
type Metrics struct {
	summaryRequests  int
	tokens           int
	costMillidollars int
}

// New creates a Metrics snapshot.
func New(requests, tokens, costMillidollars int) Metrics {
	return Metrics{summaryRequests: requests, tokens: tokens, costMillidollars: costMillidollars}
}

// SummaryRequests returns the number of summarization calls.
func (m Metrics) SummaryRequests() int { return m.summaryRequests }

// Tokens returns the total tokens consumed.
func (m Metrics) Tokens() int { return m.tokens }

// CostMillidollars returns cost in millidollars (1 USD = 1000).
func (m Metrics) CostMillidollars() int { return m.costMillidollars }
