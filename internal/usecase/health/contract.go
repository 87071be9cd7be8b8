package health

import "context"

// SearchBackendPinger checks Confluence API availability.
type SearchBackendPinger interface {
	Ping(ctx context.Context) error
}

// SummarizerChecker checks LLM provider availability.
type SummarizerChecker interface {
	HealthCheck(ctx context.Context) error
}

// CachePinger checks the result cache store availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}
