package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuery signals an empty or whitespace-only query.
	ErrEmptyQuery = errors.New("no query supplied")
	// ErrQueryTooLong signals a query exceeding the maximum length.
	ErrQueryTooLong = errors.New("query too long")
	// ErrInvalidPeriod signals an unknown usage aggregation period.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrSummaryQuotaExceeded signals an exhausted LLM token budget.
	ErrSummaryQuotaExceeded = errors.New("summary quota exceeded")
	// ErrSummaryProviderError signals an LLM provider failure.
	ErrSummaryProviderError = errors.New("summary provider error")
)

// SearchBackendError wraps a Confluence API failure with the HTTP status it returned.
type SearchBackendError struct {
	StatusCode int
	Detail     string
}

func (e *SearchBackendError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("search backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("search backend returned status %d: %s", e.StatusCode, e.Detail)
}

// NewSearchBackendError creates a search backend error.
func NewSearchBackendError(statusCode int, detail string) error {
	return &SearchBackendError{StatusCode: statusCode, Detail: detail}
}
