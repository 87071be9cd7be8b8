package request

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"specbot/internal/domain"
)

// Search parameter limits.
const (
	// MaxQueryRunes is the maximum allowed search query length.
	MaxQueryRunes = 512
	DefaultLimit  = 20
	MaxLimit      = 100
)

// Request is a validated search query.
type Request struct {
	query string
	space string
	limit int
}

// New validates and normalizes search parameters.
// The query must be non-empty after trimming; limit defaults to 20 and is
// clamped to 100. An empty space falls back to the service-wide scope.
func New(query, space string, limit int) (Request, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, domain.ErrEmptyQuery
	}
	if utf8.RuneCountInString(query) > MaxQueryRunes {
		return Request{}, fmt.Errorf("%w (max %d runes)", domain.ErrQueryTooLong, MaxQueryRunes)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Request{query: query, space: space, limit: limit}, nil
}

// Query returns the trimmed query text.
func (r *Request) Query() string { return r.query }

// Space returns the requested space scope ("" = service default).
func (r *Request) Space() string { return r.space }

// Limit returns the maximum results to return.
func (r *Request) Limit() int { return r.limit }
