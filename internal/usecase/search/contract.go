package search

import (
	"context"

	"specbot/internal/domain/search/record"
)

// Searcher runs one CQL query against the remote search API and returns the
// raw result records. Implemented by the Confluence client, optionally behind
// the result cache.
type Searcher interface {
	Search(ctx context.Context, cql string, limit int) ([]record.Record, error)
}
