package search

import (
	"context"

	"go.uber.org/zap"

	"specbot/internal/domain/search/record"
	"specbot/internal/keyword"
)

// searchCall is one remote query the mock received.
type searchCall struct {
	cql   string
	limit int
}

// mockSearcher serves canned results keyed by exact CQL string and records
// every call in order. Queries without a canned response return nothing.
type mockSearcher struct {
	responses map[string][]record.Record
	errs      map[string]error
	errAll    error
	calls     []searchCall
}

func (m *mockSearcher) Search(_ context.Context, cql string, limit int) ([]record.Record, error) {
	m.calls = append(m.calls, searchCall{cql: cql, limit: limit})
	if m.errAll != nil {
		return nil, m.errAll
	}
	if err, ok := m.errs[cql]; ok {
		return nil, err
	}
	return m.responses[cql], nil
}

func (m *mockSearcher) cqls() []string {
	out := make([]string, len(m.calls))
	for i, c := range m.calls {
		out[i] = c.cql
	}
	return out
}

func flat(id, title string) record.Record {
	return record.Record{ID: id, Title: title}
}

func nested(id, title string) record.Record {
	return record.Record{Content: &record.Record{ID: id, Title: title}}
}

func newTestService(client Searcher) *Service {
	return New(client, keyword.Default(), "DOCS", zap.NewNop())
}
