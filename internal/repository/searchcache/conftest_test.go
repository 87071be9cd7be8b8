package searchcache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"specbot/internal/db"
	"specbot/internal/domain/search/record"
)

type mockSearcher struct {
	results []record.Record
	err     error
	calls   int
	gotCQL  string
}

func (m *mockSearcher) Search(_ context.Context, cql string, _ int) ([]record.Record, error) {
	m.calls++
	m.gotCQL = cql
	return m.results, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestCachedSearcher(t *testing.T, inner *mockSearcher) (*CachedSearcher, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	cs := New(inner, ms, "specbot:", 15*time.Minute, nil, zap.NewNop())
	return cs, ms
}
