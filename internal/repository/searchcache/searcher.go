// Package searchcache caches raw Confluence search results in a key-value
// store. The cache wraps the remote searcher transparently: same CQL + limit
// within the TTL never hits the API twice, and any cache failure degrades to
// a plain remote call.
package searchcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"specbot/internal/db"
	"specbot/internal/domain/search/record"
)

// Searcher is the remote search contract the cache decorates.
type Searcher interface {
	Search(ctx context.Context, cql string, limit int) ([]record.Record, error)
}

// store is the consumer interface for the result cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedSearcher caches search results keyed by the exact CQL string and limit.
type CachedSearcher struct {
	inner      Searcher
	store      store
	keyPrefix  string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner Searcher,
	s store,
	keyPrefix string,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedSearcher {
	return &CachedSearcher{
		inner:      inner,
		store:      s,
		keyPrefix:  keyPrefix,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Search returns cached results or calls the remote searcher.
func (c *CachedSearcher) Search(ctx context.Context, cql string, limit int) ([]record.Record, error) {
	key := c.cacheKey(cql, limit)

	if results, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return results, nil
	}

	c.incCache("miss")

	results, err := c.inner.Search(ctx, cql, limit)
	if err != nil {
		return nil, fmt.Errorf("remote search: %w", err)
	}

	c.putToCache(ctx, key, results)
	return results, nil
}

func (c *CachedSearcher) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedSearcher) cacheKey(cql string, limit int) string {
	h := sha256.Sum256([]byte(cql + "|" + strconv.Itoa(limit)))
	return c.keyPrefix + "search_cache:" + hex.EncodeToString(h[:])
}

func (c *CachedSearcher) getFromCache(ctx context.Context, key string) ([]record.Record, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached results", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	var results []record.Record
	if err := json.Unmarshal(data, &results); err != nil {
		c.logger.Warn("Failed to parse cached results", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	return results, true
}

func (c *CachedSearcher) putToCache(ctx context.Context, key string, results []record.Record) {
	data, err := json.Marshal(results)
	if err != nil {
		c.logger.Warn("Failed to encode results for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache results", zap.String("key", key), zap.Error(err))
	}
}
