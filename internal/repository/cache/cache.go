// Package cache is an optional TTL'd decorator over the search backend.
// Cache failures never fail a search; they fall through to the backend.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/forkful/foodsearch/internal/db/redis"
	"github.com/forkful/foodsearch/internal/domain"
)

// store is the consumer interface for the result cache.
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Backend is the inner search port the cache decorates.
type Backend interface {
	Query(ctx context.Context, q domain.SearchQuery) (domain.SearchResult, error)
}

// CachedBackend serves repeated queries from the store.
type CachedBackend struct {
	inner      Backend
	store      store
	prefix     string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner Backend,
	s store,
	prefix string,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedBackend {
	return &CachedBackend{
		inner:      inner,
		store:      s,
		prefix:     prefix,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Query returns cached results or calls the inner backend and stores the
// outcome. Errors from the inner backend are never cached.
func (c *CachedBackend) Query(ctx context.Context, q domain.SearchQuery) (domain.SearchResult, error) {
	key := c.cacheKey(q)

	if items, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return items, nil
	}
	c.incCache("miss")

	items, err := c.inner.Query(ctx, q)
	if err != nil {
		return nil, err
	}

	c.putToCache(ctx, key, items)
	return items, nil
}

func (c *CachedBackend) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// cacheKey hashes the full query identity: modality, target vector, limit,
// and payload. Text and image queries with equal payloads never collide.
func (c *CachedBackend) cacheKey(q domain.SearchQuery) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%d|", q.Modality(), q.TargetVector(), q.Limit())
	switch q.Modality() {
	case domain.ModalityImage:
		_, _ = io.WriteString(h, q.Image())
	default:
		_, _ = io.WriteString(h, q.Text())
	}
	return c.prefix + "result_cache:" + hex.EncodeToString(h.Sum(nil))
}

func (c *CachedBackend) getFromCache(ctx context.Context, key string) (domain.SearchResult, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, redis.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached results", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var items domain.SearchResult
	if err := json.Unmarshal(data, &items); err != nil {
		c.logger.Warn("Failed to parse cached results", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if items == nil {
		items = domain.SearchResult{}
	}
	return items, true
}

func (c *CachedBackend) putToCache(ctx context.Context, key string, items domain.SearchResult) {
	data, err := json.Marshal(items)
	if err != nil {
		c.logger.Warn("Failed to encode results for cache", zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to store cached results", zap.String("key", key), zap.Error(err))
	}
}
