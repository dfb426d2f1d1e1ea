// Package cache stores rendered analysis responses in Redis. Coefficient
// analysis is deterministic, so entries never go stale; the TTL only bounds
// memory.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sartorproj/tsdiag/coeffs"
	"github.com/sartorproj/tsdiag/internal/config"
	"github.com/sartorproj/tsdiag/internal/logging"
	"github.com/sartorproj/tsdiag/internal/metrics"
)

const cacheName = "analysis"

// Entry is the stored form of a cached response.
type Entry struct {
	Payload  json.RawMessage `json:"payload"`
	CachedAt time.Time       `json:"cached_at"`
}

// Stats tracks cache performance.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Sets   int64 `json:"sets"`
	Errors int64 `json:"errors"`
}

// HitRate returns hits over lookups, 0 when there were none.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// AnalysisCache caches analysis responses keyed by operation, family and
// coefficients. A nil *AnalysisCache always misses.
type AnalysisCache struct {
	redis   *redis.Client
	ttl     time.Duration
	prefix  string
	logger  logging.Logger
	metrics *metrics.Metrics

	mu    sync.Mutex
	stats Stats
}

// NewClient builds a Redis client from the cache configuration.
func NewClient(cfg config.CacheConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// New creates a cache over client. logger and m may be nil.
func New(client *redis.Client, ttl time.Duration, prefix string, logger logging.Logger, m *metrics.Metrics) *AnalysisCache {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &AnalysisCache{
		redis:   client,
		ttl:     ttl,
		prefix:  prefix,
		logger:  logger.Named("cache"),
		metrics: m,
	}
}

// Key builds the cache key of one analysis. Coefficients are rendered in
// their shortest exact form so equal vectors share a key.
func Key(operation string, fam coeffs.Family, v coeffs.Vector) string {
	parts := make([]string, len(v))
	for i, c := range v {
		parts[i] = strconv.FormatFloat(c, 'g', -1, 64)
	}
	return fmt.Sprintf("%s:%s:%s", operation, fam, strings.Join(parts, ","))
}

// Get returns the payload stored under key. Redis failures count as misses.
func (c *AnalysisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.redis.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache get failed", logging.String("key", key), logging.Err(err))
			c.record(func(s *Stats) { s.Errors++ })
		}
		c.miss()
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.logger.Warn("cache entry corrupt", logging.String("key", key), logging.Err(err))
		c.record(func(s *Stats) { s.Errors++ })
		c.miss()
		return nil, false
	}

	c.record(func(s *Stats) { s.Hits++ })
	c.metrics.RecordCacheAccess(cacheName, true)
	return entry.Payload, true
}

// Set stores payload under key with the cache TTL. Failures are logged and
// otherwise ignored.
func (c *AnalysisCache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil {
		return
	}

	data, err := json.Marshal(Entry{Payload: payload, CachedAt: time.Now().UTC()})
	if err != nil {
		c.logger.Warn("cache entry encode failed", logging.String("key", key), logging.Err(err))
		return
	}
	if err := c.redis.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache set failed", logging.String("key", key), logging.Err(err))
		c.record(func(s *Stats) { s.Errors++ })
		return
	}
	c.record(func(s *Stats) { s.Sets++ })
}

// Stats returns a snapshot of the counters.
func (c *AnalysisCache) Stats() Stats {
	if c == nil {
		return Stats{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Ping checks the Redis connection.
func (c *AnalysisCache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.redis.Ping(ctx).Err()
}

// Clear removes every key under the cache prefix and returns how many were
// deleted.
func (c *AnalysisCache) Clear(ctx context.Context) (int, error) {
	if c == nil {
		return 0, nil
	}

	var keys []string
	iter := c.redis.Scan(ctx, 0, c.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("scan cache keys: %w", err)
	}
	if len(keys) == 0 {
		return 0, nil
	}
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		return 0, fmt.Errorf("clear cache: %w", err)
	}
	return len(keys), nil
}

// Close closes the Redis client.
func (c *AnalysisCache) Close() error {
	if c == nil {
		return nil
	}
	return c.redis.Close()
}

func (c *AnalysisCache) miss() {
	c.record(func(s *Stats) { s.Misses++ })
	c.metrics.RecordCacheAccess(cacheName, false)
}

func (c *AnalysisCache) record(fn func(*Stats)) {
	c.mu.Lock()
	fn(&c.stats)
	c.mu.Unlock()
}
