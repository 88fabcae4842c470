// Package scorecache caches serialized score results in Redis, keyed by a
// hash of the encoded feature vector. The codec is pure, so identical
// vectors always score identically and the key is sound. Cache failures
// degrade to a miss; they never fail a request.
package scorecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"credit-scoring-service/internal/codec"
	"credit-scoring-service/internal/common/logger"
	"credit-scoring-service/internal/common/metrics"
	"credit-scoring-service/pkg/api"
)

type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func New(client *redis.Client, ttl time.Duration, log logger.Logger) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "scorecache"}),
	}
}

// Key derives the cache key from the canonical feature vector and the schema
// version, so a schema bump can never serve stale vectors.
func Key(vec codec.FeatureVector) string {
	h := sha256.New()
	h.Write([]byte(codec.SchemaVersion))
	buf, _ := json.Marshal(vec)
	h.Write(buf)
	return "score:" + hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached result for a vector, or nil on miss or error.
func (c *Cache) Get(ctx context.Context, vec codec.FeatureVector) *api.ScoreResult {
	val, err := c.client.Get(ctx, Key(vec)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache read failed", map[string]interface{}{"error": err.Error()})
		}
		metrics.CacheMisses.Inc()
		return nil
	}

	var result api.ScoreResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		metrics.CacheMisses.Inc()
		return nil
	}

	metrics.CacheHits.Inc()
	return &result
}

// Put stores a result for a vector. Failures are logged and dropped.
func (c *Cache) Put(ctx context.Context, vec codec.FeatureVector, result *api.ScoreResult) {
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, Key(vec), data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", map[string]interface{}{"error": err.Error()})
	}
}
