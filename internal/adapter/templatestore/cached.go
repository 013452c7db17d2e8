package templatestore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"resume-studio/internal/domain"
	"resume-studio/internal/metrics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheNamespace = "templates"

// Source is anything that can look templates up.
type Source interface {
	Get(ctx context.Context, id string) (*domain.Template, error)
	List(ctx context.Context) ([]domain.Template, error)
}

// Cached is a read-through redis cache in front of another source. Redis
// failures are logged and fall through to the source.
type Cached struct {
	next   Source
	rdb    redis.Cmdable
	ttl    time.Duration
	logger *zap.Logger
}

func NewCached(next Source, rdb redis.Cmdable, ttl time.Duration, logger *zap.Logger) *Cached {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Cached{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func (c *Cached) Get(ctx context.Context, id string) (*domain.Template, error) {
	key := cacheNamespace + ":" + id
	var tpl domain.Template
	if c.load(ctx, key, &tpl) {
		return &tpl, nil
	}
	got, err := c.next.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, got)
	return got, nil
}

func (c *Cached) List(ctx context.Context) ([]domain.Template, error) {
	key := cacheNamespace + ":index"
	var list []domain.Template
	if c.load(ctx, key, &list) {
		return list, nil
	}
	got, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, got)
	return got, nil
}

// Invalidate drops the cached copy of id and the cached index.
func (c *Cached) Invalidate(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, cacheNamespace+":"+id, cacheNamespace+":index").Err()
}

func (c *Cached) load(ctx context.Context, key string, into interface{}) bool {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("template cache read failed", zap.String("key", key), zap.Error(err))
		}
		metrics.TemplateFetches.WithLabelValues("cache", "miss").Inc()
		return false
	}
	if err := json.Unmarshal(raw, into); err != nil {
		c.logger.Warn("template cache entry corrupt", zap.String("key", key), zap.Error(err))
		metrics.TemplateFetches.WithLabelValues("cache", "miss").Inc()
		return false
	}
	metrics.TemplateFetches.WithLabelValues("cache", "hit").Inc()
	return true
}

func (c *Cached) store(ctx context.Context, key string, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		c.logger.Warn("template cache write failed", zap.String("key", key), zap.Error(err))
	}
}
