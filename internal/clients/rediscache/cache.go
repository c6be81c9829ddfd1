package rediscache

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/civiclens/civitas-backend/internal/logger"
)

// Cache holds external-signal values (sentiment, media presence) between
// recompute passes so repeated batch runs do not re-bill every AI call.
type Cache interface {
	GetFloat(ctx context.Context, key string) (float64, bool)
	SetFloat(ctx context.Context, key string, val float64, ttl time.Duration)
	Close() error
}

type cache struct {
	log *logger.Logger
	rdb *goredis.Client
}

func NewCache(log *logger.Logger) (Cache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &cache{
		log: log.With("service", "RedisSignalCache"),
		rdb: rdb,
	}, nil
}

func (c *cache) GetFloat(ctx context.Context, key string) (float64, bool) {
	if c == nil || c.rdb == nil {
		return 0, false
	}
	raw, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return 0, false
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return val, true
}

// SetFloat is best effort; a cache write failure never surfaces past a log.
func (c *cache) SetFloat(ctx context.Context, key string, val float64, ttl time.Duration) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, strconv.FormatFloat(val, 'f', -1, 64), ttl).Err(); err != nil {
		c.log.Warn("Signal cache write failed", "key", key, "error", err)
	}
}

func (c *cache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
