package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/buildcare-backend/internal/domain"
	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

// CouponCache is a read-through cache of coupons keyed by code. Misses and
// cache failures fall back to the database; the cache is never authoritative.
type CouponCache interface {
	Get(ctx context.Context, code string) (*domain.Coupon, bool, error)
	Set(ctx context.Context, c *domain.Coupon) error
	Invalidate(ctx context.Context, code string) error
	Close() error
}

type CouponCacheConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	TTL       time.Duration
}

type couponCache struct {
	log    *logger.Logger
	rdb    goredis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewCouponCache(log *logger.Logger, cfg CouponCacheConfig) (CouponCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis addr")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return newCouponCache(log, rdb, cfg), nil
}

func newCouponCache(log *logger.Logger, rdb goredis.UniversalClient, cfg CouponCacheConfig) *couponCache {
	prefix := strings.TrimSpace(cfg.KeyPrefix)
	if prefix == "" {
		prefix = "buildcare:coupon:"
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &couponCache{
		log:    log.With("client", "RedisCouponCache"),
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *couponCache) key(code string) string {
	return c.prefix + strings.ToUpper(strings.TrimSpace(code))
}

func (c *couponCache) Get(ctx context.Context, code string) (*domain.Coupon, bool, error) {
	if c == nil || c.rdb == nil {
		return nil, false, nil
	}
	raw, err := c.rdb.Get(ctx, c.key(code)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var out domain.Coupon
	if err := json.Unmarshal(raw, &out); err != nil {
		// Corrupt entry; drop it so the next read repopulates.
		_ = c.rdb.Del(ctx, c.key(code)).Err()
		return nil, false, nil
	}
	return &out, true, nil
}

func (c *couponCache) Set(ctx context.Context, cp *domain.Coupon) error {
	if c == nil || c.rdb == nil || cp == nil {
		return nil
	}
	raw, err := json.Marshal(cp)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(cp.Code), raw, c.ttl).Err()
}

func (c *couponCache) Invalidate(ctx context.Context, code string) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, c.key(code)).Err()
}

func (c *couponCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
