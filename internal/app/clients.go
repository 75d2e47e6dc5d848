package app

import (
	"fmt"
	"strings"

	"github.com/yungbote/buildcare-backend/internal/clients/redis"
	"github.com/yungbote/buildcare-backend/internal/clients/stripe"
	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

type Clients struct {
	CouponCache redis.CouponCache
	Payments    stripe.Gateway
}

// wireClients builds the optional external clients. Without REDIS_ADDR the
// coupon resolver reads straight from the database.
func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	var cache redis.CouponCache
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		c, err := redis.NewCouponCache(log, redis.CouponCacheConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.CouponCacheTTL,
		})
		if err != nil {
			return Clients{}, fmt.Errorf("init redis coupon cache: %w", err)
		}
		cache = c
	}

	gateway, err := wireGateway(log, cfg)
	if err != nil {
		if cache != nil {
			_ = cache.Close()
		}
		return Clients{}, err
	}

	return Clients{CouponCache: cache, Payments: gateway}, nil
}

// wireGateway picks the payment gateway. PAYMENT_GATEWAY=fake forces the
// in-process gateway; otherwise a missing Stripe key is only tolerated in a
// local environment.
func wireGateway(log *logger.Logger, cfg Config) (stripe.Gateway, error) {
	key := strings.TrimSpace(cfg.StripeSecretKey)
	switch mode := strings.ToLower(strings.TrimSpace(cfg.PaymentGateway)); mode {
	case "fake":
		log.Warn("PAYMENT_GATEWAY=fake; using in-process payment gateway", "env", cfg.Environment)
		return stripe.NewFakeGateway(), nil
	case "stripe":
		if key == "" {
			return nil, fmt.Errorf("PAYMENT_GATEWAY=stripe requires STRIPE_SECRET_KEY")
		}
	case "":
		if key == "" {
			if !cfg.LocalEnv() {
				return nil, fmt.Errorf("STRIPE_SECRET_KEY is required when APP_ENV=%s", cfg.Environment)
			}
			log.Warn("STRIPE_SECRET_KEY not set; using in-process payment gateway", "env", cfg.Environment)
			return stripe.NewFakeGateway(), nil
		}
	default:
		return nil, fmt.Errorf("unknown PAYMENT_GATEWAY %q", mode)
	}
	g, err := stripe.NewGateway(log, key)
	if err != nil {
		return nil, fmt.Errorf("init stripe gateway: %w", err)
	}
	return g, nil
}

func (c Clients) Close() {
	if c.CouponCache != nil {
		_ = c.CouponCache.Close()
	}
}
