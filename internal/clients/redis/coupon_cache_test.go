package redis

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/buildcare-backend/internal/domain"
	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

// memStore answers GET/SET/DEL from a map inside a go-redis process hook, so
// the client never dials.
type memStore struct {
	mu   sync.Mutex
	vals map[string]string
	ttls map[string]time.Duration
}

func newMemStore() *memStore {
	return &memStore{vals: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memStore) DialHook(next goredis.DialHook) goredis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, fmt.Errorf("memStore: unexpected dial to %s", addr)
	}
}

func (m *memStore) ProcessPipelineHook(next goredis.ProcessPipelineHook) goredis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []goredis.Cmder) error {
		return fmt.Errorf("memStore: pipelines unsupported")
	}
}

func (m *memStore) ProcessHook(next goredis.ProcessHook) goredis.ProcessHook {
	return func(ctx context.Context, cmd goredis.Cmder) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		args := cmd.Args()
		switch c := cmd.(type) {
		case *goredis.StringCmd:
			v, ok := m.vals[fmt.Sprint(args[1])]
			if !ok {
				c.SetErr(goredis.Nil)
				return goredis.Nil
			}
			c.SetVal(v)
		case *goredis.StatusCmd:
			key := fmt.Sprint(args[1])
			switch v := args[2].(type) {
			case []byte:
				m.vals[key] = string(v)
			default:
				m.vals[key] = fmt.Sprint(v)
			}
			delete(m.ttls, key)
			if len(args) >= 5 {
				var n int64
				fmt.Sscan(fmt.Sprint(args[4]), &n)
				switch strings.ToLower(fmt.Sprint(args[3])) {
				case "ex":
					m.ttls[key] = time.Duration(n) * time.Second
				case "px":
					m.ttls[key] = time.Duration(n) * time.Millisecond
				}
			}
			c.SetVal("OK")
		case *goredis.IntCmd:
			var n int64
			for _, a := range args[1:] {
				k := fmt.Sprint(a)
				if _, ok := m.vals[k]; ok {
					delete(m.vals, k)
					delete(m.ttls, k)
					n++
				}
			}
			c.SetVal(n)
		default:
			err := fmt.Errorf("memStore: unsupported command %s", cmd.Name())
			c.SetErr(err)
			return err
		}
		return nil
	}
}

func newTestCache(t *testing.T, cfg CouponCacheConfig) (*couponCache, *memStore) {
	t.Helper()
	store := newMemStore()
	rdb := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"})
	rdb.AddHook(store)
	t.Cleanup(func() { _ = rdb.Close() })
	return newCouponCache(logger.Nop(), rdb, cfg), store
}

func TestCouponCacheKeyNormalizesCode(t *testing.T) {
	c, _ := newTestCache(t, CouponCacheConfig{})
	if got := c.key("  half10 "); got != "buildcare:coupon:HALF10" {
		t.Fatalf("key: want=buildcare:coupon:HALF10 got=%s", got)
	}
	custom, _ := newTestCache(t, CouponCacheConfig{KeyPrefix: "bc:"})
	if got := custom.key("x"); got != "bc:X" {
		t.Fatalf("key: want=bc:X got=%s", got)
	}
}

func TestCouponCacheRoundTripIgnoresCase(t *testing.T) {
	c, _ := newTestCache(t, CouponCacheConfig{})
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "SAVE5"); err != nil || ok {
		t.Fatalf("Get on empty cache: ok=%v err=%v", ok, err)
	}
	if err := c.Set(ctx, &domain.Coupon{Code: "Save5", DiscountPercent: 5}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := c.Get(ctx, "save5")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.DiscountPercent != 5 {
		t.Fatalf("DiscountPercent: want=5 got=%v", got.DiscountPercent)
	}

	if err := c.Invalidate(ctx, "SAVE5"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "save5"); ok {
		t.Fatalf("Get after Invalidate: still cached")
	}
}

func TestCouponCacheSetAppliesTTL(t *testing.T) {
	c, store := newTestCache(t, CouponCacheConfig{})
	if err := c.Set(context.Background(), &domain.Coupon{Code: "a", DiscountPercent: 1}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := store.ttls["buildcare:coupon:A"]; got != 10*time.Minute {
		t.Fatalf("default ttl: want=10m got=%s", got)
	}

	short, store := newTestCache(t, CouponCacheConfig{TTL: 30 * time.Second})
	if err := short.Set(context.Background(), &domain.Coupon{Code: "b", DiscountPercent: 1}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := store.ttls["buildcare:coupon:B"]; got != 30*time.Second {
		t.Fatalf("configured ttl: want=30s got=%s", got)
	}
}

func TestCouponCacheDropsCorruptEntry(t *testing.T) {
	c, store := newTestCache(t, CouponCacheConfig{})
	store.vals["buildcare:coupon:BAD"] = "{not json"

	got, ok, err := c.Get(context.Background(), "bad")
	if err != nil || ok || got != nil {
		t.Fatalf("Get corrupt: want miss got=%v ok=%v err=%v", got, ok, err)
	}
	if _, still := store.vals["buildcare:coupon:BAD"]; still {
		t.Fatalf("corrupt entry not deleted")
	}
}

func TestNilCouponCacheIsNoop(t *testing.T) {
	var c *couponCache
	ctx := context.Background()
	if _, ok, err := c.Get(ctx, "x"); ok || err != nil {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if err := c.Set(ctx, &domain.Coupon{Code: "x"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Invalidate(ctx, "x"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
}
