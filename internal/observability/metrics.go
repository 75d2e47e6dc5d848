package observability

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

// Lifecycle operations recorded by the services.
const (
	OpAgreementSubmit = "agreement_submit"
	OpAdjudicate      = "adjudicate"
	OpCouponApply     = "coupon_apply"
	OpSettle          = "settle"
)

type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge
	lifecycle   *CounterVec
	couponCache *CounterVec
	dbStats     *GaugeVec
	redisUp     *Gauge
	redisPing   *Gauge

	scrapeEvery time.Duration
}

type MetricsConfig struct {
	Enabled bool
	// ScrapeInterval paces the DB pool and redis collectors.
	ScrapeInterval time.Duration
}

var (
	initOnce sync.Once
	instance *Metrics
)

// Current returns the process-wide metrics, or nil when disabled. Every
// method is safe on a nil receiver.
func Current() *Metrics {
	return instance
}

// Init builds the process-wide collector set once. It returns nil when
// metrics are disabled.
func Init(log *logger.Logger, cfg MetricsConfig) *Metrics {
	if !cfg.Enabled {
		return nil
	}
	initOnce.Do(func() {
		instance = NewMetrics()
		if cfg.ScrapeInterval > 0 {
			instance.scrapeEvery = cfg.ScrapeInterval
		}
		if log != nil {
			log.Info("metrics enabled", "scrape_interval", instance.scrapeEvery)
		}
	})
	return instance
}

// NewMetrics builds an unregistered collector set.
func NewMetrics() *Metrics {
	return &Metrics{
		apiRequests: NewCounterVec("buildcare_api_requests_total", "HTTP requests by method, route and status", []string{"method", "route", "status"}),
		apiLatency:  NewHistogramVec("buildcare_api_request_duration_seconds", "HTTP request latency", []string{"method", "route"}, nil),
		apiInflight: NewGauge("buildcare_api_inflight_requests", "HTTP requests in flight"),
		lifecycle:   NewCounterVec("buildcare_lifecycle_events_total", "Agreement, contract and payment transitions by outcome", []string{"operation", "outcome"}),
		couponCache: NewCounterVec("buildcare_coupon_cache_total", "Coupon cache lookups by result", []string{"result"}),
		dbStats:     NewGaugeVec("buildcare_db_pool", "database/sql pool statistics", []string{"stat"}),
		redisUp:     NewGauge("buildcare_redis_up", "1 when the last redis ping succeeded"),
		redisPing:   NewGauge("buildcare_redis_ping_seconds", "Latency of the last redis ping"),
		scrapeEvery: 10 * time.Second,
	}
}

func (m *Metrics) StartServer(ctx context.Context, log *logger.Logger, addr string) {
	if m == nil {
		return
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           http.HandlerFunc(m.WriteHTTP),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = srv.Shutdown(shutdownCtx)
		cancel()
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if log != nil {
				log.Error("metrics server failed", "error", err, "addr", addr)
			}
		}
	}()
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, c := range []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.lifecycle,
		m.couponCache,
		m.dbStats,
		m.redisUp,
		m.redisPing,
	} {
		if err := c.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route)
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

// IncLifecycle counts one lifecycle transition. outcome is "ok" or an
// error kind such as "conflict".
func (m *Metrics) IncLifecycle(operation, outcome string) {
	if m == nil {
		return
	}
	if outcome == "" {
		outcome = "ok"
	}
	m.lifecycle.Inc(operation, outcome)
}

func (m *Metrics) IncCouponCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.couponCache.Inc("hit")
		return
	}
	m.couponCache.Inc("miss")
}

func (m *Metrics) StartDBCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	interval := m.scrapeEvery
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					if log != nil {
						log.Warn("metrics: db stats unavailable", "error", err)
					}
					continue
				}
				stats := sqlDB.Stats()
				m.dbStats.Set(float64(stats.OpenConnections), "open_connections")
				m.dbStats.Set(float64(stats.InUse), "in_use")
				m.dbStats.Set(float64(stats.Idle), "idle")
				m.dbStats.Set(float64(stats.WaitCount), "wait_count")
				m.dbStats.Set(stats.WaitDuration.Seconds(), "wait_duration_seconds")
				m.dbStats.Set(float64(stats.MaxOpenConnections), "max_open_connections")
			}
		}
	}()
}

func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, addr, password string) {
	if m == nil {
		return
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return
	}
	interval := m.scrapeEvery
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				_ = rdb.Close()
				return
			case <-ticker.C:
				start := time.Now()
				if err := rdb.Ping(ctx).Err(); err != nil {
					m.redisUp.Set(0)
					if log != nil {
						log.Warn("metrics: redis ping failed", "error", err)
					}
					continue
				}
				m.redisUp.Set(1)
				m.redisPing.Set(time.Since(start).Seconds())
			}
		}
	}()
}

// ---- Prometheus text exposition ----

type CounterVec struct {
	name       string
	help       string
	labelNames []string
	mu         sync.RWMutex
	values     map[string]float64
}

func NewCounterVec(name, help string, labels []string) *CounterVec {
	return &CounterVec{name: name, help: help, labelNames: labels, values: map[string]float64{}}
}

func (c *CounterVec) Inc(values ...string) {
	if c == nil {
		return
	}
	lbl := labelString(c.labelNames, values)
	c.mu.Lock()
	c.values[lbl]++
	c.mu.Unlock()
}

// Value returns the current count for one label set.
func (c *CounterVec) Value(values ...string) float64 {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values[labelString(c.labelNames, values)]
}

func (c *CounterVec) WritePrometheus(w io.Writer) error {
	if c == nil {
		return nil
	}
	if err := writeHeader(w, c.name, c.help, "counter"); err != nil {
		return err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, k := range sortedKeys(c.values) {
		if _, err := fmt.Fprintf(w, "%s%s %g\n", c.name, k, c.values[k]); err != nil {
			return err
		}
	}
	return nil
}

type Gauge struct {
	name string
	help string
	mu   sync.RWMutex
	val  float64
}

func NewGauge(name, help string) *Gauge {
	return &Gauge{name: name, help: help}
}

func (g *Gauge) Set(v float64) {
	if g == nil {
		return
	}
	g.mu.Lock()
	g.val = v
	g.mu.Unlock()
}

func (g *Gauge) Inc() { g.add(1) }
func (g *Gauge) Dec() { g.add(-1) }

func (g *Gauge) add(v float64) {
	if g == nil {
		return
	}
	g.mu.Lock()
	g.val += v
	g.mu.Unlock()
}

func (g *Gauge) WritePrometheus(w io.Writer) error {
	if g == nil {
		return nil
	}
	if err := writeHeader(w, g.name, g.help, "gauge"); err != nil {
		return err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, err := fmt.Fprintf(w, "%s %g\n", g.name, g.val)
	return err
}

type GaugeVec struct {
	name       string
	help       string
	labelNames []string
	mu         sync.RWMutex
	values     map[string]float64
}

func NewGaugeVec(name, help string, labels []string) *GaugeVec {
	return &GaugeVec{name: name, help: help, labelNames: labels, values: map[string]float64{}}
}

func (g *GaugeVec) Set(v float64, values ...string) {
	if g == nil {
		return
	}
	lbl := labelString(g.labelNames, values)
	g.mu.Lock()
	g.values[lbl] = v
	g.mu.Unlock()
}

func (g *GaugeVec) WritePrometheus(w io.Writer) error {
	if g == nil {
		return nil
	}
	if err := writeHeader(w, g.name, g.help, "gauge"); err != nil {
		return err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, k := range sortedKeys(g.values) {
		if _, err := fmt.Fprintf(w, "%s%s %g\n", g.name, k, g.values[k]); err != nil {
			return err
		}
	}
	return nil
}

type HistogramVec struct {
	name       string
	help       string
	labelNames []string
	buckets    []float64
	mu         sync.RWMutex
	values     map[string]*histogram
}

type histogram struct {
	counts []uint64
	sum    float64
	total  uint64
}

func NewHistogramVec(name, help string, labels []string, buckets []float64) *HistogramVec {
	if len(buckets) == 0 {
		buckets = []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
	}
	return &HistogramVec{name: name, help: help, labelNames: labels, buckets: buckets, values: map[string]*histogram{}}
}

func (h *HistogramVec) Observe(v float64, values ...string) {
	if h == nil {
		return
	}
	lbl := labelString(h.labelNames, values)
	h.mu.Lock()
	defer h.mu.Unlock()
	hist, ok := h.values[lbl]
	if !ok {
		hist = &histogram{counts: make([]uint64, len(h.buckets))}
		h.values[lbl] = hist
	}
	hist.sum += v
	hist.total++
	for i, b := range h.buckets {
		if v <= b {
			hist.counts[i]++
		}
	}
}

func (h *HistogramVec) WritePrometheus(w io.Writer) error {
	if h == nil {
		return nil
	}
	if err := writeHeader(w, h.name, h.help, "histogram"); err != nil {
		return err
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	keys := make([]string, 0, len(h.values))
	for k := range h.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := h.values[k]
		for i, b := range h.buckets {
			if _, err := fmt.Fprintf(w, "%s_bucket%s %d\n", h.name, withLe(k, fmt.Sprintf("%g", b)), v.counts[i]); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s_bucket%s %d\n", h.name, withLe(k, "+Inf"), v.total); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s_sum%s %g\n", h.name, k, v.sum); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s_count%s %d\n", h.name, k, v.total); err != nil {
			return err
		}
	}
	return nil
}

func writeHeader(w io.Writer, name, help, kind string) error {
	if _, err := fmt.Fprintf(w, "# HELP %s %s\n", name, help); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "# TYPE %s %s\n", name, kind)
	return err
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func labelString(names []string, values []string) string {
	if len(names) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("{")
	for i, name := range names {
		if i > 0 {
			b.WriteString(",")
		}
		val := "unknown"
		if i < len(values) {
			val = values[i]
		}
		b.WriteString(name)
		b.WriteString("=\"")
		b.WriteString(escapeLabel(val))
		b.WriteString("\"")
	}
	b.WriteString("}")
	return b.String()
}

func escapeLabel(v string) string {
	v = strings.ReplaceAll(v, "\\", "\\\\")
	v = strings.ReplaceAll(v, "\"", "\\\"")
	v = strings.ReplaceAll(v, "\n", "\\n")
	return v
}

func withLe(labels string, le string) string {
	le = escapeLabel(le)
	if labels == "" || labels == "{}" {
		return "{le=\"" + le + "\"}"
	}
	return strings.TrimSuffix(labels, "}") + ",le=\"" + le + "\"}"
}
