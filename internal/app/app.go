package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	apphttp "github.com/yungbote/buildcare-backend/internal/http"
	"github.com/yungbote/buildcare-backend/internal/observability"
	"github.com/yungbote/buildcare-backend/internal/platform/db"
	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Log      *logger.Logger
	DB       *db.Service
	Cfg      Config
	Repos    Repos
	Services Services
	Clients  Clients
	Metrics  *observability.Metrics
	Server   *apphttp.Server

	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

// NewLogger builds the process logger for the configured mode.
func NewLogger(cfg Config) (*logger.Logger, error) {
	log, err := logger.NewWithOptions(logger.Options{
		Mode:             cfg.LogMode,
		DisableRedaction: !cfg.LogRedact,
		HashSalt:         cfg.LogHashSalt,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

// OpenDB connects and migrates every table.
func OpenDB(log *logger.Logger, cfg Config) (*db.Service, error) {
	if strings.TrimSpace(cfg.DBDSN) == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}
	svc, err := db.Open(log, db.Options{
		Driver:       cfg.DBDriver,
		DSN:          cfg.DBDSN,
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
		ConnMaxLife:  cfg.DBConnMaxLife,
		LogSQL:       cfg.DBLogSQL,
	})
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := svc.AutoMigrateAll(); err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return svc, nil
}

func New(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		Enabled:     cfg.OtelEnabled,
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		Version:     cfg.Version,
		Endpoint:    cfg.OtelEndpoint,
		Insecure:    cfg.OtelInsecure,
		Headers:     cfg.OtelHeaders,
		SampleRatio: cfg.OtelSampleRatio,
	})
	metrics := observability.Init(log, observability.MetricsConfig{
		Enabled:        cfg.MetricsEnabled,
		ScrapeInterval: cfg.MetricsScrapeInterval,
	})

	store, err := OpenDB(log, cfg)
	if err != nil {
		_ = otelShutdown(ctx)
		return nil, err
	}

	clientset, err := wireClients(log, cfg)
	if err != nil {
		_ = store.Close()
		_ = otelShutdown(ctx)
		return nil, err
	}

	reposet := wireRepos(store.DB(), log)
	serviceset := wireServices(store.DB(), log, cfg, reposet, clientset)
	handlerset := wireHandlers(log, serviceset, store)
	middleware := wireMiddleware(log, serviceset)

	// A dedicated metrics listener takes /metrics off the API router.
	routed := metrics
	if cfg.MetricsAddr != "" {
		routed = nil
	}
	server := apphttp.NewServer(cfg.Addr(), wireRouterConfig(log, cfg, routed, handlerset, middleware))

	return &App{
		Log:          log,
		DB:           store,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Clients:      clientset,
		Metrics:      metrics,
		Server:       server,
		otelShutdown: otelShutdown,
	}, nil
}

// Start launches the background collectors. It is idempotent.
func (a *App) Start(ctx context.Context) {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	if a.Metrics != nil {
		a.Metrics.StartServer(ctx, a.Log, a.Cfg.MetricsAddr)
		a.Metrics.StartDBCollector(ctx, a.Log, a.DB.DB())
		a.Metrics.StartRedisCollector(ctx, a.Log, a.Cfg.RedisAddr, a.Cfg.RedisPassword)
	}
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Start(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Log.Info("HTTP server listening", "addr", a.Cfg.Addr())
		return a.Server.Run()
	})
	g.Go(func() error {
		<-gctx.Done()
		a.Log.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.Server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.Clients.Close()
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Log.Warn("database close failed", "error", err)
		}
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		_ = a.otelShutdown(ctx)
		cancel()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
