package observability

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"

	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

type OtelConfig struct {
	Enabled     bool
	ServiceName string
	Environment string
	Version     string

	// Endpoint is an OTLP/HTTP host:port. Empty exports to stdout.
	Endpoint    string
	Insecure    bool
	Headers     map[string]string
	SampleRatio float64
}

var (
	tracingOnce     sync.Once
	tracingShutdown = func(context.Context) error { return nil }
)

// InitOTel installs the global tracer provider and W3C propagators once per
// process. The returned shutdown func is always callable.
func InitOTel(ctx context.Context, log *logger.Logger, cfg OtelConfig) func(context.Context) error {
	tracingOnce.Do(func() {
		if !cfg.Enabled {
			return
		}
		tp, err := newTracerProvider(ctx, cfg)
		if err != nil {
			log.Warn("tracing disabled", "error", err)
			return
		}
		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
		tracingShutdown = tp.Shutdown
		log.Info("tracing enabled",
			"service", serviceName(cfg),
			"exporter", exporterName(cfg),
			"sample_ratio", clampRatio(cfg.SampleRatio),
		)
	})
	return tracingShutdown
}

func newTracerProvider(ctx context.Context, cfg OtelConfig) (*sdktrace.TracerProvider, error) {
	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceNameKey.String(serviceName(cfg)),
		semconv.ServiceVersionKey.String(cfg.Version),
		attribute.String("deployment.environment", cfg.Environment),
	))
	if err != nil {
		return nil, fmt.Errorf("otel resource: %w", err)
	}
	exp, err := newExporter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("otel exporter: %w", err)
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(clampRatio(cfg.SampleRatio)))),
		sdktrace.WithBatcher(exp, sdktrace.WithBatchTimeout(5*time.Second)),
	), nil
}

func newExporter(ctx context.Context, cfg OtelConfig) (sdktrace.SpanExporter, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	}
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(strings.TrimSpace(cfg.Endpoint))}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	if len(cfg.Headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(cfg.Headers))
	}
	return otlptracehttp.New(ctx, opts...)
}

func serviceName(cfg OtelConfig) string {
	if s := strings.TrimSpace(cfg.ServiceName); s != "" {
		return s
	}
	return "buildcare"
}

func exporterName(cfg OtelConfig) string {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return "stdout"
	}
	return "otlphttp"
}

func clampRatio(r float64) float64 {
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	}
	return r
}
