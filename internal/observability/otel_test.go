package observability

import (
	"context"
	"testing"

	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

func TestClampRatio(t *testing.T) {
	cases := map[float64]float64{-1: 0, 0: 0, 0.25: 0.25, 1: 1, 7: 1}
	for in, want := range cases {
		if got := clampRatio(in); got != want {
			t.Fatalf("clampRatio(%v): want=%v got=%v", in, want, got)
		}
	}
}

func TestInitOTelDisabledReturnsNoopShutdown(t *testing.T) {
	shutdown := InitOTel(context.Background(), logger.Nop(), OtelConfig{})
	if shutdown == nil {
		t.Fatalf("shutdown: want non-nil")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestExporterName(t *testing.T) {
	if got := exporterName(OtelConfig{}); got != "stdout" {
		t.Fatalf("exporterName: want=stdout got=%s", got)
	}
	if got := exporterName(OtelConfig{Endpoint: "collector:4318"}); got != "otlphttp" {
		t.Fatalf("exporterName: want=otlphttp got=%s", got)
	}
}
