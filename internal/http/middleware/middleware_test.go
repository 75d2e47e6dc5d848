package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/buildcare-backend/internal/platform/ctxutil"
	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

func init() { gin.SetMode(gin.TestMode) }

func preflight(t *testing.T, configured []string, origin string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.Use(CORS(configured))
	r.POST("/payments", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/payments", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCORSDefaultsToLocalDevServers(t *testing.T) {
	rec := preflight(t, nil, "http://localhost:5173")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("allow-origin: want=http://localhost:5173 got=%q", got)
	}
	rec = preflight(t, nil, "https://buildcare.example")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("allow-origin: want empty got=%q", got)
	}
}

func TestCORSConfiguredOriginsReplaceDefaults(t *testing.T) {
	prod := []string{"https://buildcare.example"}
	if got := preflight(t, prod, "https://buildcare.example").Header().Get("Access-Control-Allow-Origin"); got != "https://buildcare.example" {
		t.Fatalf("allow-origin: got=%q", got)
	}
	if got := preflight(t, prod, "http://localhost:5173").Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("dev origin leaked: got=%q", got)
	}
}

func TestAttachTraceContextHonorsInboundRequestID(t *testing.T) {
	var seen ctxutil.Correlation
	r := gin.New()
	r.Use(AttachTraceContext(), RequestLogger(logger.Nop()))
	r.GET("/", func(c *gin.Context) {
		seen = ctxutil.CorrelationFrom(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "req-42")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if seen.RequestID != "req-42" {
		t.Fatalf("request id: want=req-42 got=%q", seen.RequestID)
	}
	if seen.TraceID == "" {
		t.Fatalf("trace id: want generated id")
	}
	if rec.Header().Get(HeaderRequestID) != "req-42" || rec.Header().Get(HeaderTraceID) != seen.TraceID {
		t.Fatalf("echo headers: got=%v", rec.Header())
	}
}

func TestMetricsNilCollectorPassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(Metrics(nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusTeapot) })
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status: want=%d got=%d", http.StatusTeapot, rec.Code)
	}
}
