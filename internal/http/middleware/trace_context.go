package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/buildcare-backend/internal/platform/ctxutil"
)

const (
	HeaderTraceID   = "X-Trace-Id"
	HeaderRequestID = "X-Request-Id"
)

// AttachTraceContext stamps every request with a Correlation and echoes the
// ids back as response headers.
func AttachTraceContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span := trace.SpanFromContext(ctx)

		corr := ctxutil.Correlation{
			RequestID: firstNonEmpty(c.GetHeader(HeaderRequestID), uuid.NewString()),
			TraceID:   firstNonEmpty(c.GetHeader(HeaderTraceID), spanTraceID(span), uuid.NewString()),
		}
		span.SetAttributes(attribute.String("http.request_id", corr.RequestID))

		c.Request = c.Request.WithContext(ctxutil.WithCorrelation(ctx, corr))
		c.Header(HeaderTraceID, corr.TraceID)
		c.Header(HeaderRequestID, corr.RequestID)
		c.Next()
	}
}

func spanTraceID(span trace.Span) string {
	if sc := span.SpanContext(); sc.HasTraceID() {
		return sc.TraceID().String()
	}
	return ""
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
