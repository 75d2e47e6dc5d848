package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/buildcare-backend/internal/platform/ctxutil"
	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

// RequestLogger writes one access line per request after the handler chain
// has run, so the caller identity and handler errors are known.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		status := c.Writer.Status()
		fields := append([]interface{}{
			"method", c.Request.Method,
			"route", routeLabel(c),
			"status", status,
			"bytes", c.Writer.Size(),
			"latency", time.Since(start),
		}, ctxutil.CorrelationFrom(ctx).Fields()...)
		if id := ctxutil.GetIdentity(ctx); id != nil {
			fields = append(fields, "email", id.Email)
		}
		if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
			fields = append(fields, "errors", errs.Errors())
		}

		logAt(log, status)("request served", fields...)
	}
}

func logAt(log *logger.Logger, status int) func(string, ...interface{}) {
	switch {
	case status >= 500:
		return log.Error
	case status >= 400:
		return log.Warn
	}
	return log.Info
}

// routeLabel prefers the registered pattern so path params do not leak into
// logs and metric labels.
func routeLabel(c *gin.Context) string {
	if r := c.FullPath(); r != "" {
		return r
	}
	return "unmatched"
}
