package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/buildcare-backend/internal/observability"
)

func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		m.ApiInflightInc()
		began := time.Now()
		defer func() {
			m.ApiInflightDec()
			m.ObserveAPI(c.Request.Method, routeLabel(c), strconv.Itoa(c.Writer.Status()), time.Since(began))
		}()
		c.Next()
	}
}
