package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger reports storage reachability.
type Pinger interface {
	Ping() error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler { return &HealthHandler{db: db} }

// GET /
func (h *HealthHandler) Home(c *gin.Context) {
	c.String(http.StatusOK, "hello from home")
}

// GET /healthcheck
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			c.String(http.StatusServiceUnavailable, "db unavailable")
			return
		}
	}
	c.String(http.StatusOK, "ok")
}
