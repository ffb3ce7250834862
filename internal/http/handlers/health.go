package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// PingFunc reports whether a backing dependency answers.
type PingFunc func(ctx context.Context) error

type HealthHandler struct {
	pings map[string]PingFunc
}

// NewHealthHandler takes the named dependencies readiness depends on.
func NewHealthHandler(pings map[string]PingFunc) *HealthHandler {
	return &HealthHandler{pings: pings}
}

func (h *HealthHandler) Healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HealthHandler) Readyz(ctx *gin.Context) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), time.Second)
	defer cancel()

	checks := make(gin.H, len(h.pings))
	ready := true

	for name, ping := range h.pings {
		if err := ping(cctx); err != nil {
			checks[name] = "down"
			ready = false
			continue
		}
		checks[name] = "up"
	}

	if !ready {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "checks": checks})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ready", "checks": checks})
}
