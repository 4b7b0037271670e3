package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/clvpredictor/internal/server/http/dto"
)

const healthCheckTimeout = 2 * time.Second

// HealthHandler reports liveness together with the input store's reachability.
type HealthHandler struct {
	checker HealthChecker
	logger  *slog.Logger
}

// NewHealthHandler constructs HealthHandler.
func NewHealthHandler(checker HealthChecker, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{checker: checker, logger: logger}
}

// Check handles GET /healthz.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.checker.Ping(ctx); err != nil {
		h.logger.Warn("input store health check failed", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, dto.StatusResponse{Status: "unavailable"})
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: "ok"})
}
