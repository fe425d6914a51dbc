package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/forkcast/forkcast/internal/providers"
)

type HealthHandler struct {
	logger   *logrus.Logger
	registry *providers.Registry
}

func NewHealthHandler(logger *logrus.Logger, registry *providers.Registry) *HealthHandler {
	return &HealthHandler{
		logger:   logger,
		registry: registry,
	}
}

// Check reports overall service health plus the per-provider probe status.
// Degraded upstreams keep the service operational, so the endpoint only goes
// non-200 when every provider is down.
func (h *HealthHandler) Check(c *gin.Context) {
	statuses := h.registry.Snapshot()

	healthy := 0
	for _, s := range statuses {
		if s.Healthy {
			healthy++
		}
	}

	status := "healthy"
	httpStatus := http.StatusOK
	switch {
	case len(statuses) > 0 && healthy == 0:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	case healthy < len(statuses):
		status = "degraded"
	}

	c.JSON(httpStatus, gin.H{
		"status":    status,
		"providers": statuses,
	})
}
