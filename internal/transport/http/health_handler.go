package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	service   DataServiceInterface
	logger    *slog.Logger
	startedAt time.Time
	version   string
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(service DataServiceInterface, logger *slog.Logger, version string) *HealthHandler {
	return &HealthHandler{
		service:   service,
		logger:    logger.With(slog.String("component", "health_handler")),
		startedAt: time.Now(),
		version:   version,
	}
}

// Health handles GET /healthz.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	storeVersion, err := h.service.StoreVersion(r.Context())
	status := "ok"
	if err != nil {
		// The service still answers requests; storage trouble surfaces
		// per-request, so report degraded rather than failing liveness.
		status = "degraded"
		h.logger.WarnContext(r.Context(), "storage version unavailable",
			slog.String("error", err.Error()))
	}

	render.JSON(w, r, map[string]interface{}{
		"status":         status,
		"version":        h.version,
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
		"store_version":  storeVersion,
	})
}
