package http

import (
	"net/http"

	"github.com/agriwatch/farmportal/internal/portal/service"
	"github.com/agriwatch/farmportal/pkg/httpx"
)

// AnalyticsHandler serves the admin dashboard rollup.
type AnalyticsHandler struct {
	AnalyticsService *service.AnalyticsService
}

func (h *AnalyticsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	stats, err := h.AnalyticsService.Stats(r.Context())
	if err != nil {
		internalError(w, r, "analytics stats failed", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, stats)
}
