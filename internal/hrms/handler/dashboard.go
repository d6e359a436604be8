package handler

import (
	"net/http"

	"github.com/hrmslite/hrms-backend/internal/hrms/service"
	"github.com/hrmslite/hrms-backend/pkg/httputil"
	"github.com/hrmslite/hrms-backend/pkg/logger"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	service *service.DashboardService
	logger  *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(svc *service.DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: svc,
		logger:  log,
	}
}

// GetStats returns the dashboard rollup
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		fail(h.logger, w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, stats)
}
