package transport

import (
	"net/http"

	"crm-backend/internal/middleware"
	"crm-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ReportHandler exposes aggregated CRM statistics.
type ReportHandler struct {
	reportService service.ReportService
	logger        *zap.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/reports/summary", h.Summary)
}

// Summary returns customer/order counts and total revenue
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportService.Summary(r.Context())
	if err != nil {
		h.logger.Error("Failed to build report summary", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to build report summary")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, summary)
}
