package handlers

import (
	"net/http"

	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/service"
)

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// List is the moderation queue; the router gates it on the MODERATOR role.
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	reports, err := h.reportService.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, "reports found", reports)
}
