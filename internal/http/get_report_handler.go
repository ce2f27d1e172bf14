package http

import (
	"encoding/json"
	"net/http"

	"cluster-analytics/internal/reporters"
)

type getReportHandler struct {
	reportService reporters.ReportService
}

func NewGetReportHandler(reportService reporters.ReportService) AppHttpHandler {
	return &getReportHandler{
		reportService: reportService,
	}
}

// Handle processes GET /v1/report requests.
func (h *getReportHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	report, err := h.reportService.LatestReport(r.Context())
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(report)
}
