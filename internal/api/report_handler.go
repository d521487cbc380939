package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/parceldesk/parceldesk-api/internal/api/shared"
	"github.com/parceldesk/parceldesk-api/internal/domain"
	"github.com/parceldesk/parceldesk-api/internal/report"
	"github.com/parceldesk/parceldesk-api/internal/service"
	"github.com/parceldesk/parceldesk-api/internal/store"
)

// ReportHandler handles dashboard and COD report API requests.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dashboard handles GET /api/reports/dashboard.
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.reportService.Dashboard(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, dashboard)
}

// CODReport handles GET /api/reports/cod. Query parameters: group_by
// (driver|merchant, required), from and to (RFC 3339, optional), and
// format (json|xlsx, default json).
func (h *ReportHandler) CODReport(w http.ResponseWriter, r *http.Request) {
	filter, err := parseCODFilter(r)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	rpt, err := h.reportService.CODReport(r.Context(), filter)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "xlsx" {
		filename := fmt.Sprintf("cod-report-%s-%s.xlsx", filter.GroupBy, time.Now().UTC().Format("20060102"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if err := report.WriteCODExcel(w, rpt); err != nil {
			// Headers are already out; the truncated download is all we
			// can signal.
			HandleServiceError(w, r, err)
		}
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, rpt)
}

// parseCODFilter reads the COD report query parameters.
func parseCODFilter(r *http.Request) (store.CODReportFilter, error) {
	q := r.URL.Query()
	filter := store.CODReportFilter{
		GroupBy: store.CODReportGroup(q.Get("group_by")),
	}

	if raw := q.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, fmt.Errorf("%w: from must be an RFC 3339 timestamp", domain.ErrValidation)
		}
		filter.From = from
	}
	if raw := q.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, fmt.Errorf("%w: to must be an RFC 3339 timestamp", domain.ErrValidation)
		}
		filter.To = to
	}
	return filter, nil
}
