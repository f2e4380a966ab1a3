package api

import (
	"net/http"

	"github.com/qtts/assetdesk/internal/report"
	"github.com/qtts/assetdesk/internal/state"
)

// ReportsHandler serves the derived views.
type ReportsHandler struct {
	Store *state.Store
}

// Get handles GET /api/reports/{name}.
func (h *ReportsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s := h.Store.State()
	switch r.PathValue("name") {
	case "summary":
		jsonResponse(w, http.StatusOK, report.Summarize(s))
	case "managers":
		jsonResponse(w, http.StatusOK, orEmpty(report.ByManager(s)))
	case "statuses":
		jsonResponse(w, http.StatusOK, report.ByStatus(s))
	case "locations":
		jsonResponse(w, http.StatusOK, orEmpty(report.ByLocation(s)))
	default:
		jsonError(w, http.StatusNotFound, "unknown report")
	}
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
