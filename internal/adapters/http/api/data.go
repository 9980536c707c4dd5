package api

import (
	"net/http"

	"github.com/okian/alpe/internal/domain/model"
)

// DataHandler serves the loaded dataset as JSON.
type DataHandler struct {
	deps Dependencies
}

// NewDataHandler creates a new data handler.
func NewDataHandler(deps Dependencies) *DataHandler {
	return &DataHandler{deps: deps}
}

// HandleRecords handles GET /api/records.
func (h *DataHandler) HandleRecords(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r, "records") {
		return
	}
	records, err := h.deps.Records(r.Context())
	if err != nil {
		fail(w, Wrap("records", err))
		return
	}
	if records == nil {
		records = []model.EnrichedRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// HandleSummary handles GET /api/summary.
func (h *DataHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r, "summary") {
		return
	}
	sum, err := h.deps.Summary(r.Context())
	if err != nil {
		fail(w, Wrap("summary", err))
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
