package handlers

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"time"

	"opportunity-finder/internal/export"
)

// ExportHandler streams the filtered listing as a CSV download.
type ExportHandler struct {
	store   OpportunityStore
	maxRows int
}

// NewExportHandler creates an ExportHandler exporting at most maxRows rows.
func NewExportHandler(store OpportunityStore, maxRows int) *ExportHandler {
	if store == nil {
		log.Panicln("ExportHandler: store must not be nil")
	}
	return &ExportHandler{store: store, maxRows: maxRows}
}

// ServeHTTP implements http.Handler.
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log.Printf("INFO: [ExportHandler] %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)

	if r.Method != http.MethodGet {
		log.Printf("WARN: [ExportHandler] rejected %s request.", r.Method)
		methodNotAllowed(w, http.MethodGet)
		return
	}

	f := ParseFilter(r.URL.Query(), 0)
	f.Limit = h.maxRows
	f.Offset = 0

	page, err := h.store.ListOpportunities(r.Context(), f)
	if err != nil {
		log.Printf("ERROR: [ExportHandler] loading opportunities: %v", err)
		writeError(w, http.StatusInternalServerError, internalErrorMessage)
		return
	}
	if page.Total > int64(len(page.Opportunities)) {
		log.Printf("WARN: [ExportHandler] export truncated to %d of %d rows.", len(page.Opportunities), page.Total)
	}

	// render first so a failure can still become a 500
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, page.Opportunities); err != nil {
		log.Printf("ERROR: [ExportHandler] rendering csv: %v", err)
		writeError(w, http.StatusInternalServerError, internalErrorMessage)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=opportunities_%s.csv", time.Now().Format("2006-01-02")))
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("ERROR: [ExportHandler] writing response: %v", err)
		return
	}
	log.Printf("INFO: [ExportHandler] exported %d rows.", len(page.Opportunities))
}
