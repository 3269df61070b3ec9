package handlers

import (
	"context"
	"log"
	"net/http"
	"sync"

	"opportunity-finder/internal/models"
)

// ReportRunner runs the stats report on demand.
type ReportRunner interface {
	Run(ctx context.Context) (*models.Stats, error)
}

// TriggerReportHandler serves POST /api/report. Only one manual report runs
// at a time; concurrent triggers get 409.
type TriggerReportHandler struct {
	reporter ReportRunner
	mu       sync.Mutex
	running  bool
}

func NewTriggerReportHandler(reporter ReportRunner) *TriggerReportHandler {
	if reporter == nil {
		log.Panicln("TriggerReportHandler: reporter must not be nil")
	}
	return &TriggerReportHandler{reporter: reporter}
}

func (h *TriggerReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log.Printf("INFO: [TriggerReportHandler] %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)

	if r.Method != http.MethodPost {
		log.Printf("WARN: [TriggerReportHandler] rejected %s request.", r.Method)
		methodNotAllowed(w, http.MethodPost)
		return
	}

	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		log.Println("WARN: [TriggerReportHandler] report already running, rejecting trigger.")
		writeError(w, http.StatusConflict, "Report already running")
		return
	}
	h.running = true
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		h.running = false
		h.mu.Unlock()
	}()

	st, err := h.reporter.Run(r.Context())
	if err != nil {
		log.Printf("ERROR: [TriggerReportHandler] report failed: %v", err)
		writeError(w, http.StatusInternalServerError, internalErrorMessage)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
