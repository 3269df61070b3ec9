package handlers

import (
	"log"
	"net/http"
)

// OpportunitiesHandler serves GET /api/opportunities. The action parameter
// selects an aggregate; anything else returns the filtered list.
type OpportunitiesHandler struct {
	store       OpportunityStore
	maxPageSize int
}

// NewOpportunitiesHandler creates an OpportunitiesHandler.
func NewOpportunitiesHandler(store OpportunityStore, maxPageSize int) *OpportunitiesHandler {
	if store == nil {
		log.Panicln("OpportunitiesHandler: store must not be nil")
	}
	return &OpportunitiesHandler{store: store, maxPageSize: maxPageSize}
}

// ServeHTTP implements http.Handler.
func (h *OpportunitiesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		log.Printf("WARN: [OpportunitiesHandler] rejected %s request.", r.Method)
		methodNotAllowed(w, http.MethodGet)
		return
	}

	ctx := r.Context()
	q := r.URL.Query()
	action := q.Get("action")

	var (
		result any
		err    error
	)
	switch action {
	case "subreddits":
		result, err = h.store.GetSubreddits(ctx)
	case "stats":
		result, err = h.store.GetStats(ctx)
	case "keywords":
		result, err = h.store.GetKeywords(ctx)
	default:
		result, err = h.store.ListOpportunities(ctx, ParseFilter(q, h.maxPageSize))
	}
	if err != nil {
		log.Printf("ERROR: [OpportunitiesHandler] action %q failed: %v", action, err)
		writeError(w, http.StatusInternalServerError, internalErrorMessage)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
