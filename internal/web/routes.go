package web

import (
	"fmt"
	"log"
	"net/http"

	"opportunity-finder/internal/config"
	"opportunity-finder/internal/web/handlers"
)

// SetupRouter wires all HTTP routes. reporter may be nil, in which case the
// manual report trigger is not mounted.
func SetupRouter(appConfig *config.Config, store handlers.OpportunityStore, reporter handlers.ReportRunner) (http.Handler, error) {
	mux := http.NewServeMux()

	mux.Handle("/api/opportunities", handlers.NewOpportunitiesHandler(store, appConfig.API.MaxPageSize))

	dashboardHandler, err := handlers.NewDashboardHandler(Templates(), appConfig.UI.Title, appConfig.UI.PageSize)
	if err != nil {
		return nil, fmt.Errorf("creating dashboard handler: %w", err)
	}
	mux.Handle("GET /dashboard", dashboardHandler)
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	})
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(Static())))

	mux.Handle("/export", handlers.NewExportHandler(store, appConfig.Export.MaxRows))
	mux.Handle("GET /healthz", handlers.NewHealthHandler(store))

	if reporter != nil {
		mux.Handle("/api/report", handlers.NewTriggerReportHandler(reporter))
	}

	log.Println("INFO: HTTP routes configured.")
	return mux, nil
}
