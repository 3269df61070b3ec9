package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"opportunity-finder/internal/models"
)

// SortOption is one entry of the dashboard's sort selector.
type SortOption struct {
	Value string
	Label string
}

var sortLabels = map[string]string{
	"overall_score":        "Overall score",
	"technical_complexity": "Technical complexity",
	"revenue_potential":    "Revenue potential",
	"novelty_score":        "Novelty",
	"market_demand":        "Market demand",
	"points":               "Points",
	"comments":             "Comments",
	"created_at":           "Date added",
}

// DashboardPageData is passed to the dashboard template.
type DashboardPageData struct {
	Title       string
	PageSize    int
	APIPath     string
	SortOptions []SortOption
	DefaultSort string
}

// DashboardHandler renders the single-page dashboard. All data is loaded by
// the page itself from the JSON API.
type DashboardHandler struct {
	tpl  *template.Template
	data DashboardPageData
}

// NewDashboardHandler parses dashboard.html from templates.
func NewDashboardHandler(templates fs.FS, title string, pageSize int) (*DashboardHandler, error) {
	tpl, err := template.ParseFS(templates, "dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("cannot parse dashboard template: %w", err)
	}

	opts := make([]SortOption, 0, len(models.SortColumns))
	for _, col := range models.SortColumns {
		opts = append(opts, SortOption{Value: col, Label: sortLabels[col]})
	}
	return &DashboardHandler{
		tpl: tpl,
		data: DashboardPageData{
			Title:       title,
			PageSize:    pageSize,
			APIPath:     "/api/opportunities",
			SortOptions: opts,
			DefaultSort: models.DefaultSortBy,
		},
	}, nil
}

// ServeHTTP implements http.Handler.
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.tpl.Execute(&buf, h.data); err != nil {
		log.Printf("ERROR: [DashboardHandler] executing template: %v", err)
		http.Error(w, internalErrorMessage, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
