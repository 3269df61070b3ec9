package handlers

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"opportunity-finder/internal/models"
)

func TestHealthHandler(t *testing.T) {
	rec := serve(NewHealthHandler(&fakeStore{}), http.MethodGet, "/healthz")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("healthy: %d %s", rec.Code, rec.Body)
	}

	rec = serve(NewHealthHandler(&fakeStore{err: errDB}), http.MethodGet, "/healthz")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("unhealthy status = %d, want 503", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "relation") {
		t.Error("database detail leaked")
	}
}

func TestDashboardHandler(t *testing.T) {
	templates := fstest.MapFS{
		"dashboard.html": {Data: []byte(`<title>{{.Title}}</title><body data-page-size="{{.PageSize}}">{{range .SortOptions}}<option value="{{.Value}}">{{.Label}}</option>{{end}}`)},
	}
	h, err := NewDashboardHandler(templates, "Opportunity <Finder>", 25)
	if err != nil {
		t.Fatalf("NewDashboardHandler: %v", err)
	}

	rec := serve(h, http.MethodGet, "/dashboard")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Opportunity &lt;Finder&gt;") {
		t.Errorf("title not escaped: %s", body)
	}
	if !strings.Contains(body, `data-page-size="25"`) {
		t.Errorf("page size missing: %s", body)
	}
	if strings.Count(body, "<option") != len(models.SortColumns) {
		t.Errorf("expected %d sort options: %s", len(models.SortColumns), body)
	}
}

func TestDashboardHandlerMissingTemplate(t *testing.T) {
	if _, err := NewDashboardHandler(fstest.MapFS{}, "x", 25); err == nil {
		t.Error("expected error for missing template")
	}
}

type blockingReporter struct {
	release chan struct{}
	started chan struct{}
}

func (b *blockingReporter) Run(ctx context.Context) (*models.Stats, error) {
	close(b.started)
	<-b.release
	return &models.Stats{Total: 3}, nil
}

func TestTriggerReportHandler(t *testing.T) {
	rep := &blockingReporter{release: make(chan struct{}), started: make(chan struct{})}
	h := NewTriggerReportHandler(rep)

	if rec := serve(h, http.MethodGet, "/api/report"); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d, want 405", rec.Code)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	var first int
	go func() {
		defer wg.Done()
		first = serve(h, http.MethodPost, "/api/report").Code
	}()

	select {
	case <-rep.started:
	case <-time.After(2 * time.Second):
		t.Fatal("report never started")
	}
	if rec := serve(h, http.MethodPost, "/api/report"); rec.Code != http.StatusConflict {
		t.Errorf("concurrent trigger status = %d, want 409", rec.Code)
	}

	close(rep.release)
	wg.Wait()
	if first != http.StatusOK {
		t.Errorf("first trigger status = %d, want 200", first)
	}
}
