package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"opportunity-finder/internal/models"
)

func init() {
	color.NoColor = true
}

func samplePage() *models.OpportunityPage {
	return &models.OpportunityPage{
		Opportunities: []models.Opportunity{
			{
				ID:           7,
				Title:        models.NullString("Invoice reminders for freelancers"),
				Subreddit:    models.NullString("freelance"),
				OverallScore: models.NullFloat(8.25),
			},
		},
		Total: 12,
	}
}

func TestValidFormat(t *testing.T) {
	for _, f := range []string{"table", "json", "yaml"} {
		if err := validFormat(f); err != nil {
			t.Errorf("validFormat(%q) = %v", f, err)
		}
	}
	if err := validFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestPrintOpportunitiesJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := printOpportunities(&buf, formatJSON, samplePage(), 0); err != nil {
		t.Fatalf("printOpportunities: %v", err)
	}
	var got struct {
		Opportunities []map[string]any `json:"opportunities"`
		Total         int64            `json:"total"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if got.Total != 12 || len(got.Opportunities) != 1 {
		t.Fatalf("got %+v", got)
	}
	if got.Opportunities[0]["description"] != nil {
		t.Errorf("null description should stay null, got %v", got.Opportunities[0]["description"])
	}
}

func TestPrintOpportunitiesYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := printOpportunities(&buf, formatYAML, samplePage(), 0); err != nil {
		t.Fatalf("printOpportunities: %v", err)
	}
	var got map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid yaml: %v\n%s", err, buf.String())
	}
	if got["total"] != 12 {
		t.Errorf("total = %v", got["total"])
	}
	if !strings.Contains(buf.String(), "title: Invoice reminders for freelancers") {
		t.Errorf("yaml missing title:\n%s", buf.String())
	}
}

func TestPrintOpportunitiesTable(t *testing.T) {
	var buf bytes.Buffer
	if err := printOpportunities(&buf, formatTable, samplePage(), 10); err != nil {
		t.Fatalf("printOpportunities: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Invoice reminders", "r/freelance", "8.2", "Showing 11-11 of 12"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintOpportunitiesTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	page := &models.OpportunityPage{Opportunities: []models.Opportunity{}}
	if err := printOpportunities(&buf, formatTable, page, 0); err != nil {
		t.Fatalf("printOpportunities: %v", err)
	}
	if !strings.Contains(buf.String(), "No opportunities") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestPrintStatsTable(t *testing.T) {
	var buf bytes.Buffer
	st := &models.Stats{Total: 10, Analyzed: 8, AvgScore: 6.125, TopScore: 9.5}
	if err := printStats(&buf, formatTable, st); err != nil {
		t.Fatalf("printStats: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Total rows", "10", "Analyzed", "9.5"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q:\n%s", want, out)
		}
	}
}

func TestFmtScore(t *testing.T) {
	tests := []struct {
		in   models.JsonNullFloat64
		want string
	}{
		{models.JsonNullFloat64{}, "-"},
		{models.NullFloat(7), "7.0"},
		{models.NullFloat(4.96), "5.0"},
	}
	for _, tt := range tests {
		if got := fmtScore(tt.in); got != tt.want {
			t.Errorf("fmtScore(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("  short  ", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("héllo wörld", 6); got != "héllo…" {
		t.Errorf("truncate = %q", got)
	}
}
