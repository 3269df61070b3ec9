package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"opportunity-finder/internal/models"
)

func TestWriteCSV(t *testing.T) {
	rows := []models.Opportunity{
		{
			ID:           3,
			Title:        models.NullString(`Invoices, "fast"`),
			Subreddit:    models.NullString("freelance"),
			OverallScore: models.NullFloat(8.5),
			Points:       models.NullInt(120),
			AnalyzedAt:   models.NullTime(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)),
			AIAnalysis:   models.NullString("line one\nline two"),
		},
		{ID: 4},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2", len(records))
	}
	if records[0][0] != "id" || len(records[0]) != len(Header) {
		t.Errorf("bad header: %v", records[0])
	}

	first := records[1]
	if first[1] != `Invoices, "fast"` {
		t.Errorf("title = %q", first[1])
	}
	if first[4] != "8.5" || first[9] != "120" {
		t.Errorf("score/points = %q/%q", first[4], first[9])
	}
	if first[12] != "2024-05-01T10:00:00Z" {
		t.Errorf("analyzed_at = %q", first[12])
	}
	if first[15] != "line one\nline two" {
		t.Errorf("ai_analysis = %q", first[15])
	}

	for i, cell := range records[2][1:] {
		if cell != "" {
			t.Errorf("null column %s = %q, want empty", Header[i+1], cell)
		}
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back csv: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("got %d records, want header only", len(records))
	}
}
