package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"opportunity-finder/internal/models"
)

// Header is the CSV header row, in column order.
var Header = []string{
	"id",
	"title",
	"subreddit",
	"category",
	"overall_score",
	"technical_complexity",
	"revenue_potential",
	"novelty_score",
	"market_demand",
	"points",
	"comments",
	"source_url",
	"analyzed_at",
	"created_at",
	"opportunity",
	"ai_analysis",
}

// WriteCSV writes rows as CSV with a header. NULL values become empty cells.
func WriteCSV(w io.Writer, rows []models.Opportunity) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, o := range rows {
		if err := cw.Write(record(o)); err != nil {
			return fmt.Errorf("writing csv row %d: %w", o.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func record(o models.Opportunity) []string {
	return []string{
		strconv.FormatInt(o.ID, 10),
		str(o.Title),
		str(o.Subreddit),
		str(o.Category),
		float(o.OverallScore),
		float(o.TechnicalComplexity),
		float(o.RevenuePotential),
		float(o.NoveltyScore),
		float(o.MarketDemand),
		integer(o.Points),
		integer(o.Comments),
		str(o.SourceURL),
		timestamp(o.AnalyzedAt),
		timestamp(o.CreatedAt),
		str(o.Opportunity),
		str(o.AIAnalysis),
	}
}

func str(v models.JsonNullString) string {
	if !v.Valid {
		return ""
	}
	return v.String
}

func float(v models.JsonNullFloat64) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float64, 'f', -1, 64)
}

func integer(v models.JsonNullInt64) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatInt(v.Int64, 10)
}

func timestamp(v models.JsonNullTime) string {
	if !v.Valid {
		return ""
	}
	return v.Time.Format(time.RFC3339)
}
