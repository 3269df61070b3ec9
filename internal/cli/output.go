package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"opportunity-finder/internal/models"
)

// Output formats accepted by --output.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

const maxTitleWidth = 60

var (
	headingColor = color.New(color.FgCyan, color.Bold).SprintFunc()
	scoreHigh    = color.New(color.FgGreen).SprintFunc()
	scoreMid     = color.New(color.FgYellow).SprintFunc()
	scoreLow     = color.New(color.FgRed).SprintFunc()
)

func validFormat(f string) error {
	switch f {
	case formatTable, formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want table, json or yaml)", f)
}

// writeStructured renders v as JSON or YAML. YAML goes through JSON first so
// both formats share field names and null handling.
func writeStructured(w io.Writer, format string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	if format == formatJSON {
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("decoding json for yaml: %w", err)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

func newTable(headers ...string) *table.Table {
	border := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(border).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 { // header row
				return header
			}
			return cell
		})
}

func fmtScore(v models.JsonNullFloat64) string {
	if !v.Valid {
		return "-"
	}
	s := strconv.FormatFloat(v.Float64, 'f', 1, 64)
	switch {
	case v.Float64 >= 7:
		return scoreHigh(s)
	case v.Float64 >= 5:
		return scoreMid(s)
	}
	return scoreLow(s)
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}

func printOpportunities(w io.Writer, format string, page *models.OpportunityPage, offset int) error {
	if format != formatTable {
		return writeStructured(w, format, page)
	}
	t := newTable("ID", "Score", "Cx", "Rev", "Nov", "Dem", "Subreddit", "Title")
	for _, o := range page.Opportunities {
		sub := ""
		if o.Subreddit.Valid {
			sub = "r/" + o.Subreddit.String
		}
		t.Row(
			strconv.FormatInt(o.ID, 10),
			fmtScore(o.OverallScore),
			fmtScore(o.TechnicalComplexity),
			fmtScore(o.RevenuePotential),
			fmtScore(o.NoveltyScore),
			fmtScore(o.MarketDemand),
			sub,
			truncate(o.Title.String, maxTitleWidth),
		)
	}
	fmt.Fprintln(w, t.Render())
	if len(page.Opportunities) == 0 {
		fmt.Fprintf(w, "%s\n", headingColor(fmt.Sprintf("No opportunities (total %d).", page.Total)))
		return nil
	}
	fmt.Fprintf(w, "%s\n", headingColor(fmt.Sprintf("Showing %d-%d of %d opportunities.",
		offset+1, offset+len(page.Opportunities), page.Total)))
	return nil
}

func printStats(w io.Writer, format string, st *models.Stats) error {
	if format != formatTable {
		return writeStructured(w, format, st)
	}
	fmt.Fprintln(w, headingColor("Opportunity stats"))
	t := newTable("Metric", "Value")
	t.Row("Total rows", strconv.FormatInt(st.Total, 10))
	t.Row("Analyzed", strconv.FormatInt(st.Analyzed, 10))
	t.Row("Average score", strconv.FormatFloat(st.AvgScore, 'f', 2, 64))
	t.Row("Top score", strconv.FormatFloat(st.TopScore, 'f', 1, 64))
	fmt.Fprintln(w, t.Render())
	return nil
}

func printSubreddits(w io.Writer, format string, subs []models.SubredditCount) error {
	if format != formatTable {
		return writeStructured(w, format, subs)
	}
	t := newTable("Subreddit", "Count")
	for _, s := range subs {
		t.Row("r/"+s.Subreddit, strconv.FormatInt(s.Count, 10))
	}
	fmt.Fprintln(w, t.Render())
	return nil
}

func printKeywords(w io.Writer, format string, kws []models.KeywordCount) error {
	if format != formatTable {
		return writeStructured(w, format, kws)
	}
	t := newTable("Keyword", "Count")
	for _, k := range kws {
		t.Row(k.Word, strconv.FormatInt(k.Count, 10))
	}
	fmt.Fprintln(w, t.Render())
	return nil
}
