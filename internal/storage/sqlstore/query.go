package sqlstore

import (
	"strings"

	"opportunity-finder/internal/models"
)

// opportunityColumns is the select list shared by every listing query. Its
// order must match scanOpportunity.
const opportunityColumns = `id, title, category, description, opportunity, subreddit, member_count,
	timestamp, points, comments, source_url,
	technical_complexity, revenue_potential, novelty_score, market_demand, overall_score,
	ai_analysis, analyzed_at, created_at`

// searchColumns are matched against the free-text search term.
var searchColumns = []string{"title", "description", "ai_analysis"}

// Query is a parameterized SQL statement. User input only ever reaches Args.
type Query struct {
	SQL  string
	Args []any
}

// queryBuilder accumulates bind arguments and hands out placeholders in order.
type queryBuilder struct {
	dialect Dialect
	args    []any
}

func (b *queryBuilder) bind(v any) string {
	b.args = append(b.args, v)
	return b.dialect.Placeholder(len(b.args))
}

// escapeLike escapes LIKE metacharacters with '!' so the term matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return r.Replace(s)
}

// where builds the WHERE clause for f. Only analyzed rows are ever listed.
func (b *queryBuilder) where(f models.OpportunityFilter) string {
	conds := []string{"analyzed_at IS NOT NULL"}

	if f.MinScore > 0 {
		conds = append(conds, "overall_score >= "+b.bind(f.MinScore))
	}
	if f.MaxComplexity < 10 {
		conds = append(conds, "technical_complexity <= "+b.bind(f.MaxComplexity))
	}
	if f.MinRevenue > 0 {
		conds = append(conds, "revenue_potential >= "+b.bind(f.MinRevenue))
	}
	if f.MinNovelty > 0 {
		conds = append(conds, "novelty_score >= "+b.bind(f.MinNovelty))
	}
	if f.MinDemand > 0 {
		conds = append(conds, "market_demand >= "+b.bind(f.MinDemand))
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(f.Search) + "%"
		var ors []string
		for _, col := range searchColumns {
			ors = append(ors, b.dialect.ContainsFold(col, b.bind(pattern)))
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}
	if f.Subreddit != "" {
		conds = append(conds, "subreddit = "+b.bind(f.Subreddit))
	}

	return " WHERE " + strings.Join(conds, " AND ")
}

// BuildCountQuery returns the unpaged row count for f.
func BuildCountQuery(d Dialect, f models.OpportunityFilter) Query {
	b := &queryBuilder{dialect: d}
	sql := "SELECT COUNT(*) FROM opportunities" + b.where(f)
	return Query{SQL: sql, Args: b.args}
}

// BuildListQuery returns one sorted page of rows for f. The sort column is
// taken from the allow-list only; id breaks ties so paging is stable.
func BuildListQuery(d Dialect, f models.OpportunityFilter) Query {
	b := &queryBuilder{dialect: d}
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(opportunityColumns)
	sb.WriteString(" FROM opportunities")
	sb.WriteString(b.where(f))

	col, asc := f.ResolvedSort()
	sb.WriteString(" ORDER BY ")
	sb.WriteString(d.OrderNullsLast(col, asc))
	sb.WriteString(", id ASC")

	limit, offset := f.Page()
	sb.WriteString(" LIMIT ")
	sb.WriteString(b.bind(limit))
	sb.WriteString(" OFFSET ")
	sb.WriteString(b.bind(offset))

	return Query{SQL: sb.String(), Args: b.args}
}
