package models

// Sort directions accepted by OpportunityFilter.SortOrder.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Defaults applied when a filter field is absent or unusable.
const (
	DefaultSortBy        = "overall_score"
	DefaultLimit         = 50
	DefaultMaxComplexity = 10
)

// SortColumns is the allow-list of columns a listing may be ordered by.
// Anything outside it falls back to DefaultSortBy.
var SortColumns = []string{
	"overall_score",
	"technical_complexity",
	"revenue_potential",
	"novelty_score",
	"market_demand",
	"points",
	"comments",
	"created_at",
}

// OpportunityFilter is the immutable request for a filtered listing. Build it
// from DefaultFilter(); the zero value applies technical_complexity <= 0.
type OpportunityFilter struct {
	MinScore      float64
	MaxComplexity float64
	MinRevenue    float64
	MinNovelty    float64
	MinDemand     float64
	Search        string
	Subreddit     string
	SortBy        string
	SortOrder     string
	Limit         int
	Offset        int
}

// DefaultFilter returns a filter that matches every analyzed row.
func DefaultFilter() OpportunityFilter {
	return OpportunityFilter{
		MaxComplexity: DefaultMaxComplexity,
		SortBy:        DefaultSortBy,
		SortOrder:     SortDesc,
		Limit:         DefaultLimit,
	}
}

// IsSortColumn reports whether col is in SortColumns.
func IsSortColumn(col string) bool {
	for _, c := range SortColumns {
		if c == col {
			return true
		}
	}
	return false
}

// ResolvedSort returns the sort column and direction the filter will
// actually use.
func (f OpportunityFilter) ResolvedSort() (column string, ascending bool) {
	column = DefaultSortBy
	if IsSortColumn(f.SortBy) {
		column = f.SortBy
	}
	return column, f.SortOrder == SortAsc
}

// Page returns the limit and offset with invalid values replaced by defaults.
func (f OpportunityFilter) Page() (limit, offset int) {
	limit, offset = f.Limit, f.Offset
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
