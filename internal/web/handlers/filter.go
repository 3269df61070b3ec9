package handlers

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"opportunity-finder/internal/models"
)

// ParseFilter reads the listing parameters from a query string. Missing or
// unusable values fall back to the defaults; nothing here is an error.
// limit is capped at maxPageSize when maxPageSize > 0.
func ParseFilter(q url.Values, maxPageSize int) models.OpportunityFilter {
	f := models.DefaultFilter()

	f.MinScore = floatParam(q, "minScore", f.MinScore)
	f.MaxComplexity = floatParam(q, "maxComplexity", f.MaxComplexity)
	f.MinRevenue = floatParam(q, "minRevenue", f.MinRevenue)
	f.MinNovelty = floatParam(q, "minNovelty", f.MinNovelty)
	f.MinDemand = floatParam(q, "minDemand", f.MinDemand)

	f.Search = q.Get("search")
	f.Subreddit = q.Get("subreddit")
	if v := q.Get("sortBy"); v != "" {
		f.SortBy = v
	}
	if v := q.Get("sortOrder"); v != "" {
		f.SortOrder = v
	}

	f.Limit = intParam(q, "limit", f.Limit)
	f.Offset = intParam(q, "offset", f.Offset)
	if f.Limit <= 0 {
		f.Limit = models.DefaultLimit
	}
	if maxPageSize > 0 && f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

func floatParam(q url.Values, key string, def float64) float64 {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// intParam accepts "25" as well as "25.9" (truncated).
func intParam(q url.Values, key string, def int) int {
	v := floatParam(q, key, math.NaN())
	if math.IsNaN(v) || v > math.MaxInt32 || v < math.MinInt32 {
		return def
	}
	return int(v)
}
