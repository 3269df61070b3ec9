package mcpserver

import (
	"context"
	"log"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"opportunity-finder/internal/models"
)

// Store is the read-only data access the tools need.
type Store interface {
	ListOpportunities(ctx context.Context, f models.OpportunityFilter) (*models.OpportunityPage, error)
	GetSubreddits(ctx context.Context) ([]models.SubredditCount, error)
	GetStats(ctx context.Context) (*models.Stats, error)
	GetKeywords(ctx context.Context) ([]models.KeywordCount, error)
}

// ListOpportunitiesParams mirrors the HTTP list parameters. Every field is
// optional; omitted fields use the listing defaults.
type ListOpportunitiesParams struct {
	MinScore      *float64 `json:"min_score,omitempty" jsonschema:"minimum overall score (0-10)"`
	MaxComplexity *float64 `json:"max_complexity,omitempty" jsonschema:"maximum technical complexity (0-10)"`
	MinRevenue    *float64 `json:"min_revenue,omitempty" jsonschema:"minimum revenue potential (0-10)"`
	MinNovelty    *float64 `json:"min_novelty,omitempty" jsonschema:"minimum novelty score (0-10)"`
	MinDemand     *float64 `json:"min_demand,omitempty" jsonschema:"minimum market demand (0-10)"`
	Search        *string  `json:"search,omitempty" jsonschema:"case-insensitive text matched against title, description and AI analysis"`
	Subreddit     *string  `json:"subreddit,omitempty" jsonschema:"exact subreddit name without the r/ prefix"`
	SortBy        *string  `json:"sort_by,omitempty" jsonschema:"sort column, e.g. overall_score, points, created_at"`
	SortOrder     *string  `json:"sort_order,omitempty" jsonschema:"asc or desc"`
	Limit         *int     `json:"limit,omitempty" jsonschema:"page size"`
	Offset        *int     `json:"offset,omitempty" jsonschema:"rows to skip"`
}

type noParams struct{}

// Server exposes the opportunities database as MCP tools.
type Server struct {
	store       Store
	maxPageSize int
	version     string
}

func NewServer(store Store, maxPageSize int, version string) *Server {
	return &Server{store: store, maxPageSize: maxPageSize, version: version}
}

// Run serves the tools over stdio until ctx is cancelled or stdin closes.
func (s *Server) Run(ctx context.Context) error {
	server := mcp.NewServer(&mcp.Implementation{Name: "opportunity-finder", Version: s.version}, nil)

	mcp.AddTool(server, &mcp.Tool{Name: "list_opportunities", Description: "List analyzed opportunities with optional score filters, search, sorting and paging"}, s.handleListOpportunities)
	mcp.AddTool(server, &mcp.Tool{Name: "list_subreddits", Description: "List subreddits of analyzed opportunities with counts, busiest first"}, s.handleListSubreddits)
	mcp.AddTool(server, &mcp.Tool{Name: "get_stats", Description: "Get total and analyzed row counts plus average and top overall score"}, s.handleGetStats)
	mcp.AddTool(server, &mcp.Tool{Name: "get_keywords", Description: "Get the most frequent keywords in analyzed opportunity titles"}, s.handleGetKeywords)

	log.Println("INFO: [MCP] serving tools on stdio.")
	return server.Run(ctx, &mcp.StdioTransport{})
}

func (p ListOpportunitiesParams) filter(maxPageSize int) models.OpportunityFilter {
	f := models.DefaultFilter()
	setFloat(&f.MinScore, p.MinScore)
	setFloat(&f.MaxComplexity, p.MaxComplexity)
	setFloat(&f.MinRevenue, p.MinRevenue)
	setFloat(&f.MinNovelty, p.MinNovelty)
	setFloat(&f.MinDemand, p.MinDemand)
	if p.Search != nil {
		f.Search = *p.Search
	}
	if p.Subreddit != nil {
		f.Subreddit = *p.Subreddit
	}
	if p.SortBy != nil && *p.SortBy != "" {
		f.SortBy = *p.SortBy
	}
	if p.SortOrder != nil && *p.SortOrder != "" {
		f.SortOrder = *p.SortOrder
	}
	if p.Limit != nil && *p.Limit > 0 {
		f.Limit = *p.Limit
	}
	if maxPageSize > 0 && f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}
	if p.Offset != nil && *p.Offset > 0 {
		f.Offset = *p.Offset
	}
	return f
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// queryFailed is returned instead of the underlying error, which is only logged.
func queryFailed(tool string, err error) map[string]any {
	log.Printf("ERROR: [MCP] %s failed: %v", tool, err)
	return map[string]any{
		"ok":      false,
		"message": "Query failed while reading the opportunities database",
	}
}

func (s *Server) handleListOpportunities(ctx context.Context, req *mcp.CallToolRequest, p ListOpportunitiesParams) (*mcp.CallToolResult, any, error) {
	page, err := s.store.ListOpportunities(ctx, p.filter(s.maxPageSize))
	if err != nil {
		return nil, queryFailed("list_opportunities", err), nil
	}
	return nil, map[string]any{
		"count":         len(page.Opportunities),
		"total":         page.Total,
		"opportunities": page.Opportunities,
	}, nil
}

func (s *Server) handleListSubreddits(ctx context.Context, req *mcp.CallToolRequest, _ noParams) (*mcp.CallToolResult, any, error) {
	subs, err := s.store.GetSubreddits(ctx)
	if err != nil {
		return nil, queryFailed("list_subreddits", err), nil
	}
	return nil, map[string]any{"count": len(subs), "subreddits": subs}, nil
}

func (s *Server) handleGetStats(ctx context.Context, req *mcp.CallToolRequest, _ noParams) (*mcp.CallToolResult, any, error) {
	st, err := s.store.GetStats(ctx)
	if err != nil {
		return nil, queryFailed("get_stats", err), nil
	}
	return nil, st, nil
}

func (s *Server) handleGetKeywords(ctx context.Context, req *mcp.CallToolRequest, _ noParams) (*mcp.CallToolResult, any, error) {
	kws, err := s.store.GetKeywords(ctx)
	if err != nil {
		return nil, queryFailed("get_keywords", err), nil
	}
	return nil, map[string]any{"count": len(kws), "keywords": kws}, nil
}
