package handlers

import (
	"context"

	"opportunity-finder/internal/models"
)

// OpportunityStore is the read-only data access the HTTP layer needs.
type OpportunityStore interface {
	ListOpportunities(ctx context.Context, f models.OpportunityFilter) (*models.OpportunityPage, error)
	GetSubreddits(ctx context.Context) ([]models.SubredditCount, error)
	GetStats(ctx context.Context) (*models.Stats, error)
	GetKeywords(ctx context.Context) ([]models.KeywordCount, error)
	Ping(ctx context.Context) error
}
