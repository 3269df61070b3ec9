package handlers

import (
	"context"
	"errors"

	"opportunity-finder/internal/models"
)

var errDB = errors.New(`pq: relation "opportunities" does not exist`)

// fakeStore records the last filter and returns canned data or err.
type fakeStore struct {
	err        error
	lastFilter *models.OpportunityFilter
	page       models.OpportunityPage
}

func (f *fakeStore) ListOpportunities(_ context.Context, filter models.OpportunityFilter) (*models.OpportunityPage, error) {
	f.lastFilter = &filter
	if f.err != nil {
		return nil, f.err
	}
	p := f.page
	if p.Opportunities == nil {
		p.Opportunities = []models.Opportunity{}
	}
	return &p, nil
}

func (f *fakeStore) GetSubreddits(context.Context) ([]models.SubredditCount, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []models.SubredditCount{{Subreddit: "SaaS", Count: 12}, {Subreddit: "startups", Count: 3}}, nil
}

func (f *fakeStore) GetStats(context.Context) (*models.Stats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Stats{Total: 20, Analyzed: 15, AvgScore: 6.42, TopScore: 9.5}, nil
}

func (f *fakeStore) GetKeywords(context.Context) ([]models.KeywordCount, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []models.KeywordCount{{Word: "invoicing", Count: 7}}, nil
}

func (f *fakeStore) Ping(context.Context) error { return f.err }
