package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"opportunity-finder/internal/models"
)

type fakeStore struct {
	err        error
	lastFilter models.OpportunityFilter
}

func (f *fakeStore) ListOpportunities(_ context.Context, filter models.OpportunityFilter) (*models.OpportunityPage, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return &models.OpportunityPage{Opportunities: []models.Opportunity{{ID: 9}}, Total: 40}, nil
}

func (f *fakeStore) GetSubreddits(context.Context) ([]models.SubredditCount, error) {
	return []models.SubredditCount{{Subreddit: "SaaS", Count: 4}}, f.err
}

func (f *fakeStore) GetStats(context.Context) (*models.Stats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Stats{Total: 2, Analyzed: 1}, nil
}

func (f *fakeStore) GetKeywords(context.Context) ([]models.KeywordCount, error) {
	return []models.KeywordCount{{Word: "crm", Count: 1}}, f.err
}

func ptr[T any](v T) *T { return &v }

func TestListOpportunitiesParamsFilter(t *testing.T) {
	f := ListOpportunitiesParams{}.filter(100)
	if f != models.DefaultFilter() {
		t.Errorf("empty params = %+v, want defaults", f)
	}

	f = ListOpportunitiesParams{
		MinScore:      ptr(7.5),
		MaxComplexity: ptr(0.0),
		Search:        ptr("crm"),
		SortBy:        ptr("points"),
		SortOrder:     ptr("asc"),
		Limit:         ptr(5000),
		Offset:        ptr(-3),
	}.filter(100)
	if f.MinScore != 7.5 || f.MaxComplexity != 0 || f.Search != "crm" || f.SortBy != "points" || f.SortOrder != "asc" {
		t.Errorf("filter = %+v", f)
	}
	if f.Limit != 100 {
		t.Errorf("limit = %d, want capped at 100", f.Limit)
	}
	if f.Offset != 0 {
		t.Errorf("offset = %d, want 0", f.Offset)
	}
}

func TestHandleListOpportunities(t *testing.T) {
	store := &fakeStore{}
	s := NewServer(store, 1000, "test")

	res, out, err := s.handleListOpportunities(context.Background(), nil, ListOpportunitiesParams{Subreddit: ptr("SaaS")})
	if err != nil || res != nil {
		t.Fatalf("unexpected result %v / error %v", res, err)
	}
	m := out.(map[string]any)
	if m["count"] != 1 || m["total"] != int64(40) {
		t.Errorf("output = %v", m)
	}
	if store.lastFilter.Subreddit != "SaaS" {
		t.Errorf("subreddit not passed: %+v", store.lastFilter)
	}
}

func TestHandlersHideDatabaseErrors(t *testing.T) {
	secret := errors.New("dial tcp 10.0.0.5:5432: password authentication failed for user admin")
	s := NewServer(&fakeStore{err: secret}, 1000, "test")
	ctx := context.Background()

	calls := map[string]func() (any, error){
		"list_opportunities": func() (any, error) {
			_, out, err := s.handleListOpportunities(ctx, nil, ListOpportunitiesParams{})
			return out, err
		},
		"list_subreddits": func() (any, error) {
			_, out, err := s.handleListSubreddits(ctx, nil, noParams{})
			return out, err
		},
		"get_stats": func() (any, error) {
			_, out, err := s.handleGetStats(ctx, nil, noParams{})
			return out, err
		},
		"get_keywords": func() (any, error) {
			_, out, err := s.handleGetKeywords(ctx, nil, noParams{})
			return out, err
		},
	}
	for name, call := range calls {
		out, err := call()
		if err != nil {
			t.Errorf("%s: returned raw error %v", name, err)
		}
		m, ok := out.(map[string]any)
		if !ok || m["ok"] != false {
			t.Errorf("%s: output = %v, want ok=false", name, out)
			continue
		}
		if got := fmt.Sprint(m); containsAny(got, "password", "10.0.0.5") {
			t.Errorf("%s: leaked detail: %s", name, got)
		}
	}
}

func TestHandleGetStats(t *testing.T) {
	s := NewServer(&fakeStore{}, 1000, "test")
	_, out, err := s.handleGetStats(context.Background(), nil, noParams{})
	if err != nil {
		t.Fatalf("handleGetStats: %v", err)
	}
	st, ok := out.(*models.Stats)
	if !ok || st.Total != 2 || st.Analyzed != 1 {
		t.Errorf("output = %#v", out)
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
