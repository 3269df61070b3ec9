package models

// Opportunity maps one row of the opportunities table. Derived fields stay
// NULL until the external analyzer has processed the row; AnalyzedAt being
// set is the only completion signal.
type Opportunity struct {
	ID          int64          `json:"id"`
	Title       JsonNullString `json:"title"`
	Category    JsonNullString `json:"category"`
	Description JsonNullString `json:"description"`
	Opportunity JsonNullString `json:"opportunity"`
	Subreddit   JsonNullString `json:"subreddit"`
	MemberCount JsonNullString `json:"member_count"`
	Timestamp   JsonNullString `json:"timestamp"`
	Points      JsonNullInt64  `json:"points"`
	Comments    JsonNullInt64  `json:"comments"`
	SourceURL   JsonNullString `json:"source_url"`

	TechnicalComplexity JsonNullFloat64 `json:"technical_complexity"`
	RevenuePotential    JsonNullFloat64 `json:"revenue_potential"`
	NoveltyScore        JsonNullFloat64 `json:"novelty_score"`
	MarketDemand        JsonNullFloat64 `json:"market_demand"`
	OverallScore        JsonNullFloat64 `json:"overall_score"`
	AIAnalysis          JsonNullString  `json:"ai_analysis"`
	AnalyzedAt          JsonNullTime    `json:"analyzed_at"`
	CreatedAt           JsonNullTime    `json:"created_at"`
}

// OpportunityPage is one page of a filtered listing plus the unpaged total.
type OpportunityPage struct {
	Opportunities []Opportunity `json:"opportunities"`
	Total         int64         `json:"total"`
}

// SubredditCount is one entry of the subreddit selector.
type SubredditCount struct {
	Subreddit string `json:"subreddit"`
	Count     int64  `json:"count"`
}

// Stats summarizes the whole table, analyzed or not.
type Stats struct {
	Total    int64   `json:"total"`
	Analyzed int64   `json:"analyzed"`
	AvgScore float64 `json:"avgScore"`
	TopScore float64 `json:"topScore"`
}

// KeywordCount is one entry of the title keyword cloud.
type KeywordCount struct {
	Word  string `json:"word"`
	Count int64  `json:"count"`
}
