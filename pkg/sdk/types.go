package prodsearch

import "time"

// SearchParams describes one ranked search.
type SearchParams struct {
	Query             string
	Budget            *float64 // nil = no budget constraint
	TopK              int      // 0 = default (5)
	Category          string   // "" = all categories
	MinScore          float64  // minimum composite score for primary results
	AlternativesLimit int      // 0 = same as TopK
}

// Budget is a convenience helper for SearchParams.Budget.
func Budget(v float64) *float64 { return &v }

// RankedProduct is a single ranked search hit. Overage is non-zero only
// for over-budget alternatives.
type RankedProduct struct {
	ID             string
	Title          string
	Price          float64
	Category       string
	Brand          string
	Rating         float64
	SemanticScore  float64
	BudgetFit      float64
	PriceAdvantage float64
	CompositeScore float64
	Explanation    string
	Overage        float64
}

// SearchResult is the ranked outcome of one search.
type SearchResult struct {
	Query        string
	Budget       *float64
	TotalResults int
	Results      []RankedProduct
	Alternatives []RankedProduct
	Elapsed      time.Duration
}

// Feedback is a user interaction with a previously returned result.
type Feedback struct {
	UserID    string
	Action    string // view, click, add_to_cart, purchase, dismiss
	ProductID string
	Query     string
	Budget    *float64
	Timestamp time.Time
	Extra     map[string]string
}

// IngestReport summarizes one catalog ingestion run.
type IngestReport struct {
	Loaded  int
	Skipped int
	Tokens  int
}

// CatalogStats describes the indexed catalog.
type CatalogStats struct {
	Products  int
	Indexed   bool
	IndexName string
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded"
	Checks map[string]string // component → "ok"/"error"
}
