// Package request holds the validated search query value type.
// Construction is the validation boundary: budget and top_k faults are
// rejected here and never reach the ranking core.
package request

import (
	"fmt"
	"strings"
)

// Search parameter limits.
const (
	MaxQueryLength = 500
	DefaultTopK    = 5
	MaxTopK        = 50
)

// Request is a validated product search query.
type Request struct {
	query    string
	budget   *float64
	topK     int
	category string
	minScore float64
	altLimit int
}

// New validates and normalizes search parameters.
// budget is optional; nil disables budget scoring entirely.
// altLimit <= 0 defaults to topK.
func New(query string, budget *float64, topK int, category string, minScore float64, altLimit int) (Request, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, fmt.Errorf("query is required")
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if budget != nil && *budget <= 0 {
		return Request{}, fmt.Errorf("budget must be positive")
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	if topK > MaxTopK {
		topK = MaxTopK
	}
	if minScore < 0 || minScore > 1 {
		return Request{}, fmt.Errorf("min_score must be between 0 and 1")
	}
	if altLimit <= 0 {
		altLimit = topK
	}
	if altLimit > MaxTopK {
		altLimit = MaxTopK
	}

	return Request{
		query:    query,
		budget:   budget,
		topK:     topK,
		category: strings.TrimSpace(category),
		minScore: minScore,
		altLimit: altLimit,
	}, nil
}

// Query returns the search query text.
func (r *Request) Query() string { return r.query }

// Budget returns the monetary budget, or nil when no budget was given.
func (r *Request) Budget() *float64 { return r.budget }

// TopK returns the number of primary results requested.
func (r *Request) TopK() int { return r.topK }

// Category returns the optional category filter ("" = all categories).
func (r *Request) Category() string { return r.category }

// MinScore returns the minimum composite score threshold.
func (r *Request) MinScore() float64 { return r.minScore }

// AltLimit returns the maximum number of over-budget alternatives to return.
func (r *Request) AltLimit() int { return r.altLimit }
