// Package response holds the assembled search response shape. Pure
// aggregation output; no scoring logic lives here.
package response

import (
	"time"

	"github.com/fincommerce/prodsearch/internal/domain/search/candidate"
)

// RankedResult is a scored candidate plus its human-readable justification.
type RankedResult struct {
	Scored      candidate.Scored
	Explanation string
}

// Alternative is an over-budget candidate offered as a fallback, with the
// overage carried as a structured field so clients can sort without
// parsing prose.
type Alternative struct {
	Scored      candidate.Scored
	Explanation string
	Overage     float64 // price − budget, always > 0
}

// Response is the final ordered search outcome.
type Response struct {
	Query        string
	Budget       *float64
	TotalResults int
	Results      []RankedResult
	Alternatives []Alternative
	Elapsed      time.Duration
}
