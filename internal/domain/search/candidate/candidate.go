// Package candidate holds the per-request scoring value types. Both are
// transient: created when the candidate source answers, discarded after
// response assembly.
package candidate

import "github.com/fincommerce/prodsearch/internal/domain/product"

// Candidate is a single candidate-source hit: a product with its
// cosine-derived semantic similarity in [0,1].
type Candidate struct {
	product  product.Product
	semantic float64
}

// New creates a candidate.
func New(p product.Product, semantic float64) Candidate {
	return Candidate{product: p, semantic: semantic}
}

// Product returns the catalog record.
func (c *Candidate) Product() product.Product { return c.product }

// Semantic returns the semantic similarity score.
func (c *Candidate) Semantic() float64 { return c.semantic }

// Scored is a candidate annotated with budget sub-scores and the
// composite ordering score.
type Scored struct {
	candidate      Candidate
	budgetFit      float64
	priceAdvantage float64
	composite      float64
}

// NewScored creates a scored candidate.
func NewScored(c Candidate, budgetFit, priceAdvantage, composite float64) Scored {
	return Scored{
		candidate:      c,
		budgetFit:      budgetFit,
		priceAdvantage: priceAdvantage,
		composite:      composite,
	}
}

// Product returns the catalog record.
func (s *Scored) Product() product.Product { return s.candidate.Product() }

// Semantic returns the semantic similarity score.
func (s *Scored) Semantic() float64 { return s.candidate.Semantic() }

// BudgetFit returns the binary-with-floor budget indicator (1.0 or 0.5).
func (s *Scored) BudgetFit() float64 { return s.budgetFit }

// PriceAdvantage returns the signed savings ratio (negative when over budget).
func (s *Scored) PriceAdvantage() float64 { return s.priceAdvantage }

// Composite returns the weighted ordering score.
func (s *Scored) Composite() float64 { return s.composite }
