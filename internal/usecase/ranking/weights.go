package ranking

import "math"

// Default composite weights: semantic relevance dominates, budget fit
// softens the hard gate, price advantage only refines ties.
const (
	DefaultSemanticWeight       = 0.6
	DefaultBudgetFitWeight      = 0.3
	DefaultPriceAdvantageWeight = 0.1
)

// Weights holds the composite scoring formula coefficients.
type Weights struct {
	Semantic       float64
	BudgetFit      float64
	PriceAdvantage float64
}

// DefaultWeights returns the 60/30/10 formula.
func DefaultWeights() Weights {
	return Weights{
		Semantic:       DefaultSemanticWeight,
		BudgetFit:      DefaultBudgetFitWeight,
		PriceAdvantage: DefaultPriceAdvantageWeight,
	}
}

// Valid reports whether the weights sum to ~1.0.
func (w Weights) Valid() bool {
	return math.Abs(w.Semantic+w.BudgetFit+w.PriceAdvantage-1.0) < 0.01
}
