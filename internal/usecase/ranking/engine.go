// Package ranking implements the composite product ranking core: budget
// scoring, ordering, the fits/over-budget partition, alternative
// selection and explanation text.
package ranking

import (
	"fmt"
	"sort"

	"github.com/fincommerce/prodsearch/internal/domain/search/candidate"
	"github.com/fincommerce/prodsearch/internal/domain/search/request"
)

// Engine ranks candidate pools. Stateless apart from the weights, safe
// for concurrent use.
type Engine struct {
	weights Weights
}

// NewEngine creates a ranking engine with the given weights.
func NewEngine(w Weights) (*Engine, error) {
	if !w.Valid() {
		return nil, fmt.Errorf("ranking weights must sum to 1.0, got %.4f", w.Semantic+w.BudgetFit+w.PriceAdvantage)
	}
	return &Engine{weights: w}, nil
}

// Composite computes the weighted ordering score from the three sub-scores.
func (e *Engine) Composite(semantic, budgetFit, priceAdvantage float64) float64 {
	return e.weights.Semantic*semantic +
		e.weights.BudgetFit*budgetFit +
		e.weights.PriceAdvantage*priceAdvantage
}

// Rank scores the candidate pool and partitions it into within-budget
// results (truncated to top_k, filtered by min_score) and the full
// over-budget pool. Candidates with an unknown price are dropped as a
// data-quality fault without aborting the rest.
//
// Partitioning uses the hard price <= budget rule, independent of the
// composite score, so that over-budget candidates keep a meaningful
// score for alternative selection.
func (e *Engine) Rank(cands []candidate.Candidate, req *request.Request) (fits, over []candidate.Scored) {
	budget := req.Budget()

	fits = make([]candidate.Scored, 0, len(cands))
	over = make([]candidate.Scored, 0)

	for i := range cands {
		p := cands[i].Product()
		if !p.PriceKnown {
			continue
		}

		fit, adv := BudgetScore(&p, budget)
		composite := e.Composite(cands[i].Semantic(), fit, adv)
		scored := candidate.NewScored(cands[i], fit, adv, composite)

		if budget == nil || p.Price <= *budget {
			if composite >= req.MinScore() {
				fits = append(fits, scored)
			}
		} else {
			over = append(over, scored)
		}
	}

	sortByComposite(fits)
	sortByComposite(over)

	if len(fits) > req.TopK() {
		fits = fits[:req.TopK()]
	}
	return fits, over
}

// sortByComposite orders by composite descending, then semantic
// descending, then price ascending. Stable so repeated identical
// requests return identical order.
func sortByComposite(scored []candidate.Scored) {
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Composite() != scored[j].Composite() {
			return scored[i].Composite() > scored[j].Composite()
		}
		if scored[i].Semantic() != scored[j].Semantic() {
			return scored[i].Semantic() > scored[j].Semantic()
		}
		pi, pj := scored[i].Product(), scored[j].Product()
		return pi.Price < pj.Price
	})
}
