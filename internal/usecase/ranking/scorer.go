package ranking

import "github.com/fincommerce/prodsearch/internal/domain/product"

// Budget fit is binary-with-floor: any product within budget is rewarded
// equally, over-budget products compete weakly instead of being excluded.
const (
	fitWithinBudget = 1.0
	fitOverBudget   = 0.5
)

// BudgetScore computes the budget-fit and price-advantage sub-scores for
// one product against one budget. A nil budget neutralizes the budget
// dimension: fit 1.0, advantage 0.0.
//
// Price advantage is the signed savings ratio (budget − price) / budget.
// It is deliberately not clamped at zero: a badly over-budget item must
// score worse than a marginally over-budget one.
func BudgetScore(p *product.Product, budget *float64) (budgetFit, priceAdvantage float64) {
	if budget == nil {
		return fitWithinBudget, 0
	}

	priceAdvantage = (*budget - p.Price) / *budget
	if priceAdvantage > 1 {
		priceAdvantage = 1 // price < 0 cannot happen past validation; guard anyway
	}

	if p.Price <= *budget {
		return fitWithinBudget, priceAdvantage
	}
	return fitOverBudget, priceAdvantage
}
