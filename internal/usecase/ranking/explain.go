package ranking

import (
	"fmt"

	"github.com/fincommerce/prodsearch/internal/domain/search/candidate"
)

// Explain produces the justification text for a primary result. The
// wording is a fixed template over the candidate's own scores, so equal
// inputs always produce equal text. Percentages are rendered to one
// decimal place, amounts to two.
func Explain(s *candidate.Scored, budget *float64) string {
	matchPct := s.Semantic() * 100
	p := s.Product()

	if budget == nil {
		return fmt.Sprintf("Matches your intent (%.1f%% match).", matchPct)
	}

	diff := *budget - p.Price
	switch {
	case diff > 0:
		return fmt.Sprintf("Matches your intent (%.1f%% match) and is €%.2f under budget.", matchPct, diff)
	case diff == 0:
		return fmt.Sprintf("Matches your intent (%.1f%% match) and fits your budget exactly.", matchPct)
	default:
		return fmt.Sprintf("Matches your intent (%.1f%% match) but exceeds your budget by €%.2f.", matchPct, -diff)
	}
}

// ExplainAlternative produces the justification text for an over-budget
// alternative. Worded distinctly from the primary over-budget case so a
// reader can tell from the text alone which list the item came from.
func ExplainAlternative(s *candidate.Scored, budget float64) string {
	p := s.Product()
	overage := p.Price - budget
	return fmt.Sprintf("Close alternative above budget: strong match (%.1f%%), €%.2f over your €%.2f limit.",
		s.Semantic()*100, overage, budget)
}
