package ranking

import (
	"sort"

	"github.com/fincommerce/prodsearch/internal/domain/search/candidate"
	"github.com/fincommerce/prodsearch/internal/domain/search/response"
)

// SelectAlternatives picks over-budget fallbacks when the primary list
// came up short of top_k. Ordering is ascending overage first, then
// composite descending: once a product has failed the budget gate,
// "closest to affordable" matters more than raw relevance.
//
// Returns an empty (non-nil) slice when nothing qualifies.
func SelectAlternatives(over []candidate.Scored, budget float64, limit int) []response.Alternative {
	if limit <= 0 || len(over) == 0 {
		return []response.Alternative{}
	}

	ordered := make([]candidate.Scored, len(over))
	copy(ordered, over)

	sort.SliceStable(ordered, func(i, j int) bool {
		pi, pj := ordered[i].Product(), ordered[j].Product()
		oi, oj := pi.Price-budget, pj.Price-budget
		if oi != oj {
			return oi < oj
		}
		return ordered[i].Composite() > ordered[j].Composite()
	})

	if len(ordered) > limit {
		ordered = ordered[:limit]
	}

	alts := make([]response.Alternative, 0, len(ordered))
	for i := range ordered {
		p := ordered[i].Product()
		alts = append(alts, response.Alternative{
			Scored:      ordered[i],
			Explanation: ExplainAlternative(&ordered[i], budget),
			Overage:     p.Price - budget,
		})
	}
	return alts
}
