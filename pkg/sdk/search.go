package prodsearch

import (
	"context"
	"fmt"
	"time"

	"github.com/fincommerce/prodsearch/internal/domain/search/candidate"
	"github.com/fincommerce/prodsearch/internal/domain/search/request"
	"github.com/fincommerce/prodsearch/internal/domain/search/response"
)

// Search ranks the catalog against the query under the optional budget.
// Over-budget products never appear in Results; close matches above the
// budget are offered in Alternatives when Results comes up short.
func (c *Client) Search(ctx context.Context, params SearchParams) (res *SearchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	req, err := request.New(
		params.Query, params.Budget, params.TopK,
		params.Category, params.MinScore, params.AlternativesLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("prodsearch: %w: %w", ErrInvalidRequest, err)
	}

	resp, err := c.searchSvc.Search(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("prodsearch: search: %w", err)
	}

	return searchResultFromDomain(resp), nil
}

func searchResultFromDomain(resp *response.Response) *SearchResult {
	results := make([]RankedProduct, len(resp.Results))
	for i := range resp.Results {
		results[i] = rankedFromScored(&resp.Results[i].Scored, resp.Results[i].Explanation, 0)
	}

	alternatives := make([]RankedProduct, len(resp.Alternatives))
	for i := range resp.Alternatives {
		alt := &resp.Alternatives[i]
		alternatives[i] = rankedFromScored(&alt.Scored, alt.Explanation, alt.Overage)
	}

	return &SearchResult{
		Query:        resp.Query,
		Budget:       resp.Budget,
		TotalResults: resp.TotalResults,
		Results:      results,
		Alternatives: alternatives,
		Elapsed:      resp.Elapsed,
	}
}

func rankedFromScored(s *candidate.Scored, explanation string, overage float64) RankedProduct {
	p := s.Product()
	return RankedProduct{
		ID:             p.ID,
		Title:          p.Title,
		Price:          p.Price,
		Category:       p.Category,
		Brand:          p.Brand,
		Rating:         p.Rating,
		SemanticScore:  s.Semantic(),
		BudgetFit:      s.BudgetFit(),
		PriceAdvantage: s.PriceAdvantage(),
		CompositeScore: s.Composite(),
		Explanation:    explanation,
		Overage:        overage,
	}
}
