package ranking

import (
	"time"

	"github.com/fincommerce/prodsearch/internal/domain/search/candidate"
	"github.com/fincommerce/prodsearch/internal/domain/search/request"
	"github.com/fincommerce/prodsearch/internal/domain/search/response"
)

// Assemble builds the final response from the ranked partitions.
// Alternatives are attached only when the primary list fell short of
// top_k and a budget was given (without a budget nothing is over it).
// total_results counts the primary list only.
func Assemble(req *request.Request, fits, over []candidate.Scored, elapsed time.Duration) *response.Response {
	results := make([]response.RankedResult, 0, len(fits))
	for i := range fits {
		results = append(results, response.RankedResult{
			Scored:      fits[i],
			Explanation: Explain(&fits[i], req.Budget()),
		})
	}

	alternatives := []response.Alternative{}
	if budget := req.Budget(); budget != nil && len(fits) < req.TopK() {
		alternatives = SelectAlternatives(over, *budget, req.AltLimit())
	}

	return &response.Response{
		Query:        req.Query(),
		Budget:       req.Budget(),
		TotalResults: len(results),
		Results:      results,
		Alternatives: alternatives,
		Elapsed:      elapsed,
	}
}
