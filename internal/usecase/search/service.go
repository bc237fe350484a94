// Package search orchestrates a product search: embed the query,
// retrieve the candidate pool, rank it under the budget and assemble
// the explained response.
package search

import (
	"context"
	"fmt"
	"time"

	"github.com/fincommerce/prodsearch/internal/domain"
	"github.com/fincommerce/prodsearch/internal/domain/search/request"
	"github.com/fincommerce/prodsearch/internal/domain/search/response"
	"github.com/fincommerce/prodsearch/internal/usecase/ranking"
)

// Pool sizing: over-fetch beyond top_k so the over-budget partition has
// material to offer as alternatives.
const (
	poolFactor = 3
	maxPool    = 100
)

// Service handles ranked product search.
type Service struct {
	retriever Retriever
	embed     Embedder
	engine    *ranking.Engine
}

// New creates a search service.
func New(retriever Retriever, embed Embedder, engine *ranking.Engine) *Service {
	return &Service{retriever: retriever, embed: embed, engine: engine}
}

// Search runs the full pipeline for one validated request. An empty
// candidate pool is not an error: the response is valid with zero
// results.
func (s *Service) Search(ctx context.Context, req *request.Request) (*response.Response, error) {
	start := time.Now()

	embResult, err := s.embed.Embed(ctx, req.Query())
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	domain.UsageFromContext(ctx).AddTokens(embResult.TotalTokens)

	pool, err := s.retriever.Retrieve(ctx, embResult.Embedding, req.Category(), poolSize(req))
	if err != nil {
		return nil, fmt.Errorf("retrieve candidates: %w", err)
	}

	fits, over := s.engine.Rank(pool, req)

	return ranking.Assemble(req, fits, over, time.Since(start)), nil
}

func poolSize(req *request.Request) int {
	k := req.TopK() * poolFactor
	if k < req.TopK()+req.AltLimit() {
		k = req.TopK() + req.AltLimit()
	}
	if k > maxPool {
		k = maxPool
	}
	return k
}
