package search

import (
	"context"

	"github.com/fincommerce/prodsearch/internal/domain"
	"github.com/fincommerce/prodsearch/internal/domain/search/candidate"
)

// Retriever fetches the semantic candidate pool for a query vector.
// k is the pool size, not the response size; the ranking core decides
// what survives.
type Retriever interface {
	Retrieve(ctx context.Context, vector []float32, category string, k int) ([]candidate.Candidate, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
