package catalog

import (
	"context"

	"github.com/fincommerce/prodsearch/internal/domain"
	"github.com/fincommerce/prodsearch/internal/domain/product"
)

// Store persists catalog records with their embedding vectors.
type Store interface {
	BatchUpsert(ctx context.Context, products []product.Product, vectors [][]float32) error
	Count(ctx context.Context) (int, error)
}

// IndexManager manages the vector index lifecycle.
type IndexManager interface {
	EnsureIndex(ctx context.Context) error
	DropIndex(ctx context.Context) error
	IndexExists(ctx context.Context) (bool, error)
	IndexName() string
}

// Embedder vectorizes product texts in batches.
type Embedder interface {
	BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error)
}
