// Package catalog persists product records as hashes with an attached
// FT vector index.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/fincommerce/prodsearch/internal/db"
	"github.com/fincommerce/prodsearch/internal/domain"
	"github.com/fincommerce/prodsearch/internal/domain/product"
)

// store is the consumer interface for catalog persistence (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
}

const (
	keyPrefix = domain.KeyPrefix + "product:"
	indexName = domain.KeyPrefix + "products:idx"
)

// Repo implements catalog storage and index lifecycle.
type Repo struct {
	store     store
	vectorDim int
}

// New creates a catalog repository. vectorDim must match the embedding
// model's output dimension.
func New(s store, vectorDim int) *Repo {
	return &Repo{store: s, vectorDim: vectorDim}
}

// IndexName returns the FT index the catalog is searchable under.
func (r *Repo) IndexName() string { return indexName }

// BatchUpsert stores products with their vectors in one pipelined round trip.
func (r *Repo) BatchUpsert(ctx context.Context, products []product.Product, vectors [][]float32) error {
	if len(products) != len(vectors) {
		return fmt.Errorf("batch upsert: %d products but %d vectors", len(products), len(vectors))
	}

	items := make([]db.HashSetItem, len(products))
	for i := range products {
		items[i] = db.HashSetItem{
			Key:    keyPrefix + products[i].ID,
			Fields: BuildHashFields(&products[i], vectors[i]),
		}
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("batch upsert: %w", err)
	}
	return nil
}

// Get loads a single product by ID.
func (r *Repo) Get(ctx context.Context, id string) (product.Product, error) {
	fields, err := r.store.HGetAll(ctx, keyPrefix+id)
	if err != nil {
		return product.Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	if len(fields) == 0 {
		return product.Product{}, domain.ErrProductNotFound
	}
	return ParseHashFields(id, fields), nil
}

// Delete removes a product by ID.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, keyPrefix+id); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	return nil
}

// Count returns the number of indexed products.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, indexName, "*")
	if err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return 0, domain.ErrCatalogNotIndexed
		}
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// EnsureIndex creates the product index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	err := r.store.CreateIndex(ctx, r.indexDefinition())
	if err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create product index: %w", err)
	}
	return nil
}

// DropIndex removes the product index, leaving the hashes in place.
func (r *Repo) DropIndex(ctx context.Context) error {
	if err := r.store.DropIndex(ctx, indexName); err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return nil
		}
		return fmt.Errorf("drop product index: %w", err)
	}
	return nil
}

// IndexExists reports whether the product index is present.
func (r *Repo) IndexExists(ctx context.Context) (bool, error) {
	exists, err := r.store.IndexExists(ctx, indexName)
	if err != nil {
		return false, fmt.Errorf("check product index: %w", err)
	}
	return exists, nil
}

func (r *Repo) indexDefinition() *db.IndexDefinition {
	return &db.IndexDefinition{
		Name:     indexName,
		Prefixes: []string{keyPrefix},
		Fields: []db.IndexField{
			{Name: fieldCategory, Type: db.IndexFieldTag, TagSeparator: ";"},
			{Name: fieldBrand, Type: db.IndexFieldTag, TagSeparator: ";"},
			{Name: fieldBudgetBand, Type: db.IndexFieldTag, TagSeparator: ";"},
			{Name: fieldTags, Type: db.IndexFieldTag, TagSeparator: ";"},
			{Name: fieldPrice, Type: db.IndexFieldNumeric},
			{Name: fieldRating, Type: db.IndexFieldNumeric},
			{
				Name:              fieldVector,
				Type:              db.IndexFieldVector,
				VectorAlgo:        db.VectorHNSW,
				VectorDim:         r.vectorDim,
				VectorDistance:    db.DistanceCosine,
				VectorM:           16,
				VectorEFConstruct: 200,
			},
		},
	}
}
