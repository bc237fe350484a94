// Package retriever turns KNN search hits into ranking candidates.
package retriever

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fincommerce/prodsearch/internal/db"
	"github.com/fincommerce/prodsearch/internal/domain"
	"github.com/fincommerce/prodsearch/internal/domain/search/candidate"
	"github.com/fincommerce/prodsearch/internal/repository/catalog"
)

// store is the consumer interface for candidate retrieval (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Repo implements usecase/search.Retriever over the product index.
type Repo struct {
	store store
	index string
}

// New creates a retriever for the given product index.
func New(s store, indexName string) *Repo {
	return &Repo{store: s, index: indexName}
}

// Retrieve runs a KNN query and maps hits to candidates. The search
// score is cosine similarity in [0,1]. An optional category narrows the
// pool via a TAG pre-filter.
func (r *Repo) Retrieve(
	ctx context.Context, vector []float32, category string, k int,
) ([]candidate.Candidate, error) {
	returnFields := make([]string, 0, len(catalog.ReturnFields)+1)
	returnFields = append(returnFields, catalog.ReturnFields...)
	returnFields = append(returnFields, "__vector_score")

	q := &db.KNNQuery{
		IndexName:    r.index,
		Vector:       vector,
		K:            k,
		ReturnFields: returnFields,
	}
	if category != "" {
		q.Filter = db.TagFilter("category", category)
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return nil, domain.ErrCatalogNotIndexed
		}
		return nil, fmt.Errorf("search knn: %w", err)
	}

	cands := make([]candidate.Candidate, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		id := strings.TrimPrefix(entry.Key, domain.KeyPrefix+"product:")
		p := catalog.ParseHashFields(id, entry.Fields)
		cands = append(cands, candidate.New(p, entry.Score))
	}
	return cands, nil
}
