// Package catalog handles product ingestion: CSV parsing, validation,
// vectorization and storage, plus catalog-level stats.
package catalog

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/fincommerce/prodsearch/internal/domain"
	"github.com/fincommerce/prodsearch/internal/logger"
)

// IngestBatchSize bounds how many products are embedded and written per round trip.
const IngestBatchSize = 64

// Service handles catalog ingestion and stats.
type Service struct {
	store Store
	index IndexManager
	embed Embedder
}

// New creates a catalog service.
func New(store Store, index IndexManager, embed Embedder) *Service {
	return &Service{store: store, index: index, embed: embed}
}

// IngestReport summarizes one ingestion run.
type IngestReport struct {
	Loaded  int
	Skipped int
	Tokens  int
}

// IngestCSV parses, validates, vectorizes and stores a catalog CSV.
// Invalid rows are skipped and counted; the index is created first so a
// partially ingested catalog is still searchable.
func (s *Service) IngestCSV(ctx context.Context, r io.Reader) (IngestReport, error) {
	products, skipped, err := ParseCSV(r)
	if err != nil {
		return IngestReport{}, fmt.Errorf("parse catalog: %w", err)
	}
	if len(products) == 0 {
		return IngestReport{Skipped: skipped}, fmt.Errorf("no valid products in catalog")
	}

	if err := s.index.EnsureIndex(ctx); err != nil {
		return IngestReport{}, fmt.Errorf("ensure index: %w", err)
	}

	report := IngestReport{Skipped: skipped}
	log := logger.FromContext(ctx)

	for start := 0; start < len(products); start += IngestBatchSize {
		end := min(start+IngestBatchSize, len(products))
		batch := products[start:end]

		texts := make([]string, len(batch))
		for i := range batch {
			texts[i] = batch[i].EmbeddingText()
		}

		emb, err := s.embed.BatchEmbed(ctx, texts)
		if err != nil {
			return report, fmt.Errorf("vectorize batch at %d: %w", start, err)
		}
		if len(emb.Embeddings) != len(batch) {
			return report, fmt.Errorf("vectorize batch at %d: got %d vectors for %d products",
				start, len(emb.Embeddings), len(batch))
		}
		report.Tokens += emb.TotalTokens

		if err := s.store.BatchUpsert(ctx, batch, emb.Embeddings); err != nil {
			return report, fmt.Errorf("store batch at %d: %w", start, err)
		}
		report.Loaded += len(batch)

		log.Debug("catalog batch stored",
			zap.Int("offset", start), zap.Int("size", len(batch)))
	}

	log.Info("catalog ingested",
		zap.Int("loaded", report.Loaded),
		zap.Int("skipped", report.Skipped),
		zap.Int("tokens", report.Tokens))
	return report, nil
}

// Stats describes the indexed catalog.
type Stats struct {
	Products  int
	Indexed   bool
	IndexName string
}

// Stats reports catalog size and index presence.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	exists, err := s.index.IndexExists(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("check index: %w", err)
	}
	if !exists {
		return Stats{}, domain.ErrCatalogNotIndexed
	}

	n, err := s.store.Count(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count products: %w", err)
	}
	return Stats{Products: n, Indexed: true, IndexName: s.index.IndexName()}, nil
}

// Reindex drops and recreates the vector index. Stored products are
// re-indexed by the server in the background.
func (s *Service) Reindex(ctx context.Context) error {
	if err := s.index.DropIndex(ctx); err != nil {
		return fmt.Errorf("drop index: %w", err)
	}
	if err := s.index.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("recreate index: %w", err)
	}
	return nil
}
