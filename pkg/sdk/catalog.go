package prodsearch

import (
	"context"
	"fmt"
	"io"
	"time"
)

// IngestCSV parses, validates, vectorizes and stores a catalog CSV.
// Rows that fail validation are skipped and counted in the report.
func (c *Client) IngestCSV(ctx context.Context, r io.Reader) (rep IngestReport, err error) {
	start := time.Now()
	defer func() { c.obs.observe("ingest", start, err) }()

	report, err := c.catalogSvc.IngestCSV(ctx, r)
	if err != nil {
		return IngestReport{}, fmt.Errorf("prodsearch: ingest: %w", err)
	}
	return IngestReport{
		Loaded:  report.Loaded,
		Skipped: report.Skipped,
		Tokens:  report.Tokens,
	}, nil
}

// CatalogStats reports indexed product count and index presence.
func (c *Client) CatalogStats(ctx context.Context) (stats CatalogStats, err error) {
	start := time.Now()
	defer func() { c.obs.observe("stats", start, err) }()

	s, err := c.catalogSvc.Stats(ctx)
	if err != nil {
		return CatalogStats{}, fmt.Errorf("prodsearch: stats: %w", err)
	}
	return CatalogStats{Products: s.Products, Indexed: s.Indexed, IndexName: s.IndexName}, nil
}

// Reindex drops and recreates the vector index.
func (c *Client) Reindex(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("reindex", start, err) }()

	if err = c.catalogSvc.Reindex(ctx); err != nil {
		return fmt.Errorf("prodsearch: reindex: %w", err)
	}
	return nil
}
