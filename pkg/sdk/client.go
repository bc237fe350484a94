package prodsearch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fincommerce/prodsearch/internal/db"
	dbRedis "github.com/fincommerce/prodsearch/internal/db/redis"
	"github.com/fincommerce/prodsearch/internal/domain"
	domfb "github.com/fincommerce/prodsearch/internal/domain/feedback"
	"github.com/fincommerce/prodsearch/internal/domain/search/request"
	"github.com/fincommerce/prodsearch/internal/domain/search/response"
	domusage "github.com/fincommerce/prodsearch/internal/domain/usage"
	catalogrepo "github.com/fincommerce/prodsearch/internal/repository/catalog"
	feedbackrepo "github.com/fincommerce/prodsearch/internal/repository/feedback"
	retrieverrepo "github.com/fincommerce/prodsearch/internal/repository/retriever"
	cataloguc "github.com/fincommerce/prodsearch/internal/usecase/catalog"
	feedbackuc "github.com/fincommerce/prodsearch/internal/usecase/feedback"
	healthuc "github.com/fincommerce/prodsearch/internal/usecase/health"
	"github.com/fincommerce/prodsearch/internal/usecase/ranking"
	searchuc "github.com/fincommerce/prodsearch/internal/usecase/search"
	usageuc "github.com/fincommerce/prodsearch/internal/usecase/usage"
)

const defaultReadinessTimeout = 10 * time.Second

const defaultVectorDimensions = 1536

// Internal interfaces so tests can substitute the wired services.
type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) (*response.Response, error)
}

type feedbackUseCase interface {
	Submit(ctx context.Context, rec *domfb.Record) (string, error)
	Count(ctx context.Context) (int64, error)
}

type catalogUseCase interface {
	IngestCSV(ctx context.Context, r io.Reader) (cataloguc.IngestReport, error)
	Stats(ctx context.Context) (cataloguc.Stats, error)
	Reindex(ctx context.Context) error
}

type usageUseCase interface {
	GetReport(ctx context.Context, period domusage.Period) domusage.Report
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the prodsearch SDK entry point.
type Client struct {
	store       db.Store
	searchSvc   searchUseCase
	feedbackSvc feedbackUseCase
	catalogSvc  catalogUseCase
	usageSvc    usageUseCase
	healthSvc   healthUseCase
	obs         *observer
}

// New creates a prodsearch Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		vectorDimensions: defaultVectorDimensions,
		semanticWeight:   0.6,
		budgetFitWeight:  0.3,
		priceAdvWeight:   0.1,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("prodsearch: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("prodsearch: create store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("prodsearch: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wireClient(store, cfg, obs)
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	engine, err := ranking.NewEngine(ranking.Weights{
		Semantic:       cfg.semanticWeight,
		BudgetFit:      cfg.budgetFitWeight,
		PriceAdvantage: cfg.priceAdvWeight,
	})
	if err != nil {
		return nil, fmt.Errorf("prodsearch: %w", err)
	}

	// Embedder: noop unless configured — Search and IngestCSV need one.
	var domEmb domain.Embedder = &noopEmbedder{}
	if cfg.embedder != nil {
		domEmb = &embedderAdapter{inner: cfg.embedder}
	}

	catRepo := catalogrepo.New(store, cfg.vectorDimensions)
	retriever := retrieverrepo.New(store, catRepo.IndexName())
	fbLog := feedbackrepo.New(store, cfg.feedbackMaxRecords)

	return &Client{
		store:       store,
		searchSvc:   searchuc.New(retriever, domEmb, engine),
		feedbackSvc: feedbackuc.New(fbLog),
		catalogSvc:  cataloguc.New(catRepo, catRepo, &batchAdapter{inner: domEmb}),
		usageSvc:    usageuc.New(nil), // nil = unlimited mode (no budget tracking in SDK)
		healthSvc:   healthuc.New(store, nil),
		obs:         obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// embedderAdapter wraps the public Embedder to satisfy internal domain.Embedder.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}
	return domain.EmbeddingResult{
		Embedding:    r.Embedding,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}

// BatchEmbed uses the public BatchEmbedder when available and falls back
// to one call per text otherwise.
func (a *embedderAdapter) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if be, ok := a.inner.(BatchEmbedder); ok {
		r, err := be.BatchEmbed(ctx, texts)
		if err != nil {
			return domain.BatchEmbeddingResult{}, fmt.Errorf("batch embed: %w", err)
		}
		return domain.BatchEmbeddingResult{
			Embeddings:   r.Embeddings,
			PromptTokens: r.PromptTokens,
			TotalTokens:  r.TotalTokens,
		}, nil
	}
	return domain.BatchFallback(ctx, a, texts)
}

// batchAdapter narrows a domain.Embedder to the catalog's batch contract.
type batchAdapter struct {
	inner domain.Embedder
}

func (b *batchAdapter) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if be, ok := b.inner.(domain.BatchEmbedder); ok {
		return be.BatchEmbed(ctx, texts)
	}
	return domain.BatchFallback(ctx, b.inner, texts)
}

// noopEmbedder returns an error on Embed call (used when no embedder configured).
type noopEmbedder struct{}

func (noopEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	return domain.EmbeddingResult{}, errors.New(
		"prodsearch: embedder not configured (use WithEmbedder)",
	)
}
