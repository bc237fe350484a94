package search

import (
	"context"
	"errors"
	"testing"

	"github.com/fincommerce/prodsearch/internal/domain"
	"github.com/fincommerce/prodsearch/internal/domain/product"
	"github.com/fincommerce/prodsearch/internal/domain/search/candidate"
	"github.com/fincommerce/prodsearch/internal/domain/search/request"
	"github.com/fincommerce/prodsearch/internal/usecase/ranking"
)

type stubEmbedder struct {
	result domain.EmbeddingResult
	err    error
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	return s.result, s.err
}

type stubRetriever struct {
	pool   []candidate.Candidate
	err    error
	gotK   int
	gotCat string
}

func (s *stubRetriever) Retrieve(_ context.Context, _ []float32, category string, k int) ([]candidate.Candidate, error) {
	s.gotK = k
	s.gotCat = category
	return s.pool, s.err
}

func ptr(f float64) *float64 { return &f }

func newService(t *testing.T, r Retriever, e Embedder) *Service {
	t.Helper()
	engine, err := ranking.NewEngine(ranking.DefaultWeights())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return New(r, e, engine)
}

func prod(id string, price, semantic float64) candidate.Candidate {
	return candidate.New(product.Product{ID: id, Title: id, Price: price, PriceKnown: true}, semantic)
}

func TestSearchPipeline(t *testing.T) {
	retriever := &stubRetriever{pool: []candidate.Candidate{
		prod("A", 1199, 0.85),
		prod("B", 1601, 0.90),
	}}
	embedder := &stubEmbedder{result: domain.EmbeddingResult{
		Embedding:   []float32{0.1, 0.2},
		TotalTokens: 7,
	}}
	svc := newService(t, retriever, embedder)

	req, err := request.New("gaming laptop", ptr(1500), 5, "electronics", 0, 0)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}

	ctx, usage := domain.NewContextWithUsage(context.Background())

	resp, err := svc.Search(ctx, &req)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if resp.TotalResults != 1 || resp.Results[0].Scored.Product().ID != "A" {
		t.Fatalf("results = %+v, want single A", resp.Results)
	}
	if len(resp.Alternatives) != 1 || resp.Alternatives[0].Scored.Product().ID != "B" {
		t.Fatalf("alternatives = %+v, want single B", resp.Alternatives)
	}
	if resp.Alternatives[0].Overage != 101 {
		t.Errorf("overage = %v, want 101", resp.Alternatives[0].Overage)
	}
	if resp.Elapsed <= 0 {
		t.Error("elapsed not measured")
	}
	if retriever.gotCat != "electronics" {
		t.Errorf("category filter not forwarded: %q", retriever.gotCat)
	}
	if retriever.gotK < 5 {
		t.Errorf("pool size %d must be at least top_k", retriever.gotK)
	}
	if usage.TotalTokens != 7 {
		t.Errorf("embedding tokens not recorded: %d", usage.TotalTokens)
	}
}

func TestSearchEmptyPool(t *testing.T) {
	svc := newService(t, &stubRetriever{}, &stubEmbedder{
		result: domain.EmbeddingResult{Embedding: []float32{0.1}},
	})

	req, _ := request.New("nothing", ptr(100), 5, "", 0, 0)
	resp, err := svc.Search(context.Background(), &req)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if resp.TotalResults != 0 || len(resp.Results) != 0 || len(resp.Alternatives) != 0 {
		t.Fatalf("empty pool must produce an empty valid response, got %+v", resp)
	}
}

func TestSearchEmbedderError(t *testing.T) {
	svc := newService(t, &stubRetriever{}, &stubEmbedder{err: errors.New("provider down")})

	req, _ := request.New("laptop", nil, 5, "", 0, 0)
	if _, err := svc.Search(context.Background(), &req); err == nil {
		t.Fatal("expected error when embedding fails")
	}
}

func TestSearchRetrieverError(t *testing.T) {
	svc := newService(t, &stubRetriever{err: errors.New("index gone")},
		&stubEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1}}})

	req, _ := request.New("laptop", nil, 5, "", 0, 0)
	if _, err := svc.Search(context.Background(), &req); err == nil {
		t.Fatal("expected error when retrieval fails")
	}
}

func TestPoolSizeCoversAlternatives(t *testing.T) {
	req, _ := request.New("q", ptr(10), 40, "", 0, 45)
	if k := poolSize(&req); k != maxPool {
		t.Errorf("poolSize = %d, want clamped to %d", k, maxPool)
	}

	small, _ := request.New("q", ptr(10), 2, "", 0, 0)
	if k := poolSize(&small); k != 6 {
		t.Errorf("poolSize = %d, want 6", k)
	}
}
