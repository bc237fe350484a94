package prodsearch

import (
	"context"
	"io"

	domfb "github.com/fincommerce/prodsearch/internal/domain/feedback"
	"github.com/fincommerce/prodsearch/internal/domain/search/request"
	"github.com/fincommerce/prodsearch/internal/domain/search/response"
	domusage "github.com/fincommerce/prodsearch/internal/domain/usage"
	cataloguc "github.com/fincommerce/prodsearch/internal/usecase/catalog"
	healthuc "github.com/fincommerce/prodsearch/internal/usecase/health"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, req *request.Request) (*response.Response, error)
}

func (m *mockSearchUC) Search(ctx context.Context, req *request.Request) (*response.Response, error) {
	return m.searchFn(ctx, req)
}

// --- feedbackUseCase mock ---

type mockFeedbackUC struct {
	submitFn func(ctx context.Context, rec *domfb.Record) (string, error)
	countFn  func(ctx context.Context) (int64, error)
}

func (m *mockFeedbackUC) Submit(ctx context.Context, rec *domfb.Record) (string, error) {
	return m.submitFn(ctx, rec)
}

func (m *mockFeedbackUC) Count(ctx context.Context) (int64, error) {
	return m.countFn(ctx)
}

// --- catalogUseCase mock ---

type mockCatalogUC struct {
	ingestFn  func(ctx context.Context, r io.Reader) (cataloguc.IngestReport, error)
	statsFn   func(ctx context.Context) (cataloguc.Stats, error)
	reindexFn func(ctx context.Context) error
}

func (m *mockCatalogUC) IngestCSV(ctx context.Context, r io.Reader) (cataloguc.IngestReport, error) {
	return m.ingestFn(ctx, r)
}

func (m *mockCatalogUC) Stats(ctx context.Context) (cataloguc.Stats, error) {
	return m.statsFn(ctx)
}

func (m *mockCatalogUC) Reindex(ctx context.Context) error {
	return m.reindexFn(ctx)
}

// --- usageUseCase mock ---

type mockUsageUC struct {
	reportFn func(ctx context.Context, period domusage.Period) domusage.Report
}

func (m *mockUsageUC) GetReport(ctx context.Context, period domusage.Period) domusage.Report {
	return m.reportFn(ctx, period)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	checkFn func(ctx context.Context) healthuc.Report
}

func (m *mockHealthUC) Check(ctx context.Context) healthuc.Report {
	return m.checkFn(ctx)
}
