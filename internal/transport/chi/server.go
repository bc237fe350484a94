package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fincommerce/prodsearch/internal/domain"
	"github.com/fincommerce/prodsearch/internal/domain/search/request"
	domusage "github.com/fincommerce/prodsearch/internal/domain/usage"
	"github.com/fincommerce/prodsearch/internal/metrics"
	cataloguc "github.com/fincommerce/prodsearch/internal/usecase/catalog"
	feedbackuc "github.com/fincommerce/prodsearch/internal/usecase/feedback"
	healthuc "github.com/fincommerce/prodsearch/internal/usecase/health"
	searchuc "github.com/fincommerce/prodsearch/internal/usecase/search"
	usageuc "github.com/fincommerce/prodsearch/internal/usecase/usage"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// EmbeddingInfo describes the embedding backend for the stats endpoint.
type EmbeddingInfo struct {
	Model      string
	Dimensions int
}

// Server holds the HTTP handlers for the product search API.
type Server struct {
	search        *searchuc.Service
	feedback      *feedbackuc.Service
	catalog       *cataloguc.Service
	usage         *usageuc.Service
	health        *healthuc.Service
	embedding     EmbeddingInfo
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	feedback *feedbackuc.Service,
	catalog *cataloguc.Service,
	usage *usageuc.Service,
	health *healthuc.Service,
	embedding EmbeddingInfo,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:    search,
		feedback:  feedback,
		catalog:   catalog,
		usage:     usage,
		health:    health,
		embedding: embedding,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrInvalidFeedback, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrProductNotFound, http.StatusNotFound, CodeProductNotFound),
		sentinelHandler(domain.ErrCatalogNotIndexed, http.StatusServiceUnavailable, CodeCatalogNotIndexed),
		sentinelHandler(domain.ErrEmbeddingQuotaExceeded,
			http.StatusPaymentRequired, CodeEmbeddingQuotaExceeded),
		sentinelHandler(domain.ErrEmbeddingProviderError,
			http.StatusBadGateway, CodeEmbeddingProviderError),
	}
	return s
}

// Routes registers all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", s.SearchProducts)
		r.Post("/feedback", s.SubmitFeedback)
	})
	r.Get("/stats", s.CatalogStats)
	r.Get("/usage", s.GetUsage)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// SearchProducts handles POST /api/v1/search.
func (s *Server) SearchProducts(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	searchReq, err := request.New(
		req.Query, req.Budget, req.TopK, req.Category, req.MinScore, req.AlternativesLimit,
	)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}

	budgeted := "no"
	if req.Budget != nil {
		budgeted = "yes"
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	resp, err := s.search.Search(ctx, &searchReq)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error", budgeted).Inc()
		s.handleDomainError(w, err)
		return
	}

	metrics.SearchRequestsTotal.WithLabelValues("success", budgeted).Inc()
	metrics.SearchDuration.WithLabelValues(budgeted).Observe(resp.Elapsed.Seconds())
	metrics.SearchResultsReturned.WithLabelValues(budgeted).Observe(float64(len(resp.Results)))
	metrics.SearchAlternativesReturned.Add(float64(len(resp.Alternatives)))

	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusOK, searchResponseToDTO(resp))
}

// SubmitFeedback handles POST /api/v1/feedback.
func (s *Server) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	id, err := s.feedback.Submit(r.Context(), recordFromFeedback(req))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, FeedbackResponse{
		ID:     id,
		Status: "accepted",
	})
}

// CatalogStats handles GET /stats.
func (s *Server) CatalogStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.catalog.Stats(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := StatsResponse{
		Products:            stats.Products,
		Indexed:             stats.Indexed,
		IndexName:           stats.IndexName,
		EmbeddingModel:      s.embedding.Model,
		EmbeddingDimensions: s.embedding.Dimensions,
	}

	if n, err := s.feedback.Count(r.Context()); err == nil {
		resp.FeedbackRecords = n
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetUsage handles GET /usage.
func (s *Server) GetUsage(w http.ResponseWriter, r *http.Request) {
	period := domusage.PeriodMonth
	switch r.URL.Query().Get("period") {
	case "day":
		period = domusage.PeriodDay
	case "total":
		period = domusage.PeriodTotal
	}

	report := s.usage.GetReport(r.Context(), period)

	resp := UsageResponse{
		Period: string(report.Period()),
		Usage:  UsageMetrics{Tokens: report.TokensUsed()},
		Budget: BudgetStatus{
			TokensLimit:     report.Budget().TokensLimit(),
			TokensRemaining: report.Budget().TokensRemaining(),
			IsExhausted:     report.Budget().IsExhausted(),
		},
	}

	if report.PeriodStart() > 0 {
		start := unixMilliUTC(report.PeriodStart())
		end := unixMilliUTC(report.PeriodEnd())
		resp.PeriodStartAt = &start
		resp.PeriodEndAt = &end
	}

	if report.Budget().ResetsAt() > 0 {
		resetsAt := unixMilliUTC(report.Budget().ResetsAt())
		resp.Budget.ResetsAt = &resetsAt
	}

	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func setEmbeddingHeaders(w http.ResponseWriter, usage *domain.EmbeddingUsage) {
	if usage != nil && usage.Used {
		w.Header().Set("X-Embedding-Tokens", strconv.Itoa(usage.TotalTokens))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidRequest,
		domain.ErrInvalidFeedback,
		domain.ErrProductNotFound,
		domain.ErrCatalogNotIndexed,
		domain.ErrEmbeddingQuotaExceeded,
		domain.ErrEmbeddingProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
