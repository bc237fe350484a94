package chi

import (
	"time"

	domfb "github.com/fincommerce/prodsearch/internal/domain/feedback"
	"github.com/fincommerce/prodsearch/internal/domain/search/candidate"
	"github.com/fincommerce/prodsearch/internal/domain/search/response"
)

// ErrorCode identifies an API error category for clients.
type ErrorCode string

// API error codes.
const (
	CodeBadRequest             ErrorCode = "bad_request"
	CodeValidationFailed       ErrorCode = "validation_failed"
	CodeUnauthorized           ErrorCode = "unauthorized"
	CodeProductNotFound        ErrorCode = "product_not_found"
	CodeCatalogNotIndexed      ErrorCode = "catalog_not_indexed"
	CodeEmbeddingQuotaExceeded ErrorCode = "embedding_quota_exceeded"
	CodeEmbeddingProviderError ErrorCode = "embedding_provider_error"
	CodeInternalError          ErrorCode = "internal_error"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// SearchRequest is the POST /api/v1/search body.
type SearchRequest struct {
	Query             string   `json:"query"`
	Budget            *float64 `json:"budget,omitempty"`
	TopK              int      `json:"top_k,omitempty"`
	Category          string   `json:"category,omitempty"`
	MinScore          float64  `json:"min_score,omitempty"`
	AlternativesLimit int      `json:"alternatives_limit,omitempty"`
}

// ResultItem is a single ranked product in a search response. Overage is
// set only on over-budget alternatives.
type ResultItem struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Price          float64  `json:"price"`
	Category       string   `json:"category"`
	Brand          string   `json:"brand,omitempty"`
	Rating         float64  `json:"rating,omitempty"`
	SemanticScore  float64  `json:"semantic_score"`
	BudgetFit      float64  `json:"budget_fit"`
	PriceAdvantage float64  `json:"price_advantage"`
	CompositeScore float64  `json:"composite_score"`
	Explanation    string   `json:"explanation"`
	Overage        *float64 `json:"overage,omitempty"`
}

// SearchResponse is the POST /api/v1/search response body.
type SearchResponse struct {
	Query        string       `json:"query"`
	Budget       *float64     `json:"budget,omitempty"`
	TotalResults int          `json:"total_results"`
	Results      []ResultItem `json:"results"`
	Alternatives []ResultItem `json:"alternatives"`
	TookMs       float64      `json:"took_ms"`
}

// FeedbackRequest is the POST /api/v1/feedback body.
type FeedbackRequest struct {
	UserID    string            `json:"user_id"`
	Action    string            `json:"action"`
	ProductID string            `json:"product_id"`
	Query     string            `json:"query"`
	Budget    *float64          `json:"budget,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Extra     map[string]string `json:"extra,omitempty"`
}

// FeedbackResponse acknowledges a stored feedback record.
type FeedbackResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// StatsResponse is the GET /stats body.
type StatsResponse struct {
	Products            int    `json:"products"`
	Indexed             bool   `json:"indexed"`
	IndexName           string `json:"index_name"`
	FeedbackRecords     int64  `json:"feedback_records"`
	EmbeddingModel      string `json:"embedding_model"`
	EmbeddingDimensions int    `json:"embedding_dimensions"`
}

// UsageMetrics is the usage section of a usage report.
type UsageMetrics struct {
	Tokens int64 `json:"tokens"`
}

// BudgetStatus is the budget section of a usage report.
type BudgetStatus struct {
	TokensLimit     int64      `json:"tokens_limit"`
	TokensRemaining int64      `json:"tokens_remaining"`
	IsExhausted     bool       `json:"is_exhausted"`
	ResetsAt        *time.Time `json:"resets_at,omitempty"`
}

// UsageResponse is the GET /usage body.
type UsageResponse struct {
	Period        string       `json:"period"`
	PeriodStartAt *time.Time   `json:"period_start_at,omitempty"`
	PeriodEndAt   *time.Time   `json:"period_end_at,omitempty"`
	Usage         UsageMetrics `json:"usage"`
	Budget        BudgetStatus `json:"budget"`
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func scoredToItem(s *candidate.Scored, explanation string) ResultItem {
	p := s.Product()
	return ResultItem{
		ID:             p.ID,
		Title:          p.Title,
		Price:          p.Price,
		Category:       p.Category,
		Brand:          p.Brand,
		Rating:         p.Rating,
		SemanticScore:  s.Semantic(),
		BudgetFit:      s.BudgetFit(),
		PriceAdvantage: s.PriceAdvantage(),
		CompositeScore: s.Composite(),
		Explanation:    explanation,
	}
}

func searchResponseToDTO(resp *response.Response) SearchResponse {
	results := make([]ResultItem, len(resp.Results))
	for i := range resp.Results {
		results[i] = scoredToItem(&resp.Results[i].Scored, resp.Results[i].Explanation)
	}

	alternatives := make([]ResultItem, len(resp.Alternatives))
	for i := range resp.Alternatives {
		alt := &resp.Alternatives[i]
		item := scoredToItem(&alt.Scored, alt.Explanation)
		overage := alt.Overage
		item.Overage = &overage
		alternatives[i] = item
	}

	return SearchResponse{
		Query:        resp.Query,
		Budget:       resp.Budget,
		TotalResults: resp.TotalResults,
		Results:      results,
		Alternatives: alternatives,
		TookMs:       float64(resp.Elapsed.Microseconds()) / 1000.0,
	}
}

func unixMilliUTC(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func recordFromFeedback(req FeedbackRequest) *domfb.Record {
	return &domfb.Record{
		UserID:    req.UserID,
		Action:    domfb.Action(req.Action),
		ProductID: req.ProductID,
		Query:     req.Query,
		Budget:    req.Budget,
		Timestamp: req.Timestamp,
		Extra:     req.Extra,
	}
}
