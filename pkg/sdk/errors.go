package prodsearch

import "github.com/fincommerce/prodsearch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrProductNotFound        = domain.ErrProductNotFound
	ErrCatalogNotIndexed      = domain.ErrCatalogNotIndexed
	ErrInvalidRequest         = domain.ErrInvalidRequest
	ErrInvalidFeedback        = domain.ErrInvalidFeedback
	ErrEmbeddingQuotaExceeded = domain.ErrEmbeddingQuotaExceeded
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
)
