package domain

import "errors"

// KeyPrefix namespaces every Redis key written by this service.
const KeyPrefix = "prodsearch:"

var (
	// ErrProductNotFound signals a missing catalog product.
	ErrProductNotFound = errors.New("product not found")
	// ErrCatalogNotIndexed signals that the product index has not been created yet.
	ErrCatalogNotIndexed = errors.New("catalog not indexed")
	// ErrInvalidRequest signals a request that failed boundary validation.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInvalidFeedback signals a malformed feedback record.
	ErrInvalidFeedback = errors.New("invalid feedback")
	// ErrEmbeddingQuotaExceeded signals an exhausted embedding token budget.
	ErrEmbeddingQuotaExceeded = errors.New("embedding quota exceeded")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)
