package prodsearch

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	password string

	embedder Embedder

	vectorDimensions   int
	semanticWeight     float64
	budgetFitWeight    float64
	priceAdvWeight     float64
	feedbackMaxRecords int64

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithEmbedder sets the text embedding provider. Required.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
	})
}

// WithVectorDimensions sets the catalog vector dimension.
// Defaults to 1536 (text-embedding-3-small).
func WithVectorDimensions(dim int) Option {
	return optionFunc(func(c *clientConfig) {
		c.vectorDimensions = dim
	})
}

// WithWeights overrides the composite score weights.
// Weights must sum to 1; defaults: 0.6 semantic, 0.3 budget fit, 0.1 price advantage.
func WithWeights(semantic, budgetFit, priceAdvantage float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.semanticWeight = semantic
		c.budgetFitWeight = budgetFit
		c.priceAdvWeight = priceAdvantage
	})
}

// WithFeedbackCap bounds the stored feedback log. Default: 100000 records.
func WithFeedbackCap(maxRecords int64) Option {
	return optionFunc(func(c *clientConfig) {
		c.feedbackMaxRecords = maxRecords
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
