package prodsearch

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewRequiresAddress(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error without WithRedis")
	}
	if !strings.Contains(err.Error(), "database address required") {
		t.Errorf("err = %v", err)
	}
}

func TestOptionsApply(t *testing.T) {
	cfg := &clientConfig{}
	opts := []Option{
		WithRedis("localhost:6379", "pw"),
		WithVectorDimensions(768),
		WithWeights(0.5, 0.4, 0.1),
		WithFeedbackCap(500),
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) != 1 || cfg.addrs[0] != "localhost:6379" || cfg.password != "pw" {
		t.Errorf("redis opts = %+v", cfg)
	}
	if cfg.vectorDimensions != 768 {
		t.Errorf("dims = %d", cfg.vectorDimensions)
	}
	if cfg.semanticWeight != 0.5 || cfg.budgetFitWeight != 0.4 || cfg.priceAdvWeight != 0.1 {
		t.Errorf("weights = %+v", cfg)
	}
	if cfg.feedbackMaxRecords != 500 {
		t.Errorf("feedback cap = %d", cfg.feedbackMaxRecords)
	}
}

func TestObserverMetricsRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()

	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	if obs.metrics == nil {
		t.Fatal("metrics not created")
	}

	// Second observer on the same registry reuses existing collectors.
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("newObserver reuse: %v", err)
	}
}

func TestNoopEmbedder(t *testing.T) {
	var e noopEmbedder
	if _, err := e.Embed(context.Background(), "text"); err == nil {
		t.Fatal("expected error from noop embedder")
	}
}
