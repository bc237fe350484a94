package ranking

import (
	"testing"
	"time"

	"github.com/fincommerce/prodsearch/internal/domain/search/candidate"
)

func TestAssembleFullPrimaryListSkipsAlternatives(t *testing.T) {
	e := newTestEngine(t)
	req := mustRequest(t, "laptop", ptr(1000), 2, 0)

	fits, over := e.Rank([]candidate.Candidate{
		cand("A", 900, 0.9),
		cand("B", 800, 0.8),
		cand("C", 1100, 0.95),
	}, &req)

	resp := Assemble(&req, fits, over, 12*time.Millisecond)

	if resp.TotalResults != 2 || len(resp.Results) != 2 {
		t.Fatalf("total_results = %d, len(results) = %d, want 2", resp.TotalResults, len(resp.Results))
	}
	if len(resp.Alternatives) != 0 {
		t.Errorf("primary list is full, alternatives should be empty, got %d", len(resp.Alternatives))
	}
	if resp.Elapsed != 12*time.Millisecond {
		t.Errorf("elapsed = %v", resp.Elapsed)
	}
	if resp.Query != "laptop" || resp.Budget == nil || *resp.Budget != 1000 {
		t.Errorf("query/budget not carried: %q %v", resp.Query, resp.Budget)
	}
}

func TestAssembleShortPrimaryListTriggersAlternatives(t *testing.T) {
	e := newTestEngine(t)
	req := mustRequest(t, "laptop", ptr(1000), 5, 0)

	fits, over := e.Rank([]candidate.Candidate{
		cand("A", 900, 0.9),
		cand("B", 1100, 0.95),
		cand("C", 1050, 0.7),
	}, &req)

	resp := Assemble(&req, fits, over, time.Millisecond)

	if resp.TotalResults != 1 {
		t.Fatalf("total_results = %d, want 1", resp.TotalResults)
	}
	if len(resp.Alternatives) != 2 {
		t.Fatalf("len(alternatives) = %d, want 2", len(resp.Alternatives))
	}
	// Overage ascending: C (50) before B (100).
	if resp.Alternatives[0].Scored.Product().ID != "C" {
		t.Errorf("first alternative = %s, want C", resp.Alternatives[0].Scored.Product().ID)
	}
	for i := range resp.Alternatives {
		if resp.Alternatives[i].Overage <= 0 {
			t.Errorf("alternative %d overage = %v, want > 0", i, resp.Alternatives[i].Overage)
		}
	}
}

// A result must never appear in both lists.
func TestAssembleNoOverlap(t *testing.T) {
	e := newTestEngine(t)
	req := mustRequest(t, "tv", ptr(500), 5, 0)

	fits, over := e.Rank([]candidate.Candidate{
		cand("A", 450, 0.9),
		cand("B", 550, 0.8),
		cand("C", 480, 0.7),
		cand("D", 600, 0.6),
	}, &req)

	resp := Assemble(&req, fits, over, 0)

	seen := map[string]bool{}
	for _, r := range resp.Results {
		seen[r.Scored.Product().ID] = true
	}
	for _, a := range resp.Alternatives {
		if seen[a.Scored.Product().ID] {
			t.Errorf("%s appears in both results and alternatives", a.Scored.Product().ID)
		}
	}
}

func TestAssembleEmptyPool(t *testing.T) {
	e := newTestEngine(t)
	req := mustRequest(t, "nothing matches", ptr(100), 5, 0)

	fits, over := e.Rank(nil, &req)
	resp := Assemble(&req, fits, over, time.Microsecond)

	if resp.TotalResults != 0 {
		t.Errorf("total_results = %d, want 0", resp.TotalResults)
	}
	if resp.Results == nil || resp.Alternatives == nil {
		t.Fatal("empty response must carry empty non-nil slices")
	}
}

func TestAssembleNoBudgetNeverHasAlternatives(t *testing.T) {
	e := newTestEngine(t)
	req := mustRequest(t, "laptop", nil, 10, 0)

	fits, over := e.Rank([]candidate.Candidate{cand("A", 900, 0.9)}, &req)
	resp := Assemble(&req, fits, over, 0)

	if len(resp.Alternatives) != 0 {
		t.Fatalf("no budget: alternatives must be empty, got %d", len(resp.Alternatives))
	}
	if resp.Budget != nil {
		t.Errorf("budget should stay nil")
	}
}
