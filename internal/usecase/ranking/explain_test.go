package ranking

import (
	"strings"
	"testing"

	"github.com/fincommerce/prodsearch/internal/domain/product"
	"github.com/fincommerce/prodsearch/internal/domain/search/candidate"
)

func scored(price, semantic, fit, adv float64) candidate.Scored {
	c := candidate.New(product.Product{ID: "p1", Title: "Test", Price: price, PriceKnown: true}, semantic)
	return candidate.NewScored(c, fit, adv, 0.6*semantic+0.3*fit+0.1*adv)
}

func TestExplain(t *testing.T) {
	tests := []struct {
		name   string
		price  float64
		sem    float64
		budget *float64
		want   []string
	}{
		{
			name: "under budget states savings", price: 1199, sem: 0.85, budget: ptr(1500),
			want: []string{"85.0%", "€301.00", "under budget"},
		},
		{
			name: "exact fit", price: 1500, sem: 0.9, budget: ptr(1500),
			want: []string{"90.0%", "fits your budget exactly"},
		},
		{
			name: "over budget states overage", price: 1601, sem: 0.9, budget: ptr(1500),
			want: []string{"90.0%", "€101.00", "exceeds your budget"},
		},
		{
			name: "no budget omits money clause", price: 1199, sem: 0.725, budget: nil,
			want: []string{"72.5%"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scored(tt.price, tt.sem, 1.0, 0)
			got := Explain(&s, tt.budget)
			for _, frag := range tt.want {
				if !strings.Contains(got, frag) {
					t.Errorf("Explain() = %q, missing %q", got, frag)
				}
			}
			if tt.budget == nil && strings.Contains(got, "€") {
				t.Errorf("Explain() = %q, must not mention money without a budget", got)
			}
		})
	}
}

func TestExplainDeterministic(t *testing.T) {
	s := scored(1199, 0.85, 1.0, 0.2)
	budget := ptr(1500.0)
	first := Explain(&s, budget)
	for range 5 {
		if got := Explain(&s, budget); got != first {
			t.Fatalf("explanation not deterministic: %q vs %q", got, first)
		}
	}
}

// The alternatives wording must be distinguishable from the primary
// over-budget wording by text alone.
func TestExplainAlternativeDistinctWording(t *testing.T) {
	s := scored(1601, 0.9, 0.5, -0.0673)

	primary := Explain(&s, ptr(1500))
	alt := ExplainAlternative(&s, 1500)

	if primary == alt {
		t.Fatal("primary and alternative explanations must differ")
	}
	for _, frag := range []string{"alternative", "90.0%", "€101.00"} {
		if !strings.Contains(alt, frag) {
			t.Errorf("ExplainAlternative() = %q, missing %q", alt, frag)
		}
	}
	if strings.Contains(primary, "alternative") {
		t.Errorf("primary wording %q must not read as an alternative", primary)
	}
}
