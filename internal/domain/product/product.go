// Package product defines the immutable catalog record the search
// pipeline ranks. Records are owned by the catalog store; the ranking
// core only ever reads them.
package product

import (
	"fmt"
	"strings"
)

// BudgetBand buckets a product by price tier.
const (
	BandBudget   = "budget"
	BandMidrange = "midrange"
	BandPremium  = "premium"
)

// Product is a single catalog record with financial metadata.
// PriceKnown is false when the stored price field was missing or
// unparsable; such records are excluded from scoring, not crashed on.
type Product struct {
	ID                   string
	Title                string
	Description          string
	Price                float64
	PriceKnown           bool
	Category             string
	Brand                string
	Rating               float64
	MSRP                 float64
	DiscountPct          float64
	Stock                int
	Availability         string
	PaymentMethods       []string
	InstallmentAvailable bool
	MaxInstallments      int
	ShippingDays         int
	BudgetBand           string
	Tags                 []string
}

// EmbeddingText builds the text that is vectorized for this product.
// Title, description, category and tags all carry intent signal.
func (p *Product) EmbeddingText() string {
	parts := make([]string, 0, 4)
	if p.Title != "" {
		parts = append(parts, p.Title)
	}
	if p.Description != "" {
		parts = append(parts, p.Description)
	}
	if p.Category != "" {
		parts = append(parts, p.Category)
	}
	if len(p.Tags) > 0 {
		parts = append(parts, strings.Join(p.Tags, " "))
	}
	return strings.Join(parts, ". ")
}

// Validate checks ingest-time invariants for a catalog record.
func (p *Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("id is required")
	}
	if p.Title == "" {
		return fmt.Errorf("title is required")
	}
	if p.Description == "" {
		return fmt.Errorf("description is required")
	}
	if p.Category == "" {
		return fmt.Errorf("category is required")
	}
	if p.Brand == "" {
		return fmt.Errorf("brand is required")
	}
	if !p.PriceKnown || p.Price <= 0 {
		return fmt.Errorf("price must be positive")
	}
	if p.Rating < 0 || p.Rating > 5 {
		return fmt.Errorf("rating must be between 0 and 5, got %g", p.Rating)
	}
	if p.DiscountPct < 0 || p.DiscountPct > 100 {
		return fmt.Errorf("discount_pct must be between 0 and 100, got %g", p.DiscountPct)
	}
	if p.Stock < 0 {
		return fmt.Errorf("stock must be non-negative")
	}
	if p.MaxInstallments < 0 {
		return fmt.Errorf("max_installments must be non-negative")
	}
	if p.ShippingDays < 0 {
		return fmt.Errorf("shipping_days must be non-negative")
	}
	switch p.BudgetBand {
	case "", BandBudget, BandMidrange, BandPremium:
	default:
		return fmt.Errorf("unknown budget_band %q", p.BudgetBand)
	}
	return nil
}
