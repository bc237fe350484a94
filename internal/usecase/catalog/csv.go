package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fincommerce/prodsearch/internal/domain/product"
)

var requiredColumns = []string{"id", "title", "description", "price", "category", "brand", "rating"}

// ParseCSV reads a product catalog CSV. Rows that fail validation are
// skipped, not fatal; duplicate IDs are. Returns the valid products and
// the number of skipped rows.
func ParseCSV(r io.Reader) ([]product.Product, int, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, 0, fmt.Errorf("missing required column %q", name)
		}
	}

	var (
		products []product.Product
		skipped  int
		seen     = map[string]bool{}
	)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		p, err := parseRow(row, cols)
		if err != nil {
			skipped++
			continue
		}
		if seen[p.ID] {
			return nil, 0, fmt.Errorf("duplicate product id %q", p.ID)
		}
		seen[p.ID] = true
		products = append(products, p)
	}

	return products, skipped, nil
}

func parseRow(row []string, cols map[string]int) (product.Product, error) {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	p := product.Product{
		ID:           get("id"),
		Title:        get("title"),
		Description:  get("description"),
		Category:     titleCase(get("category")),
		Brand:        get("brand"),
		Availability: get("availability"),
		BudgetBand:   strings.ToLower(get("budget_band")),
	}

	if price, err := strconv.ParseFloat(get("price"), 64); err == nil {
		p.Price = price
		p.PriceKnown = true
	}
	if rating, err := strconv.ParseFloat(get("rating"), 64); err != nil {
		return product.Product{}, fmt.Errorf("rating: %w", err)
	} else {
		p.Rating = rating
	}

	// Optional numerics: absent or unparsable fields fall back to zero.
	p.MSRP, _ = strconv.ParseFloat(get("msrp"), 64)
	p.DiscountPct, _ = strconv.ParseFloat(get("discount_pct"), 64)
	p.Stock = parseIntDefault(get("stock"))
	p.MaxInstallments = parseIntDefault(get("max_installments"))
	p.ShippingDays = parseIntDefault(get("shipping_days"))

	p.PaymentMethods = splitList(get("payment_methods"))
	p.Tags = splitList(get("tags"))

	switch strings.ToLower(get("installment_available")) {
	case "true", "1", "yes":
		p.InstallmentAvailable = true
	}

	// Unknown bands are dropped to empty rather than rejected.
	switch p.BudgetBand {
	case product.BandBudget, product.BandMidrange, product.BandPremium:
	default:
		p.BudgetBand = ""
	}

	if err := p.Validate(); err != nil {
		return product.Product{}, err
	}
	return p, nil
}

func parseIntDefault(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// splitList parses a semicolon-separated multi-value field, lowercased.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if v := strings.ToLower(strings.TrimSpace(part)); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
