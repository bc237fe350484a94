package catalog

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/fincommerce/prodsearch/internal/domain/product"
)

// Hash field names. The vector field is prefixed so it never collides
// with a catalog attribute.
const (
	fieldVector = "__vector"

	fieldTitle          = "title"
	fieldDescription    = "description"
	fieldPrice          = "price"
	fieldCategory       = "category"
	fieldBrand          = "brand"
	fieldRating         = "rating"
	fieldMSRP           = "msrp"
	fieldDiscountPct    = "discount_pct"
	fieldStock          = "stock"
	fieldAvailability   = "availability"
	fieldPayment        = "payment_methods"
	fieldInstallment    = "installment_available"
	fieldMaxInstallment = "max_installments"
	fieldShippingDays   = "shipping_days"
	fieldBudgetBand     = "budget_band"
	fieldTags           = "tags"
)

// ReturnFields lists the hash fields a search must request to rebuild a
// full product (vector excluded).
var ReturnFields = []string{
	fieldTitle, fieldDescription, fieldPrice, fieldCategory, fieldBrand,
	fieldRating, fieldMSRP, fieldDiscountPct, fieldStock, fieldAvailability,
	fieldPayment, fieldInstallment, fieldMaxInstallment, fieldShippingDays,
	fieldBudgetBand, fieldTags,
}

// BuildHashFields converts a product plus its vector into a flat map for HSET.
func BuildHashFields(p *product.Product, vector []float32) map[string]string {
	m := map[string]string{
		fieldTitle:          p.Title,
		fieldDescription:    p.Description,
		fieldCategory:       p.Category,
		fieldBrand:          p.Brand,
		fieldRating:         formatFloat(p.Rating),
		fieldMSRP:           formatFloat(p.MSRP),
		fieldDiscountPct:    formatFloat(p.DiscountPct),
		fieldStock:          strconv.Itoa(p.Stock),
		fieldAvailability:   p.Availability,
		fieldPayment:        strings.Join(p.PaymentMethods, ";"),
		fieldInstallment:    strconv.FormatBool(p.InstallmentAvailable),
		fieldMaxInstallment: strconv.Itoa(p.MaxInstallments),
		fieldShippingDays:   strconv.Itoa(p.ShippingDays),
		fieldBudgetBand:     p.BudgetBand,
		fieldTags:           strings.Join(p.Tags, ";"),
	}
	if p.PriceKnown {
		m[fieldPrice] = formatFloat(p.Price)
	}
	if len(vector) > 0 {
		m[fieldVector] = vectorToBytes(vector)
	}
	return m
}

// ParseHashFields rebuilds a product from a flat hash map. A missing or
// unparsable price leaves PriceKnown false instead of failing.
func ParseHashFields(id string, m map[string]string) product.Product {
	p := product.Product{
		ID:           id,
		Title:        m[fieldTitle],
		Description:  m[fieldDescription],
		Category:     m[fieldCategory],
		Brand:        m[fieldBrand],
		Availability: m[fieldAvailability],
		BudgetBand:   m[fieldBudgetBand],
	}

	if v, err := strconv.ParseFloat(m[fieldPrice], 64); err == nil {
		p.Price = v
		p.PriceKnown = true
	}
	p.Rating, _ = strconv.ParseFloat(m[fieldRating], 64)
	p.MSRP, _ = strconv.ParseFloat(m[fieldMSRP], 64)
	p.DiscountPct, _ = strconv.ParseFloat(m[fieldDiscountPct], 64)
	p.Stock, _ = strconv.Atoi(m[fieldStock])
	p.MaxInstallments, _ = strconv.Atoi(m[fieldMaxInstallment])
	p.ShippingDays, _ = strconv.Atoi(m[fieldShippingDays])
	p.InstallmentAvailable, _ = strconv.ParseBool(m[fieldInstallment])
	p.PaymentMethods = splitList(m[fieldPayment])
	p.Tags = splitList(m[fieldTags])

	return p
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ";")
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
