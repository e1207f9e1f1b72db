// Package pricing recomputes a cart's monetary fields from its line items.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"cart-sessions/internal/domain"
)

// DefaultTaxRate is applied when no rate is configured.
const DefaultTaxRate = 0.09

// Func recomputes subtotal, tax, total and UpdatedAt on the given cart.
type Func func(cart *domain.Cart)

// New returns a pricing function for the given tax rate.
//
// Rounding happens independently at each stage, in this exact order: the raw
// item sum is rounded to the subtotal, tax is taken from the unrounded sum
// and rounded, and the total is the rounded subtotal plus the rounded tax,
// rounded again. The order is observable at the cent level and must not be
// rearranged.
func New(taxRate float64) Func {
	rate := decimal.NewFromFloat(taxRate)
	return func(cart *domain.Cart) {
		raw := decimal.Zero
		for _, item := range cart.Items {
			raw = raw.Add(decimal.NewFromFloat(item.TotalPrice))
		}
		subtotal := raw.Round(2)
		tax := raw.Mul(rate).Round(2)
		total := subtotal.Add(tax).Round(2)

		cart.Subtotal = subtotal.InexactFloat64()
		cart.Tax = tax.InexactFloat64()
		cart.Total = total.InexactFloat64()
		cart.UpdatedAt = time.Now().UTC()
	}
}

// LineTotal computes unitPrice times quantity rounded to two decimals.
func LineTotal(unitPrice float64, quantity int) float64 {
	return decimal.NewFromFloat(unitPrice).
		Mul(decimal.NewFromInt(int64(quantity))).
		Round(2).
		InexactFloat64()
}
