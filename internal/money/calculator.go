// Package money computes document and line totals. All functions are
// pure and use decimal arithmetic; rounding is a display concern and
// never happens here before persisting.
package money

import (
	"github.com/shopspring/decimal"

	"github.com/MitieSoft/salesdesk/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Line is the minimal shape the calculator needs from an item.
type Line struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// Totals is the document-level result of ComputeTotals.
type Totals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	VATAmount      decimal.Decimal
	Total          decimal.Decimal
}

// ComputeTotals applies the document-level convention: a VAT-exclusive
// subtotal, an optional discount on the subtotal, then a single
// document-wide VAT rate on the remainder.
//
//	subtotal       = sum(quantity * unitPrice)
//	discountAmount = PERCENTAGE: subtotal * value/100; FIXED: value
//	vatAmount      = (subtotal - discountAmount) * vatRate/100
//	total          = subtotal - discountAmount + vatAmount
//
// Negative or zero quantities and prices pass through untouched;
// validating them is the caller's job.
func ComputeTotals(lines []Line, discountType models.DiscountType, discountValue, vatRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Quantity.Mul(l.UnitPrice))
	}
	discountAmount := DiscountAmount(subtotal, discountType, discountValue)
	vatAmount := subtotal.Sub(discountAmount).Mul(vatRate).Div(hundred)
	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		VATAmount:      vatAmount,
		Total:          subtotal.Sub(discountAmount).Add(vatAmount),
	}
}

// DiscountAmount resolves a discount against a subtotal. An empty
// discount type means no discount.
func DiscountAmount(subtotal decimal.Decimal, discountType models.DiscountType, value decimal.Decimal) decimal.Decimal {
	switch discountType {
	case models.DiscountPercentage:
		return subtotal.Mul(value).Div(hundred)
	case models.DiscountFixed:
		return value
	default:
		return decimal.Zero
	}
}

// LineTotal is the per-item, VAT-inclusive amount frozen onto an item at
// creation: qty * price * (1 + vat/100). With heterogeneous item VAT
// rates the sum of line totals does not equal the document total from
// ComputeTotals; the document-level figure is authoritative.
func LineTotal(quantity, unitPrice, vatRate decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice).Mul(decimal.NewFromInt(1).Add(vatRate.Div(hundred)))
}
