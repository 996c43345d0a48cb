package money

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/MitieSoft/salesdesk/internal/models"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestComputeTotalsPercentageDiscount(t *testing.T) {
	lines := []Line{
		{Quantity: dec(2), UnitPrice: dec(5000)},
		{Quantity: dec(20), UnitPrice: dec(150)},
	}
	got := ComputeTotals(lines, models.DiscountPercentage, dec(10), dec(20))

	if !got.Subtotal.Equal(dec(13000)) {
		t.Errorf("subtotal = %s, want 13000", got.Subtotal)
	}
	if !got.DiscountAmount.Equal(dec(1300)) {
		t.Errorf("discountAmount = %s, want 1300", got.DiscountAmount)
	}
	if !got.VATAmount.Equal(dec(2340)) {
		t.Errorf("vatAmount = %s, want 2340", got.VATAmount)
	}
	if !got.Total.Equal(dec(16040)) {
		t.Errorf("total = %s, want 16040", got.Total)
	}
}

func TestComputeTotalsFixedDiscount(t *testing.T) {
	lines := []Line{{Quantity: dec(4), UnitPrice: dec(250)}}
	got := ComputeTotals(lines, models.DiscountFixed, dec(100), dec(20))

	if !got.Subtotal.Equal(dec(1000)) {
		t.Errorf("subtotal = %s, want 1000", got.Subtotal)
	}
	if !got.DiscountAmount.Equal(dec(100)) {
		t.Errorf("discountAmount = %s, want 100", got.DiscountAmount)
	}
	if !got.VATAmount.Equal(dec(180)) {
		t.Errorf("vatAmount = %s, want 180", got.VATAmount)
	}
	if !got.Total.Equal(dec(1080)) {
		t.Errorf("total = %s, want 1080", got.Total)
	}
}

func TestComputeTotalsNoDiscount(t *testing.T) {
	lines := []Line{{Quantity: dec(3), UnitPrice: dec(100)}}
	got := ComputeTotals(lines, "", decimal.Zero, dec(20))

	if !got.DiscountAmount.Equal(decimal.Zero) {
		t.Errorf("discountAmount = %s, want 0", got.DiscountAmount)
	}
	if !got.Total.Equal(dec(360)) {
		t.Errorf("total = %s, want 360", got.Total)
	}
}

func TestComputeTotalsEmptyLines(t *testing.T) {
	got := ComputeTotals(nil, models.DiscountPercentage, dec(10), dec(20))
	if !got.Subtotal.Equal(decimal.Zero) || !got.Total.Equal(decimal.Zero) {
		t.Errorf("empty lines: subtotal=%s total=%s, want both 0", got.Subtotal, got.Total)
	}
}

func TestLineTotalIsVATInclusive(t *testing.T) {
	got := LineTotal(dec(2), dec(100), dec(20))
	if !got.Equal(dec(240)) {
		t.Errorf("lineTotal = %s, want 240", got)
	}
}

// With a uniform VAT rate and no discount the two conventions agree;
// with mixed per-item rates only the document-level figure counts.
func TestLineTotalsDivergeUnderMixedRates(t *testing.T) {
	lines := []Line{
		{Quantity: dec(1), UnitPrice: dec(100)},
		{Quantity: dec(1), UnitPrice: dec(100)},
	}
	doc := ComputeTotals(lines, "", decimal.Zero, dec(20))

	sum := LineTotal(dec(1), dec(100), dec(20)).Add(LineTotal(dec(1), dec(100), dec(5)))
	if sum.Equal(doc.Total) {
		t.Errorf("expected divergence, both = %s", sum)
	}
}
