package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a price-list template for line items. Copying its price and
// VAT rate into an item is a one-time snapshot: later product edits never
// touch existing items, only the resolved pointer.
type Product struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	SKU            string          `json:"sku,omitempty"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	DefaultVATRate decimal.Decimal `json:"defaultVatRate"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
