package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteItem is one priced row of a quote. LineTotal is VAT-inclusive per
// item (qty x price x (1 + vat/100)) and frozen at creation time; it is
// not an input to the document-level totals.
type QuoteItem struct {
	ID            string          `json:"id"`
	QuoteID       string          `json:"quoteId"`
	ProductID     string          `json:"productId,omitempty"`
	Product       *Product        `json:"product,omitempty"`
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	DiscountType  DiscountType    `json:"discountType,omitempty"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	VATRate       decimal.Decimal `json:"vatRate"`
	LineTotal     decimal.Decimal `json:"lineTotal"`
}

// Quote is the root of the document lifecycle: DRAFT -> SENT -> APPROVED ->
// CONVERTED -> INVOICED, with SENT -> REJECTED as a terminal branch.
// ConvertedToOrderID, once set, is never cleared.
type Quote struct {
	ID                 string          `json:"id"`
	QuoteNumber        string          `json:"quoteNumber"`
	ClientID           string          `json:"clientId"`
	Client             *Client         `json:"client,omitempty"`
	Status             QuoteStatus     `json:"status"`
	Currency           string          `json:"currency"`
	Notes              string          `json:"notes,omitempty"`
	ValidUntil         *time.Time      `json:"validUntil,omitempty"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	DiscountType       DiscountType    `json:"discountType,omitempty"`
	DiscountValue      decimal.Decimal `json:"discountValue"`
	VATRate            decimal.Decimal `json:"vatRate"`
	VATAmount          decimal.Decimal `json:"vatAmount"`
	Total              decimal.Decimal `json:"total"`
	CreatedByID        string          `json:"createdById,omitempty"`
	CreatedBy          *User           `json:"createdBy,omitempty"`
	ApprovedByClientAt *time.Time      `json:"approvedByClientAt,omitempty"`
	ConvertedToOrderID string          `json:"convertedToOrderId,omitempty"`
	Items              []QuoteItem     `json:"items"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// Locked reports whether the quote has been carried forward into an order
// or invoice and must no longer be edited.
func (q *Quote) Locked() bool {
	return q.Status == QuoteConverted || q.Status == QuoteInvoiced
}
