package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceItem struct {
	ID            string          `json:"id"`
	InvoiceID     string          `json:"invoiceId"`
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

// Invoice is derived from an Order. QuoteID is propagated from the order
// so the originating quote can be flipped to INVOICED. OVERDUE is never
// requested directly: a transition to SENT past the due date lands there.
type Invoice struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	OrderID       string          `json:"orderId,omitempty"`
	Order         *Order          `json:"order,omitempty"`
	QuoteID       string          `json:"quoteId,omitempty"`
	Quote         *Quote          `json:"quote,omitempty"`
	ClientID      string          `json:"clientId"`
	Client        *Client         `json:"client,omitempty"`
	Status        InvoiceStatus   `json:"status"`
	IssueDate     time.Time       `json:"issueDate"`
	DueDate       time.Time       `json:"dueDate"`
	Currency      string          `json:"currency"`
	PaymentTerms  string          `json:"paymentTerms,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	DiscountType  DiscountType    `json:"discountType,omitempty"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	VATRate       decimal.Decimal `json:"vatRate"`
	VATAmount     decimal.Decimal `json:"vatAmount"`
	Total         decimal.Decimal `json:"total"`
	Items         []InvoiceItem   `json:"items"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Terminal reports whether no further status transition may leave the
// invoice's current state.
func (i *Invoice) Terminal() bool {
	return i.Status == InvoicePaid || i.Status == InvoiceCancelled
}
