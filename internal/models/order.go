package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderItem struct {
	ID            string          `json:"id"`
	OrderID       string          `json:"orderId"`
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

// Order is either created directly (status PENDING) or derived from an
// APPROVED quote (status CONFIRMED, QuoteID set). Monetary fields are
// copied verbatim on derivation, never recomputed.
type Order struct {
	ID            string          `json:"id"`
	OrderNumber   string          `json:"orderNumber"`
	QuoteID       string          `json:"quoteId,omitempty"`
	Quote         *Quote          `json:"quote,omitempty"`
	ClientID      string          `json:"clientId"`
	Client        *Client         `json:"client,omitempty"`
	Status        OrderStatus     `json:"status"`
	Currency      string          `json:"currency"`
	Notes         string          `json:"notes,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	DiscountType  DiscountType    `json:"discountType,omitempty"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	VATRate       decimal.Decimal `json:"vatRate"`
	VATAmount     decimal.Decimal `json:"vatAmount"`
	Total         decimal.Decimal `json:"total"`
	Items         []OrderItem     `json:"items"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
