package models

import "time"

// Client is a customer that quotes, orders, and invoices are issued to.
// Documents keep referencing a deleted client by id; only the resolved
// pointer goes nil.
type Client struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	ContactName     string    `json:"contactName,omitempty"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	BillingAddress  string    `json:"billingAddress,omitempty"`
	ShippingAddress string    `json:"shippingAddress,omitempty"`
	VATNumber       string    `json:"vatNumber,omitempty"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
