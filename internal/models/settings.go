package models

import "github.com/shopspring/decimal"

// TaxSetting is a named VAT rate offered in the pricing settings.
type TaxSetting struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"`
	IsDefault bool            `json:"isDefault"`
}

// DiscountSetting is a named discount preset.
type DiscountSetting struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      DiscountType    `json:"type"`
	Value     decimal.Decimal `json:"value"`
	IsDefault bool            `json:"isDefault"`
}

// SmtpSetting configures the outbound mail transport. Secure selects
// SSL/TLS over STARTTLS.
type SmtpSetting struct {
	ID        string `json:"id"`
	Host      string `json:"host"`
	Port      int    `json:"port"`
	Secure    bool   `json:"secure"`
	Username  string `json:"username"`
	Password  string `json:"password,omitempty"`
	FromEmail string `json:"fromEmail"`
	FromName  string `json:"fromName"`
	IsActive  bool   `json:"isActive"`
}
