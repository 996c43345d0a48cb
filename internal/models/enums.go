package models

// Role controls what a user may do. ADMIN manages users and settings,
// SALES and FINANCE create and edit documents, VIEWER is read-only.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleSales   Role = "SALES"
	RoleFinance Role = "FINANCE"
	RoleViewer  Role = "VIEWER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSales, RoleFinance, RoleViewer:
		return true
	}
	return false
}

type QuoteStatus string

const (
	QuoteDraft     QuoteStatus = "DRAFT"
	QuoteSent      QuoteStatus = "SENT"
	QuoteApproved  QuoteStatus = "APPROVED"
	QuoteConverted QuoteStatus = "CONVERTED"
	QuoteInvoiced  QuoteStatus = "INVOICED"
	QuoteRejected  QuoteStatus = "REJECTED"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderFulfilled OrderStatus = "FULFILLED"
	OrderCancelled OrderStatus = "CANCELLED"
)

type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "DRAFT"
	InvoiceSent      InvoiceStatus = "SENT"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceOverdue   InvoiceStatus = "OVERDUE"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

// DiscountType qualifies a document or line discount value:
// a percentage of the subtotal or a fixed amount.
type DiscountType string

const (
	DiscountPercentage DiscountType = "PERCENTAGE"
	DiscountFixed      DiscountType = "FIXED"
)

// EntityType identifies which collection an Activity or EmailLog refers to.
type EntityType string

const (
	EntityQuote   EntityType = "QUOTE"
	EntityOrder   EntityType = "ORDER"
	EntityInvoice EntityType = "INVOICE"
	EntityClient  EntityType = "CLIENT"
	EntityProduct EntityType = "PRODUCT"
	EntityUser    EntityType = "USER"
)

type EmailStatus string

const (
	EmailSent   EmailStatus = "SENT"
	EmailFailed EmailStatus = "FAILED"
)
