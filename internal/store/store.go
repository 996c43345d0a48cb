// Package store is the persistence collaborator: whole collections are
// loaded and saved as JSON documents under distinct keys. There are no
// partial updates and no cross-key transactions; the engine is the single
// writer and saves each collection it touched after a mutation.
package store

// Collection keys used by the engine.
const (
	KeyUsers            = "users"
	KeyClients          = "clients"
	KeyProducts         = "products"
	KeyQuotes           = "quotes"
	KeyOrders           = "orders"
	KeyInvoices         = "invoices"
	KeyActivities       = "activities"
	KeyEmailLogs        = "email_logs"
	KeyTaxSettings      = "tax_settings"
	KeyDiscountSettings = "discount_settings"
	KeySmtpSettings     = "smtp_settings"
)

// Store persists collections wholesale. LoadCollection leaves out
// untouched when the key has never been saved, so callers pass their
// default in it.
type Store interface {
	LoadCollection(key string, out any) error
	SaveCollection(key string, v any) error
}
