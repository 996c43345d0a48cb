package services

import (
	"fmt"

	"github.com/MitieSoft/salesdesk/internal/models"
	"github.com/MitieSoft/salesdesk/internal/store"
)

// Repository owns the in-memory collections. The Engine is its only
// writer; collections are loaded once at startup and saved wholesale
// after each mutation.
type Repository struct {
	Users            []models.User
	Clients          []models.Client
	Products         []models.Product
	Quotes           []models.Quote
	Orders           []models.Order
	Invoices         []models.Invoice
	Activities       []models.Activity
	EmailLogs        []models.EmailLog
	TaxSettings      []models.TaxSetting
	DiscountSettings []models.DiscountSetting
	SmtpSettings     []models.SmtpSetting
}

// LoadRepository pulls every collection from the store and resolves all
// cross-references.
func LoadRepository(st store.Store) (*Repository, error) {
	r := &Repository{}
	loads := []struct {
		key string
		out any
	}{
		{store.KeyUsers, &r.Users},
		{store.KeyClients, &r.Clients},
		{store.KeyProducts, &r.Products},
		{store.KeyQuotes, &r.Quotes},
		{store.KeyOrders, &r.Orders},
		{store.KeyInvoices, &r.Invoices},
		{store.KeyActivities, &r.Activities},
		{store.KeyEmailLogs, &r.EmailLogs},
		{store.KeyTaxSettings, &r.TaxSettings},
		{store.KeyDiscountSettings, &r.DiscountSettings},
		{store.KeySmtpSettings, &r.SmtpSettings},
	}
	for _, l := range loads {
		if err := st.LoadCollection(l.key, l.out); err != nil {
			return nil, fmt.Errorf("load repository: %w", err)
		}
	}
	r.ResolveAll()
	return r, nil
}

// ResolveAll re-runs the reference resolver across every collection, in
// dependency order so orders see resolved quotes and invoices see
// resolved orders.
func (r *Repository) ResolveAll() {
	r.Quotes = ResolveQuotes(r.Quotes, r.Clients, r.Users, r.Products)
	r.Orders = ResolveOrders(r.Orders, r.Quotes, r.Clients, r.Products)
	r.Invoices = ResolveInvoices(r.Invoices, r.Orders, r.Quotes, r.Clients, r.Products)
	r.Activities = ResolveActivities(r.Activities, r.Users)
}

// Lookup helpers. All return nil when the id is unknown.

func (r *Repository) UserByID(id string) *models.User {
	for i := range r.Users {
		if r.Users[i].ID == id {
			return &r.Users[i]
		}
	}
	return nil
}

func (r *Repository) ClientByID(id string) *models.Client {
	for i := range r.Clients {
		if r.Clients[i].ID == id {
			return &r.Clients[i]
		}
	}
	return nil
}

func (r *Repository) ProductByID(id string) *models.Product {
	for i := range r.Products {
		if r.Products[i].ID == id {
			return &r.Products[i]
		}
	}
	return nil
}

func (r *Repository) QuoteByID(id string) *models.Quote {
	for i := range r.Quotes {
		if r.Quotes[i].ID == id {
			return &r.Quotes[i]
		}
	}
	return nil
}

func (r *Repository) OrderByID(id string) *models.Order {
	for i := range r.Orders {
		if r.Orders[i].ID == id {
			return &r.Orders[i]
		}
	}
	return nil
}

func (r *Repository) InvoiceByID(id string) *models.Invoice {
	for i := range r.Invoices {
		if r.Invoices[i].ID == id {
			return &r.Invoices[i]
		}
	}
	return nil
}
