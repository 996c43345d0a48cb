package services

import "github.com/MitieSoft/salesdesk/internal/models"

// Reference resolver: rebuilds the denormalized object graph from
// normalized foreign keys. The persistence layer stores flat records, so
// after any collection is loaded or mutated the affected collections are
// re-resolved wholesale. Resolution is pure and total: a dangling foreign
// key resolves to nil, never an error, and the key itself is preserved.

func clientByID(clients []models.Client, id string) *models.Client {
	for i := range clients {
		if clients[i].ID == id {
			return &clients[i]
		}
	}
	return nil
}

func productByID(products []models.Product, id string) *models.Product {
	if id == "" {
		return nil
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i]
		}
	}
	return nil
}

func userByID(users []models.User, id string) *models.User {
	if id == "" {
		return nil
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i]
		}
	}
	return nil
}

func quoteByID(quotes []models.Quote, id string) *models.Quote {
	if id == "" {
		return nil
	}
	for i := range quotes {
		if quotes[i].ID == id {
			return &quotes[i]
		}
	}
	return nil
}

func orderByID(orders []models.Order, id string) *models.Order {
	if id == "" {
		return nil
	}
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i]
		}
	}
	return nil
}

// ResolveQuotes returns a new slice with client, createdBy, and item
// product references resolved.
func ResolveQuotes(quotes []models.Quote, clients []models.Client, users []models.User, products []models.Product) []models.Quote {
	out := make([]models.Quote, len(quotes))
	for i, q := range quotes {
		q.Client = clientByID(clients, q.ClientID)
		q.CreatedBy = userByID(users, q.CreatedByID)
		items := make([]models.QuoteItem, len(q.Items))
		for j, it := range q.Items {
			it.Product = productByID(products, it.ProductID)
			items[j] = it
		}
		q.Items = items
		out[i] = q
	}
	return out
}

// ResolveOrders resolves quote, client, and item product references.
func ResolveOrders(orders []models.Order, quotes []models.Quote, clients []models.Client, products []models.Product) []models.Order {
	out := make([]models.Order, len(orders))
	for i, o := range orders {
		o.Quote = quoteByID(quotes, o.QuoteID)
		o.Client = clientByID(clients, o.ClientID)
		items := make([]models.OrderItem, len(o.Items))
		for j, it := range o.Items {
			it.Product = productByID(products, it.ProductID)
			items[j] = it
		}
		o.Items = items
		out[i] = o
	}
	return out
}

// ResolveInvoices resolves order, quote, client, and item product
// references.
func ResolveInvoices(invoices []models.Invoice, orders []models.Order, quotes []models.Quote, clients []models.Client, products []models.Product) []models.Invoice {
	out := make([]models.Invoice, len(invoices))
	for i, inv := range invoices {
		inv.Order = orderByID(orders, inv.OrderID)
		inv.Quote = quoteByID(quotes, inv.QuoteID)
		inv.Client = clientByID(clients, inv.ClientID)
		items := make([]models.InvoiceItem, len(inv.Items))
		for j, it := range inv.Items {
			it.Product = productByID(products, it.ProductID)
			items[j] = it
		}
		inv.Items = items
		out[i] = inv
	}
	return out
}

// ResolveActivities resolves the acting user on each record.
func ResolveActivities(activities []models.Activity, users []models.User) []models.Activity {
	out := make([]models.Activity, len(activities))
	for i, a := range activities {
		a.User = userByID(users, a.UserID)
		out[i] = a
	}
	return out
}
