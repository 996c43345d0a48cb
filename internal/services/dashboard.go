package services

import (
	"github.com/shopspring/decimal"

	"github.com/MitieSoft/salesdesk/internal/models"
)

// DashboardStats is the landing-page projection: headline counts and the
// money still on the table.
type DashboardStats struct {
	Clients  int `json:"clients"`
	Products int `json:"products"`
	Quotes   int `json:"quotes"`
	Orders   int `json:"orders"`
	Invoices int `json:"invoices"`

	QuotesByStatus   map[models.QuoteStatus]int   `json:"quotesByStatus"`
	InvoicesByStatus map[models.InvoiceStatus]int `json:"invoicesByStatus"`

	OutstandingTotal decimal.Decimal `json:"outstandingTotal"`
	PaidTotal        decimal.Decimal `json:"paidTotal"`
	QuotedTotal      decimal.Decimal `json:"quotedTotal"`

	RecentActivity []models.Activity `json:"recentActivity"`
}

// Dashboard computes the stats snapshot. Outstanding covers invoices
// awaiting payment (SENT and OVERDUE); quoted covers pipeline quotes
// that have not been rejected or superseded by a conversion.
func (e *Engine) Dashboard() DashboardStats {
	e.mu.Lock()
	defer e.mu.Unlock()

	stats := DashboardStats{
		Clients:          len(e.repo.Clients),
		Products:         len(e.repo.Products),
		Quotes:           len(e.repo.Quotes),
		Orders:           len(e.repo.Orders),
		Invoices:         len(e.repo.Invoices),
		QuotesByStatus:   map[models.QuoteStatus]int{},
		InvoicesByStatus: map[models.InvoiceStatus]int{},
	}

	for _, q := range e.repo.Quotes {
		stats.QuotesByStatus[q.Status]++
		switch q.Status {
		case models.QuoteDraft, models.QuoteSent, models.QuoteApproved:
			stats.QuotedTotal = stats.QuotedTotal.Add(q.Total)
		}
	}
	for _, inv := range e.repo.Invoices {
		stats.InvoicesByStatus[inv.Status]++
		switch inv.Status {
		case models.InvoiceSent, models.InvoiceOverdue:
			stats.OutstandingTotal = stats.OutstandingTotal.Add(inv.Total)
		case models.InvoicePaid:
			stats.PaidTotal = stats.PaidTotal.Add(inv.Total)
		}
	}

	n := len(e.repo.Activities)
	if n > 10 {
		n = 10
	}
	stats.RecentActivity = append([]models.Activity(nil), e.repo.Activities[:n]...)
	return stats
}
