package services

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/MitieSoft/salesdesk/internal/mailer"
	"github.com/MitieSoft/salesdesk/internal/models"
	"github.com/MitieSoft/salesdesk/internal/store"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// recordingTransport captures sent messages; set fail to simulate a
// delivery error.
type recordingTransport struct {
	sent []mailer.Message
	fail error
}

func (r *recordingTransport) Send(_ context.Context, m mailer.Message) (string, error) {
	if r.fail != nil {
		return "", r.fail
	}
	r.sent = append(r.sent, m)
	return fmt.Sprintf("msg-%d", len(r.sent)), nil
}

func newTestEngine(t *testing.T) (*Engine, *recordingTransport) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	tr := &recordingTransport{}
	e, err := NewEngine(store.NewMemory(), tr, log)
	require.NoError(t, err)
	n := 0
	e.newID = func() string {
		n++
		return fmt.Sprintf("id-%03d", n)
	}
	e.now = func() time.Time { return testNow }
	return e, tr
}

func userWithRole(t *testing.T, e *Engine, role models.Role) string {
	t.Helper()
	for _, u := range e.repo.Users {
		if u.Role == role {
			return u.ID
		}
	}
	t.Fatalf("no seeded user with role %s", role)
	return ""
}

func firstClientID(t *testing.T, e *Engine) string {
	t.Helper()
	require.NotEmpty(t, e.repo.Clients)
	return e.repo.Clients[0].ID
}

func standardQuoteInput(t *testing.T, e *Engine, actorID string) QuoteInput {
	t.Helper()
	return QuoteInput{
		ClientID:      firstClientID(t, e),
		DiscountType:  models.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(10),
		VATRate:       decimal.NewFromInt(20),
		Items: []ItemInput{
			{Description: "Web Development Service", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(5000), VATRate: decimal.NewFromInt(20)},
			{Description: "Consulting Hours", Quantity: decimal.NewFromInt(20), UnitPrice: decimal.NewFromInt(150), VATRate: decimal.NewFromInt(20)},
		},
		CreatedByID: actorID,
	}
}

// approvedQuote walks a fresh quote to APPROVED.
func approvedQuote(t *testing.T, e *Engine, actorID string) *models.Quote {
	t.Helper()
	q, err := e.CreateQuote(standardQuoteInput(t, e, actorID))
	require.NoError(t, err)
	require.NoError(t, e.TransitionQuoteStatus(q.ID, models.QuoteSent, actorID))
	require.NoError(t, e.TransitionQuoteStatus(q.ID, models.QuoteApproved, actorID))
	q, err = e.GetQuote(q.ID)
	require.NoError(t, err)
	return q
}

func TestSeedCreatesDefaultData(t *testing.T) {
	e, _ := newTestEngine(t)
	require.Len(t, e.repo.Users, 4)
	require.Len(t, e.repo.Clients, 2)
	require.Len(t, e.repo.Products, 4)

	// Seed runs once: a second engine over the same store must not
	// duplicate accounts.
	e2, err := NewEngine(e.st, &recordingTransport{}, e.log)
	require.NoError(t, err)
	require.Len(t, e2.repo.Users, 4)
}

func TestAuthenticateSeededAdmin(t *testing.T) {
	e, _ := newTestEngine(t)
	u, err := e.Authenticate("admin@example.com", "admin123")
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, u.Role)
	require.Empty(t, u.Password)

	_, err = e.Authenticate("admin@example.com", "wrong")
	require.ErrorIs(t, err, ErrForbidden)
	_, err = e.Authenticate("nobody@example.com", "admin123")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDashboardTotals(t *testing.T) {
	e, _ := newTestEngine(t)
	sales := userWithRole(t, e, models.RoleSales)
	q := approvedQuote(t, e, sales)
	order, err := e.ConvertQuoteToOrder(q.ID, sales)
	require.NoError(t, err)
	inv, err := e.ConvertOrderToInvoice(order.ID, sales, "Net 30")
	require.NoError(t, err)
	require.NoError(t, e.TransitionInvoiceStatus(inv.ID, models.InvoiceSent, sales))

	stats := e.Dashboard()
	require.Equal(t, 1, stats.Quotes)
	require.Equal(t, 1, stats.Orders)
	require.Equal(t, 1, stats.Invoices)
	require.True(t, stats.OutstandingTotal.Equal(decimal.NewFromInt(16040)),
		"outstanding = %s", stats.OutstandingTotal)
	require.True(t, stats.PaidTotal.IsZero())
	require.NotEmpty(t, stats.RecentActivity)
}
