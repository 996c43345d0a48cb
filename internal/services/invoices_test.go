package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MitieSoft/salesdesk/internal/models"
)

func freshInvoice(t *testing.T, e *Engine, actorID string) *models.Invoice {
	t.Helper()
	q := approvedQuote(t, e, actorID)
	order, err := e.ConvertQuoteToOrder(q.ID, actorID)
	require.NoError(t, err)
	inv, err := e.ConvertOrderToInvoice(order.ID, actorID, "Net 30")
	require.NoError(t, err)
	return inv
}

func TestInvoiceLifecycle(t *testing.T) {
	e, _ := newTestEngine(t)
	finance := userWithRole(t, e, models.RoleFinance)
	inv := freshInvoice(t, e, finance)

	require.NoError(t, e.TransitionInvoiceStatus(inv.ID, models.InvoiceSent, finance))
	require.NoError(t, e.TransitionInvoiceStatus(inv.ID, models.InvoicePaid, finance))

	got, err := e.GetInvoice(inv.ID)
	require.NoError(t, err)
	require.Equal(t, models.InvoicePaid, got.Status)

	// PAID is terminal.
	err = e.TransitionInvoiceStatus(inv.ID, models.InvoiceCancelled, finance)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestInvoiceDraftCannotBePaidDirectly(t *testing.T) {
	e, _ := newTestEngine(t)
	finance := userWithRole(t, e, models.RoleFinance)
	inv := freshInvoice(t, e, finance)

	err := e.TransitionInvoiceStatus(inv.ID, models.InvoicePaid, finance)
	var te *InvalidTransitionError
	require.ErrorAs(t, err, &te)
	require.Equal(t, "DRAFT", te.From)
	require.Equal(t, "PAID", te.To)
}

func TestInvoiceOverdueRedirect(t *testing.T) {
	e, _ := newTestEngine(t)
	finance := userWithRole(t, e, models.RoleFinance)
	inv := freshInvoice(t, e, finance)

	// Move the clock past the due date; a SENT request lands in OVERDUE.
	e.now = func() time.Time { return testNow.AddDate(0, 0, 45) }
	require.NoError(t, e.TransitionInvoiceStatus(inv.ID, models.InvoiceSent, finance))

	got, err := e.GetInvoice(inv.ID)
	require.NoError(t, err)
	require.Equal(t, models.InvoiceOverdue, got.Status)

	// The audit trail records what actually happened.
	acts := e.ActivityFor(models.EntityInvoice, inv.ID)
	require.Equal(t, models.ActionStatusChanged, acts[0].Action)
	require.Equal(t, "OVERDUE", acts[0].Metadata["to"])

	// An overdue invoice can still be paid.
	require.NoError(t, e.TransitionInvoiceStatus(inv.ID, models.InvoicePaid, finance))
}

func TestInvoiceOverdueNotRequestable(t *testing.T) {
	e, _ := newTestEngine(t)
	finance := userWithRole(t, e, models.RoleFinance)
	inv := freshInvoice(t, e, finance)

	err := e.TransitionInvoiceStatus(inv.ID, models.InvoiceOverdue, finance)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestInvoiceCancelFromDraftAndSent(t *testing.T) {
	e, _ := newTestEngine(t)
	finance := userWithRole(t, e, models.RoleFinance)

	draft := freshInvoice(t, e, finance)
	require.NoError(t, e.TransitionInvoiceStatus(draft.ID, models.InvoiceCancelled, finance))

	sent := freshInvoice(t, e, finance)
	require.NoError(t, e.TransitionInvoiceStatus(sent.ID, models.InvoiceSent, finance))
	require.NoError(t, e.TransitionInvoiceStatus(sent.ID, models.InvoiceCancelled, finance))
}

func TestUpdateInvoiceNotesAndTerms(t *testing.T) {
	e, _ := newTestEngine(t)
	finance := userWithRole(t, e, models.RoleFinance)
	inv := freshInvoice(t, e, finance)

	notes, terms := "please pay promptly", "Net 60"
	got, err := e.UpdateInvoice(inv.ID, InvoicePatch{Notes: &notes, PaymentTerms: &terms}, finance)
	require.NoError(t, err)
	require.Equal(t, notes, got.Notes)
	require.Equal(t, terms, got.PaymentTerms)
	// Editing terms after issue does not move the due date.
	require.Equal(t, inv.DueDate, got.DueDate)
}
