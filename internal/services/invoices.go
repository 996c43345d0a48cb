package services

import (
	"github.com/MitieSoft/salesdesk/internal/gate"
	"github.com/MitieSoft/salesdesk/internal/models"
)

// InvoicePatch updates the editable invoice fields; status moves via
// TransitionInvoiceStatus only.
type InvoicePatch struct {
	Notes        *string `json:"notes"`
	PaymentTerms *string `json:"paymentTerms"`
}

// Legal invoice transitions. OVERDUE is not a requestable target: asking
// for SENT past the due date lands there (see TransitionInvoiceStatus).
// An OVERDUE invoice can still be paid or cancelled.
var invoiceTransitions = map[models.InvoiceStatus][]models.InvoiceStatus{
	models.InvoiceDraft:   {models.InvoiceSent, models.InvoiceCancelled},
	models.InvoiceSent:    {models.InvoicePaid, models.InvoiceCancelled},
	models.InvoiceOverdue: {models.InvoicePaid, models.InvoiceCancelled},
}

func invoiceTransitionLegal(from, to models.InvoiceStatus) bool {
	for _, s := range invoiceTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (e *Engine) UpdateInvoice(id string, patch InvoicePatch, actorID string) (*models.Invoice, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionUpdate, gate.ResourceDocuments); err != nil {
		return nil, err
	}
	invoice := e.repo.InvoiceByID(id)
	if invoice == nil {
		return nil, ErrNotFound
	}
	if patch.Notes != nil {
		invoice.Notes = *patch.Notes
	}
	if patch.PaymentTerms != nil {
		invoice.PaymentTerms = *patch.PaymentTerms
	}
	invoice.UpdatedAt = e.now()
	e.logActivity(models.EntityInvoice, id, models.ActionUpdated, actorID, nil)
	e.repo.ResolveAll()
	e.saveInvoices()
	result := *e.repo.InvoiceByID(id)
	return &result, nil
}

func (e *Engine) DeleteInvoice(id, actorID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionDelete, gate.ResourceDocuments); err != nil {
		return err
	}
	idx := -1
	for i := range e.repo.Invoices {
		if e.repo.Invoices[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrNotFound
	}
	e.repo.Invoices = append(e.repo.Invoices[:idx], e.repo.Invoices[idx+1:]...)
	e.logActivity(models.EntityInvoice, id, models.ActionDeleted, actorID, nil)
	e.repo.ResolveAll()
	e.saveInvoices()
	return nil
}

// TransitionInvoiceStatus applies a status change. A request for SENT on
// an invoice already past its due date is silently redirected to
// OVERDUE; the activity metadata records the status actually applied.
func (e *Engine) TransitionInvoiceStatus(id string, newStatus models.InvoiceStatus, actorID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionTransition, gate.ResourceDocuments); err != nil {
		return err
	}
	invoice := e.repo.InvoiceByID(id)
	if invoice == nil {
		return ErrNotFound
	}
	return e.transitionInvoice(invoice, newStatus, actorID)
}

func (e *Engine) transitionInvoice(invoice *models.Invoice, newStatus models.InvoiceStatus, actorID string) error {
	if newStatus == models.InvoiceOverdue {
		return &InvalidTransitionError{Entity: "invoice", From: string(invoice.Status), To: string(newStatus)}
	}
	if invoice.Terminal() || !invoiceTransitionLegal(invoice.Status, newStatus) {
		return &InvalidTransitionError{Entity: "invoice", From: string(invoice.Status), To: string(newStatus)}
	}
	oldStatus := invoice.Status
	applied := newStatus
	if newStatus == models.InvoiceSent && invoice.DueDate.Before(e.now()) {
		applied = models.InvoiceOverdue
	}
	invoice.Status = applied
	invoice.UpdatedAt = e.now()
	e.logActivity(models.EntityInvoice, invoice.ID, models.ActionStatusChanged, actorID, map[string]string{
		"from": string(oldStatus),
		"to":   string(applied),
	})
	e.repo.ResolveAll()
	e.saveInvoices()
	return nil
}

func (e *Engine) GetInvoice(id string) (*models.Invoice, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	invoice := e.repo.InvoiceByID(id)
	if invoice == nil {
		return nil, ErrNotFound
	}
	inv := *invoice
	return &inv, nil
}

func (e *Engine) ListInvoices() []models.Invoice {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.Invoice, len(e.repo.Invoices))
	copy(out, e.repo.Invoices)
	return out
}
