package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/MitieSoft/salesdesk/internal/gate"
	"github.com/MitieSoft/salesdesk/internal/mailer"
	"github.com/MitieSoft/salesdesk/internal/models"
	"github.com/MitieSoft/salesdesk/internal/validation"
)

// EmailInput is the payload for sending a document by email.
type EmailInput struct {
	EntityType models.EntityType `json:"entityType"`
	EntityID   string            `json:"entityId"`
	To         string            `json:"to"`
	CC         string            `json:"cc"`
	Subject    string            `json:"subject"`
	Body       string            `json:"body"`
}

// SendEmail dispatches the message through the configured transport and
// records the outcome in the email log. Both outcomes are logged; only a
// successful send moves a DRAFT quote or invoice to SENT.
func (e *Engine) SendEmail(ctx context.Context, in EmailInput, actorID string) (*models.EmailLog, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionUpdate, gate.ResourceDocuments); err != nil {
		return nil, err
	}

	v := validation.Violations{}
	validation.Required("to", in.To, v)
	validation.Required("subject", in.Subject, v)
	switch in.EntityType {
	case models.EntityQuote:
		if e.repo.QuoteByID(in.EntityID) == nil {
			v["entityId"] = "unknown_quote"
		}
	case models.EntityOrder:
		if e.repo.OrderByID(in.EntityID) == nil {
			v["entityId"] = "unknown_order"
		}
	case models.EntityInvoice:
		if e.repo.InvoiceByID(in.EntityID) == nil {
			v["entityId"] = "unknown_invoice"
		}
	default:
		v["entityType"] = "invalid_value"
	}
	if !v.Empty() {
		return nil, violationErr(v)
	}

	providerID, sendErr := e.mail.Send(ctx, mailer.Message{
		To:      in.To,
		CC:      in.CC,
		Subject: in.Subject,
		Body:    in.Body,
	})

	entry := models.EmailLog{
		ID:         e.newID(),
		EntityType: in.EntityType,
		EntityID:   in.EntityID,
		To:         in.To,
		CC:         in.CC,
		Subject:    in.Subject,
		Status:     models.EmailSent,
		SentAt:     e.now(),
	}
	if sendErr != nil {
		entry.Status = models.EmailFailed
		entry.ErrorMessage = sendErr.Error()
		e.log.WithError(sendErr).WithFields(logrus.Fields{
			"entityType": in.EntityType,
			"entityId":   in.EntityID,
		}).Warn("email send failed")
	} else {
		entry.ProviderMessageID = providerID
	}
	e.repo.EmailLogs = append([]models.EmailLog{entry}, e.repo.EmailLogs...)
	e.saveEmailLogs()

	if sendErr != nil {
		return &entry, sendErr
	}

	e.logActivity(in.EntityType, in.EntityID, models.ActionEmailSent, actorID, map[string]string{
		"to":      in.To,
		"subject": in.Subject,
	})

	// Sending a draft document is how it leaves the drawer. DRAFT to
	// SENT is always legal.
	switch in.EntityType {
	case models.EntityQuote:
		if q := e.repo.QuoteByID(in.EntityID); q != nil && q.Status == models.QuoteDraft {
			_ = e.transitionQuote(q, models.QuoteSent, actorID)
		}
	case models.EntityInvoice:
		if inv := e.repo.InvoiceByID(in.EntityID); inv != nil && inv.Status == models.InvoiceDraft {
			_ = e.transitionInvoice(inv, models.InvoiceSent, actorID)
		}
	}
	return &entry, nil
}
