package services

import (
	"fmt"

	"github.com/MitieSoft/salesdesk/internal/gate"
	"github.com/MitieSoft/salesdesk/internal/models"
	"github.com/MitieSoft/salesdesk/internal/numbering"
)

// Derivation: the one-way creation of an Order from a Quote and an
// Invoice from an Order. Monetary fields are copied verbatim, never
// recomputed; items are deep-copied with fresh ids. Both derivations are
// idempotent: re-deriving returns the document created the first time.

// ConvertQuoteToOrder derives a CONFIRMED order from an APPROVED quote
// and flips the quote to CONVERTED.
func (e *Engine) ConvertQuoteToOrder(quoteID, actorID string) (*models.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionConvert, gate.ResourceDocuments); err != nil {
		return nil, err
	}
	quote := e.repo.QuoteByID(quoteID)
	if quote == nil {
		return nil, ErrNotFound
	}
	if quote.ConvertedToOrderID != "" {
		if existing := e.repo.OrderByID(quote.ConvertedToOrderID); existing != nil {
			o := *existing
			return &o, nil
		}
	}
	if quote.Status != models.QuoteApproved {
		return nil, &InvalidTransitionError{Entity: "quote", From: string(quote.Status), To: string(models.QuoteConverted)}
	}

	now := e.now()
	orderID := e.newID()
	items := make([]models.OrderItem, len(quote.Items))
	for i, it := range quote.Items {
		items[i] = models.OrderItem{
			ID:            e.newID(),
			OrderID:       orderID,
			ProductID:     it.ProductID,
			Description:   it.Description,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			DiscountType:  it.DiscountType,
			DiscountValue: it.DiscountValue,
			VATRate:       it.VATRate,
			LineTotal:     it.LineTotal,
		}
	}
	order := models.Order{
		ID:            orderID,
		OrderNumber:   numbering.Next(numbering.PrefixOrder, now.Year(), len(e.repo.Orders)),
		QuoteID:       quote.ID,
		ClientID:      quote.ClientID,
		Status:        models.OrderConfirmed,
		Currency:      quote.Currency,
		Notes:         fmt.Sprintf("Order created from quote %s", quote.QuoteNumber),
		Subtotal:      quote.Subtotal,
		DiscountType:  quote.DiscountType,
		DiscountValue: quote.DiscountValue,
		VATRate:       quote.VATRate,
		VATAmount:     quote.VATAmount,
		Total:         quote.Total,
		Items:         items,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	// Flip the quote first; a refused transition must not leave a
	// half-derived order behind.
	quote.ConvertedToOrderID = orderID
	if err := e.transitionQuote(quote, models.QuoteConverted, actorID); err != nil {
		return nil, err
	}
	e.repo.Orders = append(e.repo.Orders, order)
	e.logActivity(models.EntityOrder, orderID, models.ActionCreated, actorID, map[string]string{
		"fromQuote": quoteID,
	})
	e.repo.ResolveAll()
	e.saveOrders()
	result := *e.repo.OrderByID(orderID)
	return &result, nil
}

// paymentTermDays maps a payment-terms label to a due-date offset.
// Unrecognized labels, "Due on Receipt" included, fall back to 30 days.
func paymentTermDays(terms string) int {
	switch terms {
	case "Net 15":
		return 15
	case "Net 30":
		return 30
	case "Net 60":
		return 60
	default:
		return 30
	}
}

// ConvertOrderToInvoice derives a DRAFT invoice from an order. The due
// date is issue date plus the payment-terms offset. If the order came
// from a quote, that quote moves to INVOICED.
func (e *Engine) ConvertOrderToInvoice(orderID, actorID, paymentTerms string) (*models.Invoice, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionConvert, gate.ResourceDocuments); err != nil {
		return nil, err
	}
	order := e.repo.OrderByID(orderID)
	if order == nil {
		return nil, ErrNotFound
	}
	for i := range e.repo.Invoices {
		if e.repo.Invoices[i].OrderID == orderID {
			inv := e.repo.Invoices[i]
			return &inv, nil
		}
	}
	if order.Status == models.OrderCancelled {
		return nil, &InvalidTransitionError{Entity: "order", From: string(order.Status), To: "INVOICED"}
	}
	if paymentTerms == "" {
		paymentTerms = "Net 30"
	}

	now := e.now()
	issueDate := now
	dueDate := issueDate.AddDate(0, 0, paymentTermDays(paymentTerms))
	invoiceID := e.newID()
	items := make([]models.InvoiceItem, len(order.Items))
	for i, it := range order.Items {
		items[i] = models.InvoiceItem{
			ID:            e.newID(),
			InvoiceID:     invoiceID,
			ProductID:     it.ProductID,
			Description:   it.Description,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			DiscountType:  it.DiscountType,
			DiscountValue: it.DiscountValue,
			VATRate:       it.VATRate,
			LineTotal:     it.LineTotal,
		}
	}
	invoice := models.Invoice{
		ID:            invoiceID,
		InvoiceNumber: numbering.Next(numbering.PrefixInvoice, now.Year(), len(e.repo.Invoices)),
		OrderID:       order.ID,
		QuoteID:       order.QuoteID,
		ClientID:      order.ClientID,
		Status:        models.InvoiceDraft,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		Currency:      order.Currency,
		PaymentTerms:  paymentTerms,
		Notes:         fmt.Sprintf("Invoice created from order %s", order.OrderNumber),
		Subtotal:      order.Subtotal,
		DiscountType:  order.DiscountType,
		DiscountValue: order.DiscountValue,
		VATRate:       order.VATRate,
		VATAmount:     order.VATAmount,
		Total:         order.Total,
		Items:         items,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	// Flip the quote first; a refused transition must not leave a
	// half-derived invoice behind.
	if order.QuoteID != "" {
		if quote := e.repo.QuoteByID(order.QuoteID); quote != nil {
			if err := e.transitionQuote(quote, models.QuoteInvoiced, actorID); err != nil {
				return nil, err
			}
		}
	}
	e.repo.Invoices = append(e.repo.Invoices, invoice)
	e.logActivity(models.EntityInvoice, invoiceID, models.ActionCreated, actorID, map[string]string{
		"fromOrder": orderID,
	})
	e.repo.ResolveAll()
	e.saveInvoices()
	result := *e.repo.InvoiceByID(invoiceID)
	return &result, nil
}
