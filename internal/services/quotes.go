package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MitieSoft/salesdesk/internal/gate"
	"github.com/MitieSoft/salesdesk/internal/models"
	"github.com/MitieSoft/salesdesk/internal/money"
	"github.com/MitieSoft/salesdesk/internal/numbering"
	"github.com/MitieSoft/salesdesk/internal/validation"
)

// ItemInput is one line of a document create/update request. Product
// linkage is optional; price and VAT are snapshots provided by the
// caller, typically copied from the product at form time.
type ItemInput struct {
	ProductID     string               `json:"productId"`
	Description   string               `json:"description"`
	Quantity      decimal.Decimal      `json:"quantity"`
	UnitPrice     decimal.Decimal      `json:"unitPrice"`
	DiscountType  models.DiscountType  `json:"discountType"`
	DiscountValue decimal.Decimal      `json:"discountValue"`
	VATRate       decimal.Decimal      `json:"vatRate"`
}

// QuoteInput is the payload for CreateQuote.
type QuoteInput struct {
	ClientID      string              `json:"clientId"`
	Currency      string              `json:"currency"`
	Notes         string              `json:"notes"`
	ValidUntil    *time.Time          `json:"validUntil"`
	DiscountType  models.DiscountType `json:"discountType"`
	DiscountValue decimal.Decimal     `json:"discountValue"`
	VATRate       decimal.Decimal     `json:"vatRate"`
	Items         []ItemInput         `json:"items"`
	CreatedByID   string              `json:"-"`
}

// QuotePatch updates a DRAFT (or SENT) quote. Nil fields are left
// untouched; supplying Items or any monetary field recomputes totals.
type QuotePatch struct {
	Notes         *string              `json:"notes"`
	Currency      *string              `json:"currency"`
	ValidUntil    *time.Time           `json:"validUntil"`
	DiscountType  *models.DiscountType `json:"discountType"`
	DiscountValue *decimal.Decimal     `json:"discountValue"`
	VATRate       *decimal.Decimal     `json:"vatRate"`
	Items         *[]ItemInput         `json:"items"`
}

// legal quote status transitions. CONVERTED and INVOICED appear here but
// are reachable only through derivation; TransitionQuoteStatus refuses
// them for external callers.
var quoteTransitions = map[models.QuoteStatus][]models.QuoteStatus{
	models.QuoteDraft:     {models.QuoteSent},
	models.QuoteSent:      {models.QuoteApproved, models.QuoteRejected},
	models.QuoteApproved:  {models.QuoteConverted},
	models.QuoteConverted: {models.QuoteInvoiced},
}

func quoteTransitionLegal(from, to models.QuoteStatus) bool {
	for _, s := range quoteTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (e *Engine) validateItems(items []ItemInput, v validation.Violations) {
	if len(items) == 0 {
		v["items"] = "required"
		return
	}
	for _, it := range items {
		validation.Required("items.description", it.Description, v)
		validation.NonNegative("items.quantity", it.Quantity, v)
		validation.NonNegative("items.unitPrice", it.UnitPrice, v)
		validation.NonNegative("items.vatRate", it.VATRate, v)
		validation.OneOf("items.discountType", string(it.DiscountType), v,
			string(models.DiscountPercentage), string(models.DiscountFixed))
	}
}

func buildQuoteItems(quoteID string, items []ItemInput, newID func() string) []models.QuoteItem {
	out := make([]models.QuoteItem, len(items))
	for i, it := range items {
		out[i] = models.QuoteItem{
			ID:            newID(),
			QuoteID:       quoteID,
			ProductID:     it.ProductID,
			Description:   it.Description,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			DiscountType:  it.DiscountType,
			DiscountValue: it.DiscountValue,
			VATRate:       it.VATRate,
			LineTotal:     money.LineTotal(it.Quantity, it.UnitPrice, it.VATRate),
		}
	}
	return out
}

func itemLines(items []ItemInput) []money.Line {
	lines := make([]money.Line, len(items))
	for i, it := range items {
		lines[i] = money.Line{Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	return lines
}

// CreateQuote builds a new DRAFT quote: number from the current
// collection size, items snapshotted, totals computed once.
func (e *Engine) CreateQuote(in QuoteInput) (*models.Quote, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(in.CreatedByID, gate.ActionCreate, gate.ResourceDocuments); err != nil {
		return nil, err
	}

	v := validation.Violations{}
	validation.Required("clientId", in.ClientID, v)
	validation.NonNegative("vatRate", in.VATRate, v)
	validation.NonNegative("discountValue", in.DiscountValue, v)
	validation.OneOf("discountType", string(in.DiscountType), v,
		string(models.DiscountPercentage), string(models.DiscountFixed))
	e.validateItems(in.Items, v)
	if in.ClientID != "" && e.repo.ClientByID(in.ClientID) == nil {
		v["clientId"] = "unknown_client"
	}
	if !v.Empty() {
		return nil, violationErr(v)
	}

	now := e.now()
	currency := in.Currency
	if currency == "" {
		currency = "GBP"
	}
	totals := money.ComputeTotals(itemLines(in.Items), in.DiscountType, in.DiscountValue, in.VATRate)
	id := e.newID()
	quote := models.Quote{
		ID:            id,
		QuoteNumber:   numbering.Next(numbering.PrefixQuote, now.Year(), len(e.repo.Quotes)),
		ClientID:      in.ClientID,
		Status:        models.QuoteDraft,
		Currency:      currency,
		Notes:         in.Notes,
		ValidUntil:    in.ValidUntil,
		Subtotal:      totals.Subtotal,
		DiscountType:  in.DiscountType,
		DiscountValue: in.DiscountValue,
		VATRate:       in.VATRate,
		VATAmount:     totals.VATAmount,
		Total:         totals.Total,
		CreatedByID:   in.CreatedByID,
		Items:         buildQuoteItems(id, in.Items, e.newID),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	e.repo.Quotes = append(e.repo.Quotes, quote)
	e.logActivity(models.EntityQuote, id, models.ActionCreated, in.CreatedByID, nil)
	e.repo.ResolveAll()
	e.saveQuotes()
	return e.repo.QuoteByID(id), nil
}

// UpdateQuote applies a partial edit. Quotes that have been converted or
// invoiced are locked.
func (e *Engine) UpdateQuote(id string, patch QuotePatch, actorID string) (*models.Quote, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionUpdate, gate.ResourceDocuments); err != nil {
		return nil, err
	}
	quote := e.repo.QuoteByID(id)
	if quote == nil {
		return nil, ErrNotFound
	}
	if quote.Locked() {
		return nil, violationErr(validation.Violations{"status": "immutable_after_conversion"})
	}

	if patch.Notes != nil {
		quote.Notes = *patch.Notes
	}
	if patch.Currency != nil {
		quote.Currency = *patch.Currency
	}
	if patch.ValidUntil != nil {
		quote.ValidUntil = patch.ValidUntil
	}
	if patch.DiscountType != nil {
		quote.DiscountType = *patch.DiscountType
	}
	if patch.DiscountValue != nil {
		quote.DiscountValue = *patch.DiscountValue
	}
	if patch.VATRate != nil {
		quote.VATRate = *patch.VATRate
	}
	if patch.Items != nil {
		v := validation.Violations{}
		e.validateItems(*patch.Items, v)
		if !v.Empty() {
			return nil, violationErr(v)
		}
		quote.Items = buildQuoteItems(quote.ID, *patch.Items, e.newID)
	}
	// Recompute totals from the items now on the quote.
	lines := make([]money.Line, len(quote.Items))
	for i, it := range quote.Items {
		lines[i] = money.Line{Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	totals := money.ComputeTotals(lines, quote.DiscountType, quote.DiscountValue, quote.VATRate)
	quote.Subtotal, quote.VATAmount, quote.Total = totals.Subtotal, totals.VATAmount, totals.Total
	quote.UpdatedAt = e.now()

	e.logActivity(models.EntityQuote, id, models.ActionUpdated, actorID, nil)
	e.repo.ResolveAll()
	e.saveQuotes()
	return e.repo.QuoteByID(id), nil
}

// DeleteQuote removes the quote. Dependent orders and invoices keep
// their quoteId; only their resolved reference goes nil.
func (e *Engine) DeleteQuote(id, actorID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionDelete, gate.ResourceDocuments); err != nil {
		return err
	}
	idx := -1
	for i := range e.repo.Quotes {
		if e.repo.Quotes[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrNotFound
	}
	e.repo.Quotes = append(e.repo.Quotes[:idx], e.repo.Quotes[idx+1:]...)
	e.logActivity(models.EntityQuote, id, models.ActionDeleted, actorID, nil)
	e.repo.ResolveAll()
	e.saveQuotes()
	e.saveOrders()
	e.saveInvoices()
	return nil
}

// TransitionQuoteStatus applies an explicit status change. CONVERTED and
// INVOICED are derivation side effects and cannot be requested here.
func (e *Engine) TransitionQuoteStatus(id string, newStatus models.QuoteStatus, actorID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionTransition, gate.ResourceDocuments); err != nil {
		return err
	}
	if newStatus == models.QuoteConverted || newStatus == models.QuoteInvoiced {
		quote := e.repo.QuoteByID(id)
		from := models.QuoteStatus("")
		if quote != nil {
			from = quote.Status
		}
		return &InvalidTransitionError{Entity: "quote", From: string(from), To: string(newStatus)}
	}
	quote := e.repo.QuoteByID(id)
	if quote == nil {
		return ErrNotFound
	}
	return e.transitionQuote(quote, newStatus, actorID)
}

// transitionQuote enforces the graph and records the change. Callers
// hold the engine lock.
func (e *Engine) transitionQuote(quote *models.Quote, newStatus models.QuoteStatus, actorID string) error {
	if !quoteTransitionLegal(quote.Status, newStatus) {
		return &InvalidTransitionError{Entity: "quote", From: string(quote.Status), To: string(newStatus)}
	}
	oldStatus := quote.Status
	now := e.now()
	quote.Status = newStatus
	quote.UpdatedAt = now
	if newStatus == models.QuoteApproved {
		quote.ApprovedByClientAt = &now
	}
	e.logActivity(models.EntityQuote, quote.ID, models.ActionStatusChanged, actorID, map[string]string{
		"from": string(oldStatus),
		"to":   string(newStatus),
	})
	// Orders and invoices hold resolved copies of this quote.
	e.repo.ResolveAll()
	e.saveQuotes()
	return nil
}

// GetQuote returns the resolved quote.
func (e *Engine) GetQuote(id string) (*models.Quote, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	quote := e.repo.QuoteByID(id)
	if quote == nil {
		return nil, ErrNotFound
	}
	q := *quote
	return &q, nil
}

// ListQuotes returns all quotes in creation order.
func (e *Engine) ListQuotes() []models.Quote {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.Quote, len(e.repo.Quotes))
	copy(out, e.repo.Quotes)
	return out
}
