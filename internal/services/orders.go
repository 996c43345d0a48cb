package services

import (
	"github.com/shopspring/decimal"

	"github.com/MitieSoft/salesdesk/internal/gate"
	"github.com/MitieSoft/salesdesk/internal/models"
	"github.com/MitieSoft/salesdesk/internal/money"
	"github.com/MitieSoft/salesdesk/internal/numbering"
	"github.com/MitieSoft/salesdesk/internal/validation"
)

// OrderInput is the payload for direct order creation (not derivation).
type OrderInput struct {
	ClientID      string              `json:"clientId"`
	Currency      string              `json:"currency"`
	Notes         string              `json:"notes"`
	DiscountType  models.DiscountType `json:"discountType"`
	DiscountValue decimal.Decimal     `json:"discountValue"`
	VATRate       decimal.Decimal     `json:"vatRate"`
	Items         []ItemInput         `json:"items"`
	CreatedByID   string              `json:"-"`
}

// OrderPatch updates notes on an order; status moves via
// TransitionOrderStatus only.
type OrderPatch struct {
	Notes    *string `json:"notes"`
	Currency *string `json:"currency"`
}

// Order transition graph. CANCELLED is terminal and FULFILLED is
// reachable only from CONFIRMED. Derivation creates orders directly in
// CONFIRMED.
var orderTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderPending:   {models.OrderConfirmed, models.OrderCancelled},
	models.OrderConfirmed: {models.OrderFulfilled, models.OrderCancelled},
}

func orderTransitionLegal(from, to models.OrderStatus) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CreateOrder builds a PENDING order directly, without a source quote.
func (e *Engine) CreateOrder(in OrderInput) (*models.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(in.CreatedByID, gate.ActionCreate, gate.ResourceDocuments); err != nil {
		return nil, err
	}

	v := validation.Violations{}
	validation.Required("clientId", in.ClientID, v)
	validation.NonNegative("vatRate", in.VATRate, v)
	validation.NonNegative("discountValue", in.DiscountValue, v)
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
	orderID := e.newID()
	items := make([]models.OrderItem, len(in.Items))
	for i, it := range in.Items {
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
			LineTotal:     money.LineTotal(it.Quantity, it.UnitPrice, it.VATRate),
		}
	}
	order := models.Order{
		ID:            orderID,
		OrderNumber:   numbering.Next(numbering.PrefixOrder, now.Year(), len(e.repo.Orders)),
		ClientID:      in.ClientID,
		Status:        models.OrderPending,
		Currency:      currency,
		Notes:         in.Notes,
		Subtotal:      totals.Subtotal,
		DiscountType:  in.DiscountType,
		DiscountValue: in.DiscountValue,
		VATRate:       in.VATRate,
		VATAmount:     totals.VATAmount,
		Total:         totals.Total,
		Items:         items,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	e.repo.Orders = append(e.repo.Orders, order)
	e.logActivity(models.EntityOrder, orderID, models.ActionCreated, in.CreatedByID, nil)
	e.repo.ResolveAll()
	e.saveOrders()
	result := *e.repo.OrderByID(orderID)
	return &result, nil
}

func (e *Engine) UpdateOrder(id string, patch OrderPatch, actorID string) (*models.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionUpdate, gate.ResourceDocuments); err != nil {
		return nil, err
	}
	order := e.repo.OrderByID(id)
	if order == nil {
		return nil, ErrNotFound
	}
	if patch.Notes != nil {
		order.Notes = *patch.Notes
	}
	if patch.Currency != nil {
		order.Currency = *patch.Currency
	}
	order.UpdatedAt = e.now()
	e.logActivity(models.EntityOrder, id, models.ActionUpdated, actorID, nil)
	e.repo.ResolveAll()
	e.saveOrders()
	e.saveInvoices()
	result := *e.repo.OrderByID(id)
	return &result, nil
}

func (e *Engine) DeleteOrder(id, actorID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionDelete, gate.ResourceDocuments); err != nil {
		return err
	}
	idx := -1
	for i := range e.repo.Orders {
		if e.repo.Orders[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrNotFound
	}
	e.repo.Orders = append(e.repo.Orders[:idx], e.repo.Orders[idx+1:]...)
	e.logActivity(models.EntityOrder, id, models.ActionDeleted, actorID, nil)
	e.repo.ResolveAll()
	e.saveOrders()
	e.saveInvoices()
	return nil
}

// TransitionOrderStatus enforces the explicit order graph.
func (e *Engine) TransitionOrderStatus(id string, newStatus models.OrderStatus, actorID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionTransition, gate.ResourceDocuments); err != nil {
		return err
	}
	order := e.repo.OrderByID(id)
	if order == nil {
		return ErrNotFound
	}
	if !orderTransitionLegal(order.Status, newStatus) {
		return &InvalidTransitionError{Entity: "order", From: string(order.Status), To: string(newStatus)}
	}
	oldStatus := order.Status
	order.Status = newStatus
	order.UpdatedAt = e.now()
	e.logActivity(models.EntityOrder, id, models.ActionStatusChanged, actorID, map[string]string{
		"from": string(oldStatus),
		"to":   string(newStatus),
	})
	// Invoices hold resolved copies of this order.
	e.repo.ResolveAll()
	e.saveOrders()
	return nil
}

func (e *Engine) GetOrder(id string) (*models.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	order := e.repo.OrderByID(id)
	if order == nil {
		return nil, ErrNotFound
	}
	o := *order
	return &o, nil
}

func (e *Engine) ListOrders() []models.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.Order, len(e.repo.Orders))
	copy(out, e.repo.Orders)
	return out
}
