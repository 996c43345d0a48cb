package services

import (
	"github.com/shopspring/decimal"

	"github.com/MitieSoft/salesdesk/internal/gate"
	"github.com/MitieSoft/salesdesk/internal/models"
	"github.com/MitieSoft/salesdesk/internal/validation"
)

// ProductInput is the payload for product create and update.
type ProductInput struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	SKU            string          `json:"sku"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	DefaultVATRate decimal.Decimal `json:"defaultVatRate"`
	IsActive       bool            `json:"isActive"`
}

func (e *Engine) validateProduct(in ProductInput) error {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.NonNegative("unitPrice", in.UnitPrice, v)
	validation.NonNegative("defaultVatRate", in.DefaultVATRate, v)
	if !v.Empty() {
		return violationErr(v)
	}
	return nil
}

func (e *Engine) CreateProduct(in ProductInput, actorID string) (*models.Product, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionCreate, gate.ResourceDocuments); err != nil {
		return nil, err
	}
	if err := e.validateProduct(in); err != nil {
		return nil, err
	}
	now := e.now()
	product := models.Product{
		ID:             e.newID(),
		Name:           in.Name,
		Description:    in.Description,
		SKU:            in.SKU,
		UnitPrice:      in.UnitPrice,
		DefaultVATRate: in.DefaultVATRate,
		IsActive:       in.IsActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	e.repo.Products = append(e.repo.Products, product)
	e.logActivity(models.EntityProduct, product.ID, models.ActionCreated, actorID, nil)
	e.saveProducts()
	e.repo.ResolveAll()
	p := product
	return &p, nil
}

// UpdateProduct edits the template. Existing line items keep the price
// and VAT snapshot they were created with; only their resolved product
// pointer reflects the edit.
func (e *Engine) UpdateProduct(id string, in ProductInput, actorID string) (*models.Product, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionUpdate, gate.ResourceDocuments); err != nil {
		return nil, err
	}
	product := e.repo.ProductByID(id)
	if product == nil {
		return nil, ErrNotFound
	}
	if err := e.validateProduct(in); err != nil {
		return nil, err
	}
	product.Name = in.Name
	product.Description = in.Description
	product.SKU = in.SKU
	product.UnitPrice = in.UnitPrice
	product.DefaultVATRate = in.DefaultVATRate
	product.IsActive = in.IsActive
	product.UpdatedAt = e.now()
	e.logActivity(models.EntityProduct, id, models.ActionUpdated, actorID, nil)
	e.saveProducts()
	e.repo.ResolveAll()
	p := *e.repo.ProductByID(id)
	return &p, nil
}

func (e *Engine) DeleteProduct(id, actorID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionDelete, gate.ResourceDocuments); err != nil {
		return err
	}
	idx := -1
	for i := range e.repo.Products {
		if e.repo.Products[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrNotFound
	}
	e.repo.Products = append(e.repo.Products[:idx], e.repo.Products[idx+1:]...)
	e.logActivity(models.EntityProduct, id, models.ActionDeleted, actorID, nil)
	e.saveProducts()
	e.repo.ResolveAll()
	return nil
}

func (e *Engine) GetProduct(id string) (*models.Product, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	product := e.repo.ProductByID(id)
	if product == nil {
		return nil, ErrNotFound
	}
	p := *product
	return &p, nil
}

func (e *Engine) ListProducts() []models.Product {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.Product, len(e.repo.Products))
	copy(out, e.repo.Products)
	return out
}
