package services

import (
	"github.com/MitieSoft/salesdesk/internal/gate"
	"github.com/MitieSoft/salesdesk/internal/models"
	"github.com/MitieSoft/salesdesk/internal/validation"
)

// ClientInput is the payload for client create and update.
type ClientInput struct {
	Name            string `json:"name"`
	ContactName     string `json:"contactName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	BillingAddress  string `json:"billingAddress"`
	ShippingAddress string `json:"shippingAddress"`
	VATNumber       string `json:"vatNumber"`
	IsActive        bool   `json:"isActive"`
}

func (e *Engine) CreateClient(in ClientInput, actorID string) (*models.Client, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionCreate, gate.ResourceDocuments); err != nil {
		return nil, err
	}
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.Required("email", in.Email, v)
	if !v.Empty() {
		return nil, violationErr(v)
	}
	now := e.now()
	client := models.Client{
		ID:              e.newID(),
		Name:            in.Name,
		ContactName:     in.ContactName,
		Email:           in.Email,
		Phone:           in.Phone,
		BillingAddress:  in.BillingAddress,
		ShippingAddress: in.ShippingAddress,
		VATNumber:       in.VATNumber,
		IsActive:        in.IsActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	e.repo.Clients = append(e.repo.Clients, client)
	e.logActivity(models.EntityClient, client.ID, models.ActionCreated, actorID, nil)
	e.saveClients()
	c := client
	return &c, nil
}

func (e *Engine) UpdateClient(id string, in ClientInput, actorID string) (*models.Client, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionUpdate, gate.ResourceDocuments); err != nil {
		return nil, err
	}
	client := e.repo.ClientByID(id)
	if client == nil {
		return nil, ErrNotFound
	}
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.Required("email", in.Email, v)
	if !v.Empty() {
		return nil, violationErr(v)
	}
	client.Name = in.Name
	client.ContactName = in.ContactName
	client.Email = in.Email
	client.Phone = in.Phone
	client.BillingAddress = in.BillingAddress
	client.ShippingAddress = in.ShippingAddress
	client.VATNumber = in.VATNumber
	client.IsActive = in.IsActive
	client.UpdatedAt = e.now()
	e.logActivity(models.EntityClient, id, models.ActionUpdated, actorID, nil)
	e.saveClients()
	// Denormalized client references across documents must follow the edit.
	e.repo.ResolveAll()
	c := *e.repo.ClientByID(id)
	return &c, nil
}

// DeleteClient removes the client only. Documents referencing it keep
// their clientId; after re-resolution their resolved client is nil.
func (e *Engine) DeleteClient(id, actorID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionDelete, gate.ResourceDocuments); err != nil {
		return err
	}
	idx := -1
	for i := range e.repo.Clients {
		if e.repo.Clients[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrNotFound
	}
	e.repo.Clients = append(e.repo.Clients[:idx], e.repo.Clients[idx+1:]...)
	e.logActivity(models.EntityClient, id, models.ActionDeleted, actorID, nil)
	e.saveClients()
	e.repo.ResolveAll()
	return nil
}

func (e *Engine) GetClient(id string) (*models.Client, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	client := e.repo.ClientByID(id)
	if client == nil {
		return nil, ErrNotFound
	}
	c := *client
	return &c, nil
}

func (e *Engine) ListClients() []models.Client {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.Client, len(e.repo.Clients))
	copy(out, e.repo.Clients)
	return out
}
