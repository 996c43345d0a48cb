package services

import (
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/MitieSoft/salesdesk/internal/models"
)

// seed installs the default accounts and reference data on first run,
// when the users collection is empty. Quotes, orders, and invoices always
// start empty.
func (e *Engine) seed() error {
	if len(e.repo.Users) > 0 {
		return nil
	}
	now := e.now()
	users := []struct {
		name, email, password string
		role                  models.Role
	}{
		{"Admin User", "admin@example.com", "admin123", models.RoleAdmin},
		{"Sales Manager", "sales@example.com", "sales123", models.RoleSales},
		{"Finance Manager", "finance@example.com", "finance123", models.RoleFinance},
		{"Viewer User", "viewer@example.com", "viewer123", models.RoleViewer},
	}
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		e.repo.Users = append(e.repo.Users, models.User{
			ID:        e.newID(),
			Name:      u.name,
			Email:     u.email,
			Role:      u.role,
			Password:  string(hash),
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	if len(e.repo.Clients) == 0 {
		e.repo.Clients = []models.Client{
			{
				ID: e.newID(), Name: "Acme Corporation", ContactName: "John Doe",
				Email: "john@acme.com", Phone: "+44 20 1234 5678",
				BillingAddress: "123 Business St, London, UK", ShippingAddress: "123 Business St, London, UK",
				VATNumber: "GB123456789", IsActive: true, CreatedAt: now, UpdatedAt: now,
			},
			{
				ID: e.newID(), Name: "Tech Solutions Ltd", ContactName: "Jane Smith",
				Email: "jane@techsolutions.com", Phone: "+44 20 9876 5432",
				BillingAddress: "456 Innovation Ave, Manchester, UK", ShippingAddress: "456 Innovation Ave, Manchester, UK",
				VATNumber: "GB987654321", IsActive: true, CreatedAt: now, UpdatedAt: now,
			},
		}
	}

	if len(e.repo.Products) == 0 {
		vat20 := decimal.NewFromInt(20)
		products := []struct {
			name, desc, sku string
			price           int64
		}{
			{"Web Development Service", "Custom web development and design", "WEB-DEV-001", 5000},
			{"Mobile App Development", "iOS and Android app development", "MOB-APP-001", 8000},
			{"Consulting Hours", "Technical consulting per hour", "CONS-HR-001", 150},
			{"Hosting Service (Monthly)", "Cloud hosting and maintenance", "HOST-MON-001", 200},
		}
		for _, p := range products {
			e.repo.Products = append(e.repo.Products, models.Product{
				ID: e.newID(), Name: p.name, Description: p.desc, SKU: p.sku,
				UnitPrice: decimal.NewFromInt(p.price), DefaultVATRate: vat20,
				IsActive: true, CreatedAt: now, UpdatedAt: now,
			})
		}
	}

	e.repo.ResolveAll()
	e.saveUsers()
	e.saveClients()
	e.saveProducts()
	e.log.WithField("users", len(e.repo.Users)).Info("seeded default data")
	return nil
}
