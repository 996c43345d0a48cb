package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/MitieSoft/salesdesk/internal/models"
)

func TestClientCRUD(t *testing.T) {
	e, _ := newTestEngine(t)
	sales := userWithRole(t, e, models.RoleSales)

	c, err := e.CreateClient(ClientInput{
		Name:        "Globex",
		ContactName: "Hank Scorpio",
		Email:       "hank@globex.com",
		IsActive:    true,
	}, sales)
	require.NoError(t, err)
	require.NotEmpty(t, c.ID)

	updated, err := e.UpdateClient(c.ID, ClientInput{Name: "Globex Ltd", Email: "hank@globex.com", IsActive: true}, sales)
	require.NoError(t, err)
	require.Equal(t, "Globex Ltd", updated.Name)

	require.NoError(t, e.DeleteClient(c.ID, sales))
	_, err = e.GetClient(c.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = e.CreateClient(ClientInput{}, sales)
	require.ErrorIs(t, err, ErrValidation)
}

func TestDeleteClientDanglesDocumentReference(t *testing.T) {
	e, _ := newTestEngine(t)
	sales := userWithRole(t, e, models.RoleSales)
	q, err := e.CreateQuote(standardQuoteInput(t, e, sales))
	require.NoError(t, err)
	require.NotNil(t, q.Client)

	require.NoError(t, e.DeleteClient(q.ClientID, sales))

	got, err := e.GetQuote(q.ID)
	require.NoError(t, err)
	require.Equal(t, q.ClientID, got.ClientID, "foreign key survives")
	require.Nil(t, got.Client, "resolved reference goes nil")
}

func TestProductCRUDAndSnapshotSemantics(t *testing.T) {
	e, _ := newTestEngine(t)
	sales := userWithRole(t, e, models.RoleSales)

	p, err := e.CreateProduct(ProductInput{
		Name:           "Support Retainer",
		SKU:            "SUP-RET-001",
		UnitPrice:      decimal.NewFromInt(900),
		DefaultVATRate: decimal.NewFromInt(20),
		IsActive:       true,
	}, sales)
	require.NoError(t, err)

	// Quote an item at the current price.
	in := standardQuoteInput(t, e, sales)
	in.Items = []ItemInput{{
		ProductID:   p.ID,
		Description: p.Name,
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   p.UnitPrice,
		VATRate:     p.DefaultVATRate,
	}}
	in.DiscountValue = decimal.Zero
	in.DiscountType = ""
	q, err := e.CreateQuote(in)
	require.NoError(t, err)

	// Raising the product price later does not touch the quoted line.
	_, err = e.UpdateProduct(p.ID, ProductInput{
		Name: p.Name, SKU: p.SKU,
		UnitPrice:      decimal.NewFromInt(1200),
		DefaultVATRate: p.DefaultVATRate,
		IsActive:       true,
	}, sales)
	require.NoError(t, err)

	got, err := e.GetQuote(q.ID)
	require.NoError(t, err)
	require.True(t, got.Items[0].UnitPrice.Equal(decimal.NewFromInt(900)))
	require.True(t, got.Subtotal.Equal(decimal.NewFromInt(900)))

	require.NoError(t, e.DeleteProduct(p.ID, sales))
	got, err = e.GetQuote(q.ID)
	require.NoError(t, err)
	require.Equal(t, p.ID, got.Items[0].ProductID)
	require.Nil(t, got.Items[0].Product)
}
