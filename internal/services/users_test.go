package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MitieSoft/salesdesk/internal/mailer"
	"github.com/MitieSoft/salesdesk/internal/models"
)

func TestCreateUserHashesPassword(t *testing.T) {
	e, _ := newTestEngine(t)
	admin := userWithRole(t, e, models.RoleAdmin)

	u, err := e.CreateUser(UserInput{
		Name:     "New Sales",
		Email:    "newsales@example.com",
		Role:     models.RoleSales,
		Password: "secret99",
	}, admin)
	require.NoError(t, err)
	require.Empty(t, u.Password, "returned user must not carry the hash")

	stored := e.repo.UserByID(u.ID)
	require.NotNil(t, stored)
	require.NotEqual(t, "secret99", stored.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret99")))

	got, err := e.Authenticate("newsales@example.com", "secret99")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	acts := e.ActivityFor(models.EntityUser, u.ID)
	require.Len(t, acts, 1)
	require.Equal(t, models.ActionCreated, acts[0].Action)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	e, _ := newTestEngine(t)
	admin := userWithRole(t, e, models.RoleAdmin)

	_, err := e.CreateUser(UserInput{
		Name:     "Clone",
		Email:    "ADMIN@example.com",
		Role:     models.RoleViewer,
		Password: "x12345",
	}, admin)
	require.ErrorIs(t, err, ErrValidation)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "already_taken", ve.Violations["email"])
}

func TestUserManagementIsAdminOnly(t *testing.T) {
	e, _ := newTestEngine(t)
	sales := userWithRole(t, e, models.RoleSales)
	viewer := userWithRole(t, e, models.RoleViewer)

	_, err := e.CreateUser(UserInput{Name: "X", Email: "x@example.com", Role: models.RoleViewer, Password: "pw1234"}, sales)
	require.ErrorIs(t, err, ErrForbidden)
	require.ErrorIs(t, e.DeleteUser(viewer, sales), ErrForbidden)
	_, err = e.ListUsers(viewer)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateUserKeepsPasswordWhenEmpty(t *testing.T) {
	e, _ := newTestEngine(t)
	admin := userWithRole(t, e, models.RoleAdmin)
	sales := userWithRole(t, e, models.RoleSales)

	before := e.repo.UserByID(sales).Password
	got, err := e.UpdateUser(sales, UserInput{
		Name:  "Renamed Sales",
		Email: "sales@example.com",
		Role:  models.RoleSales,
	}, admin)
	require.NoError(t, err)
	require.Equal(t, "Renamed Sales", got.Name)
	require.Equal(t, before, e.repo.UserByID(sales).Password)
}

func TestDeleteUserInvalidatesLookup(t *testing.T) {
	e, _ := newTestEngine(t)
	admin := userWithRole(t, e, models.RoleAdmin)
	viewer := userWithRole(t, e, models.RoleViewer)

	require.NoError(t, e.DeleteUser(viewer, admin))
	require.False(t, e.UserExists(viewer))
	require.ErrorIs(t, e.DeleteUser(viewer, admin), ErrNotFound)
}

func TestSettingsAdminOnly(t *testing.T) {
	e, _ := newTestEngine(t)
	admin := userWithRole(t, e, models.RoleAdmin)
	sales := userWithRole(t, e, models.RoleSales)

	_, err := e.UpsertTaxSetting(models.TaxSetting{Name: "Standard", Rate: decimal.NewFromInt(20)}, sales)
	require.ErrorIs(t, err, ErrForbidden)

	created, err := e.UpsertTaxSetting(models.TaxSetting{Name: "Standard", Rate: decimal.NewFromInt(20), IsDefault: true}, admin)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	// A second default replaces the first.
	reduced, err := e.UpsertTaxSetting(models.TaxSetting{Name: "Reduced", Rate: decimal.NewFromInt(5), IsDefault: true}, admin)
	require.NoError(t, err)
	list, err := e.ListTaxSettings(admin)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, s := range list {
		require.Equal(t, s.ID == reduced.ID, s.IsDefault)
	}

	require.NoError(t, e.DeleteTaxSetting(created.ID, admin))
	require.ErrorIs(t, e.DeleteTaxSetting(created.ID, admin), ErrNotFound)
}

func TestSmtpSettingsHidePasswordAndSwapTransport(t *testing.T) {
	e, _ := newTestEngine(t)
	admin := userWithRole(t, e, models.RoleAdmin)

	created, err := e.UpsertSmtpSetting(models.SmtpSetting{
		Host: "smtp.example.com", Port: 587, Username: "mailer",
		Password: "hunter2", FromEmail: "billing@example.com", FromName: "Billing",
		IsActive: true,
	}, admin)
	require.NoError(t, err)
	require.Empty(t, created.Password)

	list, err := e.ListSmtpSettings(admin)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Empty(t, list[0].Password)

	// The engine now speaks real SMTP instead of the test transport.
	_, isRecording := e.mail.(*recordingTransport)
	require.False(t, isRecording)

	// Updating without a password keeps the stored one.
	created.Password = ""
	created.FromName = "Accounts"
	_, err = e.UpsertSmtpSetting(*created, admin)
	require.NoError(t, err)
	require.Equal(t, "hunter2", e.repo.SmtpSettings[0].Password)

	// Deleting the active setting falls back to loopback delivery.
	require.NoError(t, e.DeleteSmtpSetting(created.ID, admin))
	_, isLoopback := e.mail.(*mailer.Loopback)
	require.True(t, isLoopback)
}
