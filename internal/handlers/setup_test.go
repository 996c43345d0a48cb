package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/MitieSoft/salesdesk/internal/auth"
	"github.com/MitieSoft/salesdesk/internal/mailer"
	"github.com/MitieSoft/salesdesk/internal/services"
	"github.com/MitieSoft/salesdesk/internal/store"
)

func newTestEngine(t *testing.T) *services.Engine {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	e, err := services.NewEngine(store.NewMemory(), &mailer.Loopback{}, log)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return e
}

// loginID authenticates a seeded account and returns its id.
func loginID(t *testing.T, e *services.Engine, email, password string) string {
	t.Helper()
	u, err := e.Authenticate(email, password)
	if err != nil {
		t.Fatalf("authenticate %s: %v", email, err)
	}
	return u.ID
}

// asUser injects the user id the way auth.Middleware would.
func asUser(r *http.Request, userID string) *http.Request {
	return r.WithContext(auth.WithUserID(r.Context(), userID))
}

func do(h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h(w, r)
	return w
}
