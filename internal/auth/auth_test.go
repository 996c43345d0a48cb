package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func sessionCookie(t *testing.T, userID string) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	CreateSession(w, userID)
	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	return cookies[0]
}

func TestSessionRoundTrip(t *testing.T) {
	c := sessionCookie(t, "user-42")
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(c)
	uid, ok := ParseSession(r)
	if !ok || uid != "user-42" {
		t.Fatalf("ParseSession = (%q, %v), want (user-42, true)", uid, ok)
	}
}

func TestTamperedSessionRejected(t *testing.T) {
	c := sessionCookie(t, "user-42")
	c.Value = strings.Replace(c.Value, "user-42", "user-43", 1)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(c)
	if _, ok := ParseSession(r); ok {
		t.Fatal("tampered cookie should not validate")
	}
}

func TestMiddlewareInjectsUserID(t *testing.T) {
	var got string
	h := Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, _ = UserIDFromContext(r.Context())
	}))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(sessionCookie(t, "user-7"))
	h.ServeHTTP(httptest.NewRecorder(), r)
	if got != "user-7" {
		t.Fatalf("context user id = %q, want user-7", got)
	}
}

func TestRequireAuthWithoutSession(t *testing.T) {
	h := Middleware(RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not run")
	})))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireAuthVerifierRejectsDeletedUser(t *testing.T) {
	SetUserVerifier(func(_ context.Context, uid string) bool { return uid == "alive" })
	defer SetUserVerifier(nil)

	h := Middleware(RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(sessionCookie(t, "gone"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("deleted user: status = %d, want 401", w.Code)
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(sessionCookie(t, "alive"))
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("live user: status = %d, want 200", w.Code)
	}
}
