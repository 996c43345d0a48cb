package handlers

import (
	"errors"
	"net/http"

	"github.com/MitieSoft/salesdesk/internal/auth"
	"github.com/MitieSoft/salesdesk/internal/httpx"
	"github.com/MitieSoft/salesdesk/internal/services"
)

type AuthHandler struct {
	Engine *services.Engine
}

func NewAuthHandler(e *services.Engine) *AuthHandler {
	return &AuthHandler{Engine: e}
}

func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/auth/login", h.login)
	mux.HandleFunc("/api/auth/logout", h.logout)
	mux.Handle("/api/auth/me", auth.Middleware(auth.RequireAuth(http.HandlerFunc(h.me))))
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := h.Engine.Authenticate(req.Email, req.Password)
	if err != nil {
		// Same answer for unknown email and wrong password.
		if errors.Is(err, services.ErrNotFound) || errors.Is(err, services.ErrForbidden) {
			httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
			return
		}
		writeServiceError(w, err)
		return
	}
	auth.CreateSession(w, user.ID)
	httpx.JSON(w, http.StatusOK, user)
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	auth.ClearSession(w)
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	user, err := h.Engine.GetUser(uid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}
