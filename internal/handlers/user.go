package handlers

import (
	"net/http"

	"github.com/MitieSoft/salesdesk/internal/auth"
	"github.com/MitieSoft/salesdesk/internal/httpx"
	"github.com/MitieSoft/salesdesk/internal/services"
)

type UserHandler struct {
	Engine *services.Engine
}

func NewUserHandler(e *services.Engine) *UserHandler {
	return &UserHandler{Engine: e}
}

func (h *UserHandler) Collection(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	switch r.Method {
	case http.MethodGet:
		users, err := h.Engine.ListUsers(uid)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, users)
	case http.MethodPost:
		var in services.UserInput
		if !decodeJSON(w, r, &in) {
			return
		}
		user, err := h.Engine.CreateUser(in, uid)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, user)
	default:
		methodNotAllowed(w, "GET,POST")
	}
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var in services.UserInput
	if !decodeJSON(w, r, &in) {
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	user, err := h.Engine.UpdateUser(id, in, uid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	if err := h.Engine.DeleteUser(id, uid); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
