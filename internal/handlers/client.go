package handlers

import (
	"net/http"

	"github.com/MitieSoft/salesdesk/internal/auth"
	"github.com/MitieSoft/salesdesk/internal/httpx"
	"github.com/MitieSoft/salesdesk/internal/services"
)

type ClientHandler struct {
	Engine *services.Engine
}

func NewClientHandler(e *services.Engine) *ClientHandler {
	return &ClientHandler{Engine: e}
}

func (h *ClientHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		httpx.JSON(w, http.StatusOK, h.Engine.ListClients())
	case http.MethodPost:
		var in services.ClientInput
		if !decodeJSON(w, r, &in) {
			return
		}
		uid, _ := auth.UserIDFromContext(r.Context())
		client, err := h.Engine.CreateClient(in, uid)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, client)
	default:
		methodNotAllowed(w, "GET,POST")
	}
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	client, err := h.Engine.GetClient(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var in services.ClientInput
	if !decodeJSON(w, r, &in) {
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	client, err := h.Engine.UpdateClient(id, in, uid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	if err := h.Engine.DeleteClient(id, uid); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
