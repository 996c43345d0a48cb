package handlers

import (
	"net/http"

	"github.com/MitieSoft/salesdesk/internal/auth"
	"github.com/MitieSoft/salesdesk/internal/httpx"
	"github.com/MitieSoft/salesdesk/internal/models"
	"github.com/MitieSoft/salesdesk/internal/services"
)

type ActivityHandler struct {
	Engine *services.Engine
}

func NewActivityHandler(e *services.Engine) *ActivityHandler {
	return &ActivityHandler{Engine: e}
}

func entityParams(w http.ResponseWriter, r *http.Request) (models.EntityType, string, bool) {
	et := models.EntityType(r.URL.Query().Get("entityType"))
	id := r.URL.Query().Get("entityId")
	if et == "" || id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_entity", nil)
		return "", "", false
	}
	return et, id, true
}

// List: GET /api/activity?entityType=QUOTE&entityId=...
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	et, id, ok := entityParams(w, r)
	if !ok {
		return
	}
	entries := h.Engine.ActivityFor(et, id)
	if entries == nil {
		entries = []models.Activity{}
	}
	httpx.JSON(w, http.StatusOK, entries)
}

// Emails: GET /api/emails?entityType=INVOICE&entityId=...
func (h *ActivityHandler) Emails(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	et, id, ok := entityParams(w, r)
	if !ok {
		return
	}
	logs := h.Engine.EmailLogsFor(et, id)
	if logs == nil {
		logs = []models.EmailLog{}
	}
	httpx.JSON(w, http.StatusOK, logs)
}

// SendEmail: POST /api/emails/send
func (h *ActivityHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	var in services.EmailInput
	if !decodeJSON(w, r, &in) {
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	entry, err := h.Engine.SendEmail(r.Context(), in, uid)
	if err != nil {
		// A failed delivery still produced a log entry worth returning.
		if entry != nil {
			httpx.JSON(w, http.StatusBadGateway, entry)
			return
		}
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, entry)
}
