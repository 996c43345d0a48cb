package handlers

import (
	"net/http"

	"github.com/MitieSoft/salesdesk/internal/auth"
	"github.com/MitieSoft/salesdesk/internal/httpx"
	"github.com/MitieSoft/salesdesk/internal/models"
	"github.com/MitieSoft/salesdesk/internal/services"
)

type SettingsHandler struct {
	Engine *services.Engine
}

func NewSettingsHandler(e *services.Engine) *SettingsHandler {
	return &SettingsHandler{Engine: e}
}

func (h *SettingsHandler) Tax(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	switch r.Method {
	case http.MethodGet:
		out, err := h.Engine.ListTaxSettings(uid)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, out)
	case http.MethodPost:
		var in models.TaxSetting
		if !decodeJSON(w, r, &in) {
			return
		}
		out, err := h.Engine.UpsertTaxSetting(in, uid)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, out)
	default:
		methodNotAllowed(w, "GET,POST")
	}
}

func (h *SettingsHandler) TaxDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	if err := h.Engine.DeleteTaxSetting(id, uid); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *SettingsHandler) Discount(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	switch r.Method {
	case http.MethodGet:
		out, err := h.Engine.ListDiscountSettings(uid)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, out)
	case http.MethodPost:
		var in models.DiscountSetting
		if !decodeJSON(w, r, &in) {
			return
		}
		out, err := h.Engine.UpsertDiscountSetting(in, uid)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, out)
	default:
		methodNotAllowed(w, "GET,POST")
	}
}

func (h *SettingsHandler) DiscountDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	if err := h.Engine.DeleteDiscountSetting(id, uid); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *SettingsHandler) Smtp(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	switch r.Method {
	case http.MethodGet:
		out, err := h.Engine.ListSmtpSettings(uid)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, out)
	case http.MethodPost:
		var in models.SmtpSetting
		if !decodeJSON(w, r, &in) {
			return
		}
		out, err := h.Engine.UpsertSmtpSetting(in, uid)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, out)
	default:
		methodNotAllowed(w, "GET,POST")
	}
}

func (h *SettingsHandler) SmtpDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	if err := h.Engine.DeleteSmtpSetting(id, uid); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
