package handlers

import (
	"net/http"

	"github.com/MitieSoft/salesdesk/internal/auth"
	"github.com/MitieSoft/salesdesk/internal/httpx"
	"github.com/MitieSoft/salesdesk/internal/models"
	"github.com/MitieSoft/salesdesk/internal/services"
)

type InvoiceHandler struct {
	Engine *services.Engine
}

func NewInvoiceHandler(e *services.Engine) *InvoiceHandler {
	return &InvoiceHandler{Engine: e}
}

// Invoices are only born through order conversion, so the collection
// endpoint is read-only.
func (h *InvoiceHandler) Collection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	httpx.JSON(w, http.StatusOK, h.Engine.ListInvoices())
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	invoice, err := h.Engine.GetInvoice(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, invoice)
}

func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var patch services.InvoicePatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	invoice, err := h.Engine.UpdateInvoice(id, patch, uid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, invoice)
}

func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	if err := h.Engine.DeleteInvoice(id, uid); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *InvoiceHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var req struct {
		Status models.InvoiceStatus `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	if err := h.Engine.TransitionInvoiceStatus(id, req.Status, uid); err != nil {
		writeServiceError(w, err)
		return
	}
	invoice, err := h.Engine.GetInvoice(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, invoice)
}
