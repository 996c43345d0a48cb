package handlers

import (
	"net/http"

	"github.com/MitieSoft/salesdesk/internal/auth"
	"github.com/MitieSoft/salesdesk/internal/httpx"
	"github.com/MitieSoft/salesdesk/internal/models"
	"github.com/MitieSoft/salesdesk/internal/services"
)

type OrderHandler struct {
	Engine *services.Engine
}

func NewOrderHandler(e *services.Engine) *OrderHandler {
	return &OrderHandler{Engine: e}
}

func (h *OrderHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		httpx.JSON(w, http.StatusOK, h.Engine.ListOrders())
	case http.MethodPost:
		h.create(w, r)
	default:
		methodNotAllowed(w, "GET,POST")
	}
}

func (h *OrderHandler) create(w http.ResponseWriter, r *http.Request) {
	var in services.OrderInput
	if !decodeJSON(w, r, &in) {
		return
	}
	in.CreatedByID, _ = auth.UserIDFromContext(r.Context())
	order, err := h.Engine.CreateOrder(in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	order, err := h.Engine.GetOrder(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var patch services.OrderPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	order, err := h.Engine.UpdateOrder(id, patch, uid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	if err := h.Engine.DeleteOrder(id, uid); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *OrderHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	if err := h.Engine.TransitionOrderStatus(id, req.Status, uid); err != nil {
		writeServiceError(w, err)
		return
	}
	order, err := h.Engine.GetOrder(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

// Invoice: POST /api/orders/invoice?id=... {"paymentTerms":"Net 30"}
func (h *OrderHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var req struct {
		PaymentTerms string `json:"paymentTerms"`
	}
	if r.ContentLength > 0 && !decodeJSON(w, r, &req) {
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	invoice, err := h.Engine.ConvertOrderToInvoice(id, uid, req.PaymentTerms)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, invoice)
}
