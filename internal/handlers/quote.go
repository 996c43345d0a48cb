package handlers

import (
	"net/http"

	"github.com/MitieSoft/salesdesk/internal/auth"
	"github.com/MitieSoft/salesdesk/internal/httpx"
	"github.com/MitieSoft/salesdesk/internal/models"
	"github.com/MitieSoft/salesdesk/internal/services"
)

type QuoteHandler struct {
	Engine *services.Engine
}

func NewQuoteHandler(e *services.Engine) *QuoteHandler {
	return &QuoteHandler{Engine: e}
}

func (h *QuoteHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		httpx.JSON(w, http.StatusOK, h.Engine.ListQuotes())
	case http.MethodPost:
		h.create(w, r)
	default:
		methodNotAllowed(w, "GET,POST")
	}
}

func (h *QuoteHandler) create(w http.ResponseWriter, r *http.Request) {
	var in services.QuoteInput
	if !decodeJSON(w, r, &in) {
		return
	}
	in.CreatedByID, _ = auth.UserIDFromContext(r.Context())
	quote, err := h.Engine.CreateQuote(in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, quote)
}

func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	quote, err := h.Engine.GetQuote(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, quote)
}

func (h *QuoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var patch services.QuotePatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	quote, err := h.Engine.UpdateQuote(id, patch, uid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, quote)
}

func (h *QuoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	if err := h.Engine.DeleteQuote(id, uid); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Status: POST /api/quotes/status?id=... {"status":"SENT"}
func (h *QuoteHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var req struct {
		Status models.QuoteStatus `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	if err := h.Engine.TransitionQuoteStatus(id, req.Status, uid); err != nil {
		writeServiceError(w, err)
		return
	}
	quote, err := h.Engine.GetQuote(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, quote)
}

// Convert: POST /api/quotes/convert?id=... creates (or returns) the order.
func (h *QuoteHandler) Convert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	order, err := h.Engine.ConvertQuoteToOrder(id, uid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}
