package handlers

import (
	"net/http"

	"github.com/MitieSoft/salesdesk/internal/auth"
	"github.com/MitieSoft/salesdesk/internal/httpx"
	"github.com/MitieSoft/salesdesk/internal/services"
)

type ProductHandler struct {
	Engine *services.Engine
}

func NewProductHandler(e *services.Engine) *ProductHandler {
	return &ProductHandler{Engine: e}
}

func (h *ProductHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		httpx.JSON(w, http.StatusOK, h.Engine.ListProducts())
	case http.MethodPost:
		var in services.ProductInput
		if !decodeJSON(w, r, &in) {
			return
		}
		uid, _ := auth.UserIDFromContext(r.Context())
		product, err := h.Engine.CreateProduct(in, uid)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, product)
	default:
		methodNotAllowed(w, "GET,POST")
	}
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	product, err := h.Engine.GetProduct(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var in services.ProductInput
	if !decodeJSON(w, r, &in) {
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	product, err := h.Engine.UpdateProduct(id, in, uid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	uid, _ := auth.UserIDFromContext(r.Context())
	if err := h.Engine.DeleteProduct(id, uid); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
