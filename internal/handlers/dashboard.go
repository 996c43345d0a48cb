package handlers

import (
	"net/http"

	"github.com/MitieSoft/salesdesk/internal/httpx"
	"github.com/MitieSoft/salesdesk/internal/services"
)

type DashboardHandler struct {
	Engine *services.Engine
}

func NewDashboardHandler(e *services.Engine) *DashboardHandler {
	return &DashboardHandler{Engine: e}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	httpx.JSON(w, http.StatusOK, h.Engine.Dashboard())
}
