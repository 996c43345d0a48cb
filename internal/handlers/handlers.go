// Package handlers exposes the engine over a JSON HTTP API. One handler
// struct per resource, registered on a plain ServeMux; ids travel as
// ?id= query parameters.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MitieSoft/salesdesk/internal/gate"
	"github.com/MitieSoft/salesdesk/internal/httpx"
	"github.com/MitieSoft/salesdesk/internal/services"
)

// writeServiceError maps engine errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "validation_failed", ve.Violations)
		return
	}
	var te *services.InvalidTransitionError
	if errors.As(err, &te) {
		httpx.JSONError(w, http.StatusConflict, "invalid_transition", map[string]string{
			"entity": te.Entity, "from": te.From, "to": te.To,
		})
		return
	}
	switch {
	case errors.Is(err, services.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, services.ErrValidation):
		httpx.JSONError(w, http.StatusUnprocessableEntity, "validation_failed", nil)
	case errors.Is(err, services.ErrInvalidTransition):
		httpx.JSONError(w, http.StatusConflict, "invalid_transition", nil)
	case errors.Is(err, services.ErrForbidden), errors.Is(err, gate.ErrUnauthorized):
		httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}

// decodeJSON reads the request body into v, answering 400 on garbage.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return false
	}
	return true
}

// requireID extracts the ?id= parameter, answering 400 when missing.
func requireID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return "", false
	}
	return id, true
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
}
