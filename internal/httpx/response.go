// Package httpx holds the small JSON response helpers shared by all
// handlers.
package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the wire shape of every non-2xx body. Details
// carries field violations or transition context when the error has
// structure.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// JSON writes payload with the given status. Encoding happens before
// the header goes out, so a marshal failure can still produce a clean
// 500 instead of a truncated body.
func JSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// JSONError writes an ErrorResponse with the given code and optional
// details.
func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}
