package httpx

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestJSONWritesStatusAndContentType(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, 201, map[string]string{"id": "abc"})
	if w.Code != 201 {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	var got map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("body: %v", err)
	}
	if got["id"] != "abc" {
		t.Fatalf("body = %v", got)
	}
}

func TestJSONNilPayload(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, 200, nil)
	if w.Body.String() != "null" {
		t.Fatalf("body = %q, want null", w.Body.String())
	}
}

func TestJSONErrorOmitsEmptyDetails(t *testing.T) {
	w := httptest.NewRecorder()
	JSONError(w, 404, "not_found", nil)
	if w.Code != 404 {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if w.Body.String() != `{"error":"not_found"}` {
		t.Fatalf("body = %q", w.Body.String())
	}
}
