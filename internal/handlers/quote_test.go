package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MitieSoft/salesdesk/internal/httpx"
	"github.com/MitieSoft/salesdesk/internal/models"
)

const quoteBody = `{
	"clientId": "%CLIENT%",
	"discountType": "PERCENTAGE",
	"discountValue": "10",
	"vatRate": "20",
	"items": [
		{"description": "Web Development Service", "quantity": "2", "unitPrice": "5000", "vatRate": "20"},
		{"description": "Consulting Hours", "quantity": "20", "unitPrice": "150", "vatRate": "20"}
	]
}`

func createQuote(t *testing.T, h *QuoteHandler, uid, clientID string) models.Quote {
	t.Helper()
	body := strings.ReplaceAll(quoteBody, "%CLIENT%", clientID)
	req := asUser(httptest.NewRequest(http.MethodPost, "/api/quotes", strings.NewReader(body)), uid)
	w := do(h.Collection, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create quote: status %d body %s", w.Code, w.Body.String())
	}
	var q models.Quote
	if err := json.Unmarshal(w.Body.Bytes(), &q); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return q
}

func TestQuoteCreateAndList(t *testing.T) {
	e := newTestEngine(t)
	h := NewQuoteHandler(e)
	sales := loginID(t, e, "sales@example.com", "sales123")
	clientID := e.ListClients()[0].ID

	q := createQuote(t, h, sales, clientID)
	if q.QuoteNumber == "" || q.Status != models.QuoteDraft {
		t.Fatalf("unexpected quote: %+v", q)
	}
	if q.Total.String() != "16040" {
		t.Fatalf("total = %s, want 16040", q.Total)
	}

	w := do(h.Collection, asUser(httptest.NewRequest(http.MethodGet, "/api/quotes", nil), sales))
	if w.Code != http.StatusOK {
		t.Fatalf("list: status %d", w.Code)
	}
	var list []models.Quote
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 quote, got %d", len(list))
	}
}

func TestQuoteValidationMapsTo422(t *testing.T) {
	e := newTestEngine(t)
	h := NewQuoteHandler(e)
	sales := loginID(t, e, "sales@example.com", "sales123")

	req := asUser(httptest.NewRequest(http.MethodPost, "/api/quotes", strings.NewReader(`{"clientId":"nope","items":[]}`)), sales)
	w := do(h.Collection, req)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body %s", w.Code, w.Body.String())
	}
	var resp httpx.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error != "validation_failed" {
		t.Fatalf("error = %s", resp.Error)
	}
}

func TestQuoteStatusEndpointEnforcesGraph(t *testing.T) {
	e := newTestEngine(t)
	h := NewQuoteHandler(e)
	sales := loginID(t, e, "sales@example.com", "sales123")
	q := createQuote(t, h, sales, e.ListClients()[0].ID)

	// Illegal jump maps to 409.
	req := asUser(httptest.NewRequest(http.MethodPost, "/api/quotes/status?id="+q.ID, strings.NewReader(`{"status":"APPROVED"}`)), sales)
	if w := do(h.Status, req); w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}

	req = asUser(httptest.NewRequest(http.MethodPost, "/api/quotes/status?id="+q.ID, strings.NewReader(`{"status":"SENT"}`)), sales)
	w := do(h.Status, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	var got models.Quote
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Status != models.QuoteSent {
		t.Fatalf("quote status = %s, want SENT", got.Status)
	}
}

func TestQuoteConvertFlowThroughHandlers(t *testing.T) {
	e := newTestEngine(t)
	qh := NewQuoteHandler(e)
	oh := NewOrderHandler(e)
	sales := loginID(t, e, "sales@example.com", "sales123")
	q := createQuote(t, qh, sales, e.ListClients()[0].ID)

	for _, status := range []string{"SENT", "APPROVED"} {
		req := asUser(httptest.NewRequest(http.MethodPost, "/api/quotes/status?id="+q.ID, strings.NewReader(`{"status":"`+status+`"}`)), sales)
		if w := do(qh.Status, req); w.Code != http.StatusOK {
			t.Fatalf("transition to %s: %d", status, w.Code)
		}
	}

	w := do(qh.Convert, asUser(httptest.NewRequest(http.MethodPost, "/api/quotes/convert?id="+q.ID, nil), sales))
	if w.Code != http.StatusCreated {
		t.Fatalf("convert: %d body %s", w.Code, w.Body.String())
	}
	var order models.Order
	if err := json.Unmarshal(w.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if order.Status != models.OrderConfirmed || order.QuoteID != q.ID {
		t.Fatalf("unexpected order: %+v", order)
	}

	w = do(oh.Invoice, asUser(httptest.NewRequest(http.MethodPost, "/api/orders/invoice?id="+order.ID, strings.NewReader(`{"paymentTerms":"Net 15"}`)), sales))
	if w.Code != http.StatusCreated {
		t.Fatalf("invoice: %d body %s", w.Code, w.Body.String())
	}
	var inv models.Invoice
	if err := json.Unmarshal(w.Body.Bytes(), &inv); err != nil {
		t.Fatalf("decode invoice: %v", err)
	}
	if inv.Status != models.InvoiceDraft || inv.PaymentTerms != "Net 15" {
		t.Fatalf("unexpected invoice: %+v", inv)
	}
}

func TestQuoteForbiddenForViewer(t *testing.T) {
	e := newTestEngine(t)
	h := NewQuoteHandler(e)
	viewer := loginID(t, e, "viewer@example.com", "viewer123")

	body := strings.ReplaceAll(quoteBody, "%CLIENT%", e.ListClients()[0].ID)
	req := asUser(httptest.NewRequest(http.MethodPost, "/api/quotes", strings.NewReader(body)), viewer)
	if w := do(h.Collection, req); w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestQuoteGetMissingMapsTo404(t *testing.T) {
	e := newTestEngine(t)
	h := NewQuoteHandler(e)
	sales := loginID(t, e, "sales@example.com", "sales123")

	if w := do(h.Get, asUser(httptest.NewRequest(http.MethodGet, "/api/quotes/get?id=nope", nil), sales)); w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if w := do(h.Get, asUser(httptest.NewRequest(http.MethodGet, "/api/quotes/get", nil), sales)); w.Code != http.StatusBadRequest {
		t.Fatalf("missing id: status = %d, want 400", w.Code)
	}
}
