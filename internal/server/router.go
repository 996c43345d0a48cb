// Package server wires the handlers onto a ServeMux and applies the
// session, logging and recovery middleware.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/MitieSoft/salesdesk/internal/auth"
	"github.com/MitieSoft/salesdesk/internal/handlers"
	"github.com/MitieSoft/salesdesk/internal/httpx"
	"github.com/MitieSoft/salesdesk/internal/services"
	"github.com/MitieSoft/salesdesk/internal/store"
)

// New constructs the root http.Handler.
func New(engine *services.Engine, st store.Store, log *logrus.Logger) http.Handler {
	mux := http.NewServeMux()

	// Sessions for deleted accounts must stop working immediately.
	auth.SetUserVerifier(func(_ context.Context, uid string) bool {
		return engine.UserExists(uid)
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if p, ok := st.(interface{ Ping() error }); ok {
			if err := p.Ping(); err != nil {
				httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
				return
			}
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	handlers.NewAuthHandler(engine).Register(mux)

	protected := func(h http.HandlerFunc) http.Handler {
		return auth.Middleware(auth.RequireAuth(h))
	}

	qh := handlers.NewQuoteHandler(engine)
	mux.Handle("/api/quotes", protected(qh.Collection))
	mux.Handle("/api/quotes/get", protected(qh.Get))
	mux.Handle("/api/quotes/update", protected(qh.Update))
	mux.Handle("/api/quotes/delete", protected(qh.Delete))
	mux.Handle("/api/quotes/status", protected(qh.Status))
	mux.Handle("/api/quotes/convert", protected(qh.Convert))

	oh := handlers.NewOrderHandler(engine)
	mux.Handle("/api/orders", protected(oh.Collection))
	mux.Handle("/api/orders/get", protected(oh.Get))
	mux.Handle("/api/orders/update", protected(oh.Update))
	mux.Handle("/api/orders/delete", protected(oh.Delete))
	mux.Handle("/api/orders/status", protected(oh.Status))
	mux.Handle("/api/orders/invoice", protected(oh.Invoice))

	ih := handlers.NewInvoiceHandler(engine)
	mux.Handle("/api/invoices", protected(ih.Collection))
	mux.Handle("/api/invoices/get", protected(ih.Get))
	mux.Handle("/api/invoices/update", protected(ih.Update))
	mux.Handle("/api/invoices/delete", protected(ih.Delete))
	mux.Handle("/api/invoices/status", protected(ih.Status))

	ch := handlers.NewClientHandler(engine)
	mux.Handle("/api/clients", protected(ch.Collection))
	mux.Handle("/api/clients/get", protected(ch.Get))
	mux.Handle("/api/clients/update", protected(ch.Update))
	mux.Handle("/api/clients/delete", protected(ch.Delete))

	ph := handlers.NewProductHandler(engine)
	mux.Handle("/api/products", protected(ph.Collection))
	mux.Handle("/api/products/get", protected(ph.Get))
	mux.Handle("/api/products/update", protected(ph.Update))
	mux.Handle("/api/products/delete", protected(ph.Delete))

	uh := handlers.NewUserHandler(engine)
	mux.Handle("/api/users", protected(uh.Collection))
	mux.Handle("/api/users/update", protected(uh.Update))
	mux.Handle("/api/users/delete", protected(uh.Delete))

	ah := handlers.NewActivityHandler(engine)
	mux.Handle("/api/activity", protected(ah.List))
	mux.Handle("/api/emails", protected(ah.Emails))
	mux.Handle("/api/emails/send", protected(ah.SendEmail))

	sh := handlers.NewSettingsHandler(engine)
	mux.Handle("/api/settings/tax", protected(sh.Tax))
	mux.Handle("/api/settings/tax/delete", protected(sh.TaxDelete))
	mux.Handle("/api/settings/discounts", protected(sh.Discount))
	mux.Handle("/api/settings/discounts/delete", protected(sh.DiscountDelete))
	mux.Handle("/api/settings/smtp", protected(sh.Smtp))
	mux.Handle("/api/settings/smtp/delete", protected(sh.SmtpDelete))

	dh := handlers.NewDashboardHandler(engine)
	mux.Handle("/api/dashboard", protected(dh.Stats))

	return withRecover(withLogging(mux, log), log)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func withLogging(next http.Handler, log *logrus.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

func withRecover(next http.Handler, log *logrus.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.WithField("panic", rec).Error("handler panic")
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
