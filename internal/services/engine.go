package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/MitieSoft/salesdesk/internal/gate"
	"github.com/MitieSoft/salesdesk/internal/mailer"
	"github.com/MitieSoft/salesdesk/internal/store"
)

// Engine is the document lifecycle engine. It owns the Repository and is
// the single writer: every mutating operation runs to completion under
// one mutex, which also keeps the length-derived document numbering free
// of duplicates within a process.
type Engine struct {
	mu    sync.Mutex
	st    store.Store
	repo  *Repository
	gate  *gate.Gate
	mail  mailer.Transport
	log   *logrus.Logger
	now   func() time.Time
	newID func() string
}

func NewEngine(st store.Store, mail mailer.Transport, log *logrus.Logger) (*Engine, error) {
	repo, err := LoadRepository(st)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		st:    st,
		repo:  repo,
		gate:  gate.Default(),
		mail:  mail,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
	if err := e.seed(); err != nil {
		return nil, err
	}
	// A persisted active SMTP setting overrides the injected transport.
	for _, s := range e.repo.SmtpSettings {
		if s.IsActive {
			e.refreshTransport()
			break
		}
	}
	return e, nil
}

// authorize re-checks the actor's role in the core, independent of any
// UI-layer gating. An empty actorID is a system-originated call and is
// always allowed.
func (e *Engine) authorize(actorID string, action gate.Action, resource string) error {
	if actorID == "" {
		return nil
	}
	actor := e.repo.UserByID(actorID)
	if actor == nil {
		return ErrForbidden
	}
	if !e.gate.Can(actor.Role, action, resource) {
		return ErrForbidden
	}
	return nil
}

func (e *Engine) save(key string, v any) {
	if err := e.st.SaveCollection(key, v); err != nil {
		// Persistence failures are the collaborator's to surface; the
		// in-memory state stays authoritative for this process.
		e.log.WithError(err).WithField("collection", key).Error("save collection failed")
	}
}

func (e *Engine) saveQuotes()     { e.save(store.KeyQuotes, e.repo.Quotes) }
func (e *Engine) saveOrders()     { e.save(store.KeyOrders, e.repo.Orders) }
func (e *Engine) saveInvoices()   { e.save(store.KeyInvoices, e.repo.Invoices) }
func (e *Engine) saveClients()    { e.save(store.KeyClients, e.repo.Clients) }
func (e *Engine) saveProducts()   { e.save(store.KeyProducts, e.repo.Products) }
func (e *Engine) saveUsers()      { e.save(store.KeyUsers, e.repo.Users) }
func (e *Engine) saveActivities() { e.save(store.KeyActivities, e.repo.Activities) }
func (e *Engine) saveEmailLogs()  { e.save(store.KeyEmailLogs, e.repo.EmailLogs) }

func (e *Engine) saveTaxSettings()      { e.save(store.KeyTaxSettings, e.repo.TaxSettings) }
func (e *Engine) saveDiscountSettings() { e.save(store.KeyDiscountSettings, e.repo.DiscountSettings) }
func (e *Engine) saveSmtpSettings()     { e.save(store.KeySmtpSettings, e.repo.SmtpSettings) }

// UserExists supports the auth verifier: it reports whether a session's
// user id still refers to a real account.
func (e *Engine) UserExists(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.repo.UserByID(id) != nil
}
