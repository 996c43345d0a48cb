package services

import (
	"github.com/MitieSoft/salesdesk/internal/gate"
	"github.com/MitieSoft/salesdesk/internal/mailer"
	"github.com/MitieSoft/salesdesk/internal/models"
	"github.com/MitieSoft/salesdesk/internal/validation"
)

// Settings are ADMIN territory. Upserts with an empty id create a new
// entry; marking one default clears the flag on the others.

func (e *Engine) ListTaxSettings(actorID string) ([]models.TaxSetting, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionView, gate.ResourceSettings); err != nil {
		return nil, err
	}
	return append([]models.TaxSetting(nil), e.repo.TaxSettings...), nil
}

func (e *Engine) UpsertTaxSetting(in models.TaxSetting, actorID string) (*models.TaxSetting, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionManage, gate.ResourceSettings); err != nil {
		return nil, err
	}
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.NonNegative("rate", in.Rate, v)
	if !v.Empty() {
		return nil, violationErr(v)
	}
	if in.ID == "" {
		in.ID = e.newID()
		e.repo.TaxSettings = append(e.repo.TaxSettings, in)
	} else {
		found := false
		for i := range e.repo.TaxSettings {
			if e.repo.TaxSettings[i].ID == in.ID {
				e.repo.TaxSettings[i] = in
				found = true
				break
			}
		}
		if !found {
			return nil, ErrNotFound
		}
	}
	if in.IsDefault {
		for i := range e.repo.TaxSettings {
			if e.repo.TaxSettings[i].ID != in.ID {
				e.repo.TaxSettings[i].IsDefault = false
			}
		}
	}
	e.saveTaxSettings()
	return &in, nil
}

func (e *Engine) DeleteTaxSetting(id, actorID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionManage, gate.ResourceSettings); err != nil {
		return err
	}
	for i := range e.repo.TaxSettings {
		if e.repo.TaxSettings[i].ID == id {
			e.repo.TaxSettings = append(e.repo.TaxSettings[:i], e.repo.TaxSettings[i+1:]...)
			e.saveTaxSettings()
			return nil
		}
	}
	return ErrNotFound
}

func (e *Engine) ListDiscountSettings(actorID string) ([]models.DiscountSetting, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionView, gate.ResourceSettings); err != nil {
		return nil, err
	}
	return append([]models.DiscountSetting(nil), e.repo.DiscountSettings...), nil
}

func (e *Engine) UpsertDiscountSetting(in models.DiscountSetting, actorID string) (*models.DiscountSetting, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionManage, gate.ResourceSettings); err != nil {
		return nil, err
	}
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.OneOf("type", string(in.Type), v, string(models.DiscountPercentage), string(models.DiscountFixed))
	validation.NonNegative("value", in.Value, v)
	if !v.Empty() {
		return nil, violationErr(v)
	}
	if in.ID == "" {
		in.ID = e.newID()
		e.repo.DiscountSettings = append(e.repo.DiscountSettings, in)
	} else {
		found := false
		for i := range e.repo.DiscountSettings {
			if e.repo.DiscountSettings[i].ID == in.ID {
				e.repo.DiscountSettings[i] = in
				found = true
				break
			}
		}
		if !found {
			return nil, ErrNotFound
		}
	}
	if in.IsDefault {
		for i := range e.repo.DiscountSettings {
			if e.repo.DiscountSettings[i].ID != in.ID {
				e.repo.DiscountSettings[i].IsDefault = false
			}
		}
	}
	e.saveDiscountSettings()
	return &in, nil
}

func (e *Engine) DeleteDiscountSetting(id, actorID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionManage, gate.ResourceSettings); err != nil {
		return err
	}
	for i := range e.repo.DiscountSettings {
		if e.repo.DiscountSettings[i].ID == id {
			e.repo.DiscountSettings = append(e.repo.DiscountSettings[:i], e.repo.DiscountSettings[i+1:]...)
			e.saveDiscountSettings()
			return nil
		}
	}
	return ErrNotFound
}

func (e *Engine) ListSmtpSettings(actorID string) ([]models.SmtpSetting, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionView, gate.ResourceSettings); err != nil {
		return nil, err
	}
	out := make([]models.SmtpSetting, len(e.repo.SmtpSettings))
	for i, s := range e.repo.SmtpSettings {
		s.Password = ""
		out[i] = s
	}
	return out, nil
}

func (e *Engine) UpsertSmtpSetting(in models.SmtpSetting, actorID string) (*models.SmtpSetting, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionManage, gate.ResourceSettings); err != nil {
		return nil, err
	}
	v := validation.Violations{}
	validation.Required("host", in.Host, v)
	validation.Required("fromEmail", in.FromEmail, v)
	if in.Port <= 0 || in.Port > 65535 {
		v["port"] = "invalid_value"
	}
	if !v.Empty() {
		return nil, violationErr(v)
	}
	if in.ID == "" {
		in.ID = e.newID()
		e.repo.SmtpSettings = append(e.repo.SmtpSettings, in)
	} else {
		found := false
		for i := range e.repo.SmtpSettings {
			if e.repo.SmtpSettings[i].ID == in.ID {
				// Empty password on update keeps the stored one.
				if in.Password == "" {
					in.Password = e.repo.SmtpSettings[i].Password
				}
				e.repo.SmtpSettings[i] = in
				found = true
				break
			}
		}
		if !found {
			return nil, ErrNotFound
		}
	}
	// Only one transport can be live at a time.
	if in.IsActive {
		for i := range e.repo.SmtpSettings {
			if e.repo.SmtpSettings[i].ID != in.ID {
				e.repo.SmtpSettings[i].IsActive = false
			}
		}
	}
	e.saveSmtpSettings()
	e.refreshTransport()
	out := in
	out.Password = ""
	return &out, nil
}

func (e *Engine) DeleteSmtpSetting(id, actorID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionManage, gate.ResourceSettings); err != nil {
		return err
	}
	for i := range e.repo.SmtpSettings {
		if e.repo.SmtpSettings[i].ID == id {
			e.repo.SmtpSettings = append(e.repo.SmtpSettings[:i], e.repo.SmtpSettings[i+1:]...)
			e.saveSmtpSettings()
			e.refreshTransport()
			return nil
		}
	}
	return ErrNotFound
}

// refreshTransport swaps the mail transport to match the active SMTP
// setting, falling back to loopback delivery when none is active.
// Callers hold the engine lock.
func (e *Engine) refreshTransport() {
	for _, s := range e.repo.SmtpSettings {
		if s.IsActive {
			e.mail = mailer.NewSMTP(s)
			return
		}
	}
	e.mail = &mailer.Loopback{Log: e.log}
}
