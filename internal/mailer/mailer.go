// Package mailer is the email transport collaborator. The engine only
// sees the Transport interface: a send either yields a provider message
// id or an error, and the engine records the outcome in the email log.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/MitieSoft/salesdesk/internal/models"
)

type Message struct {
	To      string
	CC      string
	Subject string
	Body    string
}

type Transport interface {
	Send(ctx context.Context, msg Message) (providerMessageID string, err error)
}

// SMTP sends through the configured SMTP relay using PLAIN auth.
type SMTP struct {
	cfg models.SmtpSetting
}

func NewSMTP(cfg models.SmtpSetting) *SMTP {
	return &SMTP{cfg: cfg}
}

func (s *SMTP) Send(_ context.Context, msg Message) (string, error) {
	if !s.cfg.IsActive {
		return "", fmt.Errorf("smtp transport is not active")
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	from := s.cfg.FromEmail
	rcpts := []string{msg.To}
	headers := []string{
		"From: " + s.cfg.FromName + " <" + from + ">",
		"To: " + msg.To,
	}
	if msg.CC != "" {
		headers = append(headers, "Cc: "+msg.CC)
		rcpts = append(rcpts, msg.CC)
	}
	id := uuid.NewString()
	headers = append(headers,
		"Subject: "+msg.Subject,
		"Message-ID: <"+id+"@"+s.cfg.Host+">",
		"Date: "+time.Now().Format(time.RFC1123Z),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
	)
	payload := strings.Join(headers, "\r\n") + "\r\n\r\n" + msg.Body
	var a smtp.Auth
	if s.cfg.Username != "" {
		a = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	if err := smtp.SendMail(addr, a, from, rcpts, []byte(payload)); err != nil {
		return "", fmt.Errorf("smtp send: %w", err)
	}
	return id, nil
}

// Loopback is the development transport: it logs the message and
// pretends delivery succeeded. Used whenever no active SMTP setting is
// configured.
type Loopback struct {
	Log *logrus.Logger
}

func (l *Loopback) Send(_ context.Context, msg Message) (string, error) {
	id := "loopback-" + uuid.NewString()
	if l.Log != nil {
		l.Log.WithFields(logrus.Fields{
			"to":      msg.To,
			"cc":      msg.CC,
			"subject": msg.Subject,
		}).Info("loopback email delivered")
	}
	return id, nil
}
