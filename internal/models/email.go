package models

import "time"

// EmailLog records one outbound email attempt, successful or not.
// Append-only, most-recent-first.
type EmailLog struct {
	ID                string      `json:"id"`
	EntityType        EntityType  `json:"entityType"`
	EntityID          string      `json:"entityId"`
	To                string      `json:"to"`
	CC                string      `json:"cc,omitempty"`
	Subject           string      `json:"subject"`
	Status            EmailStatus `json:"status"`
	SentAt            time.Time   `json:"sentAt"`
	ProviderMessageID string      `json:"providerMessageId,omitempty"`
	ErrorMessage      string      `json:"errorMessage,omitempty"`
}
