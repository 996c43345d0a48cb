package models

import "time"

// Common Activity actions. Action is free-form; these are the values the
// engine itself writes.
const (
	ActionCreated       = "CREATED"
	ActionUpdated       = "UPDATED"
	ActionDeleted       = "DELETED"
	ActionStatusChanged = "STATUS_CHANGED"
	ActionEmailSent     = "EMAIL_SENT"
)

// Activity is one immutable audit record of a mutation to a tracked
// entity. The log is append-only and kept most-recent-first. An empty
// UserID means the action was system-originated.
type Activity struct {
	ID         string            `json:"id"`
	EntityType EntityType        `json:"entityType"`
	EntityID   string            `json:"entityId"`
	Action     string            `json:"action"`
	UserID     string            `json:"userId,omitempty"`
	User       *User             `json:"user,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}
