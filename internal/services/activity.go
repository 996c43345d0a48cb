package services

import "github.com/MitieSoft/salesdesk/internal/models"

// logActivity appends an audit record at the head of the log (the log is
// kept most-recent-first) and persists it. Callers hold the engine lock.
func (e *Engine) logActivity(entityType models.EntityType, entityID, action, userID string, metadata map[string]string) models.Activity {
	activity := models.Activity{
		ID:         e.newID(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		UserID:     userID,
		User:       userByID(e.repo.Users, userID),
		Timestamp:  e.now(),
		Metadata:   metadata,
	}
	e.repo.Activities = append([]models.Activity{activity}, e.repo.Activities...)
	e.saveActivities()
	return activity
}

// ActivityFor returns the audit trail for one entity, most recent first.
func (e *Engine) ActivityFor(entityType models.EntityType, entityID string) []models.Activity {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []models.Activity
	for _, a := range e.repo.Activities {
		if a.EntityType == entityType && a.EntityID == entityID {
			out = append(out, a)
		}
	}
	return out
}

// EmailLogsFor returns the outbound email history for one entity, most
// recent first.
func (e *Engine) EmailLogsFor(entityType models.EntityType, entityID string) []models.EmailLog {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []models.EmailLog
	for _, l := range e.repo.EmailLogs {
		if l.EntityType == entityType && l.EntityID == entityID {
			out = append(out, l)
		}
	}
	return out
}
