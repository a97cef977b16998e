package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification types.
const (
	NotificationNewRegistration = "new_registration"
	NotificationQuizSubmitted   = "quiz_submitted"
)

// Notification is an administrative audit-log entry emitted as a best-effort
// side effect of registration and submission events.
type Notification struct {
	ID             uuid.UUID `json:"id"`
	Type           string    `json:"type"`
	Message        string    `json:"message"`
	RegistrationID *string   `json:"registration_id,omitempty"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}
