package models

import (
	"time"

	"github.com/google/uuid"
)

// Registration is a participant's enrollment record for the quiz competition.
// RegistrationID is the human-shareable credential (e.g. QZ-M3K9X2-AB1CD) the
// participant must retain for submission and result lookup.
type Registration struct {
	ID             uuid.UUID `json:"id"`
	RegistrationID string    `json:"registration_id"`
	FullName       string    `json:"full_name"`
	CreatedAt      time.Time `json:"created_at"`
}
