package models

import (
	"time"

	"github.com/google/uuid"
)

// Question is a multiple-choice quiz question. Options are stored as a JSON
// array in presentation order; CorrectOption must equal one of them.
// CorrectOption is never serialized to participants.
type Question struct {
	ID            uuid.UUID `json:"id"`
	Prompt        string    `json:"prompt"`
	Options       []string  `json:"options"`
	CorrectOption string    `json:"-"`
	OrderIndex    int       `json:"order_index"`
	CreatedAt     time.Time `json:"created_at"`
}
