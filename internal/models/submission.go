package models

import (
	"time"

	"github.com/google/uuid"
)

// Submission status values. A submission is created pending and flips to
// available once its results_visible_at has elapsed.
const (
	SubmissionPending   = "pending"
	SubmissionAvailable = "available"
)

// Submission is one completed quiz attempt with its computed score and
// disclosure timing. Answers maps question id to the selected option string.
// Score is computed exactly once at submission time and never recomputed.
type Submission struct {
	ID               uuid.UUID         `json:"id"`
	RegistrationID   string            `json:"registration_id"`
	FullName         string            `json:"full_name"`
	Answers          map[string]string `json:"answers,omitempty"`
	Score            int               `json:"score"`
	TotalQuestions   int               `json:"total_questions"`
	SubmittedAt      time.Time         `json:"submitted_at"`
	ResultsVisibleAt time.Time         `json:"results_visible_at"`
	Status           string            `json:"status"`
}
