package results

import (
	"time"

	"github.com/quizcomp/backend/internal/models"
)

// Outcome is the gate's decision for a submission at a point in time.
type Outcome int

const (
	// OutcomePending means the disclosure delay has not elapsed yet.
	OutcomePending Outcome = iota
	// OutcomeVisible means the score may be disclosed.
	OutcomeVisible
)

// Disclose decides whether a submission's score is visible at the given time.
// The stored status is authoritative once available; while still pending the
// timestamps decide, so a reader racing the bulk recomputation gets the same
// answer it would after the flip.
func Disclose(sub *models.Submission, now time.Time) Outcome {
	if sub.Status == models.SubmissionAvailable {
		return OutcomeVisible
	}
	if !now.Before(sub.ResultsVisibleAt) {
		return OutcomeVisible
	}
	return OutcomePending
}
