package results

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizcomp/backend/internal/apperr"
	"github.com/quizcomp/backend/internal/models"
)

// Repository handles submission lookups, the lazy status recomputation, and
// the admin maintenance operations over submissions.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a results repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// RefreshStatuses invokes update_result_status(): every pending submission
// whose delay has elapsed flips to available. Idempotent; calling it again
// with no time elapsed changes nothing.
func (r *Repository) RefreshStatuses(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `SELECT update_result_status()`)
	return err
}

// GetLatest returns the most recent submission (by submitted_at) matching the
// registration id and full name exactly.
func (r *Repository) GetLatest(ctx context.Context, registrationID, fullName string) (*models.Submission, error) {
	const q = `SELECT id, registration_id, full_name, score, total_questions, submitted_at, results_visible_at, status
		FROM submissions
		WHERE registration_id = $1 AND full_name = $2
		ORDER BY submitted_at DESC
		LIMIT 1`
	var sub models.Submission
	err := r.pool.QueryRow(ctx, q, registrationID, fullName).
		Scan(&sub.ID, &sub.RegistrationID, &sub.FullName, &sub.Score, &sub.TotalQuestions,
			&sub.SubmittedAt, &sub.ResultsVisibleAt, &sub.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.CodeNotFound, "no quiz submission found")
		}
		return nil, err
	}
	return &sub, nil
}

// List returns all submissions with their answers, newest first (admin view).
func (r *Repository) List(ctx context.Context) ([]models.Submission, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, registration_id, full_name, answers, score, total_questions, submitted_at, results_visible_at, status
		FROM submissions ORDER BY submitted_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Submission
	for rows.Next() {
		var sub models.Submission
		var answersRaw []byte
		if err := rows.Scan(&sub.ID, &sub.RegistrationID, &sub.FullName, &answersRaw, &sub.Score,
			&sub.TotalQuestions, &sub.SubmittedAt, &sub.ResultsVisibleAt, &sub.Status); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(answersRaw, &sub.Answers); err != nil {
			return nil, err
		}
		list = append(list, sub)
	}
	return list, rows.Err()
}

// Delete removes exactly one submission. Registrations and notifications are
// untouched; there is no cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM submissions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.New(apperr.CodeNotFound, "submission not found")
	}
	return nil
}
