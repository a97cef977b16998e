package quiz

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizcomp/backend/internal/apperr"
	"github.com/quizcomp/backend/internal/models"
)

// Repository handles question reads and submission inserts.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a quiz repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListQuestions returns all questions ordered by order_index ascending. An
// empty result is valid (no questions configured); a query failure is an
// unavailable error.
func (r *Repository) ListQuestions(ctx context.Context) ([]models.Question, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, prompt, options, correct_option, order_index, created_at
		FROM questions ORDER BY order_index ASC`)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeUnavailable, "failed to load questions", err)
	}
	defer rows.Close()
	var list []models.Question
	for rows.Next() {
		var q models.Question
		var optionsRaw []byte
		if err := rows.Scan(&q.ID, &q.Prompt, &optionsRaw, &q.CorrectOption, &q.OrderIndex, &q.CreatedAt); err != nil {
			return nil, apperr.Wrap(apperr.CodeUnavailable, "failed to load questions", err)
		}
		if err := json.Unmarshal(optionsRaw, &q.Options); err != nil {
			return nil, fmt.Errorf("decode options for question %s: %w", q.ID, err)
		}
		list = append(list, q)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.CodeUnavailable, "failed to load questions", err)
	}
	return list, nil
}

// CreateQuestion inserts a question (admin authoring).
func (r *Repository) CreateQuestion(ctx context.Context, q *models.Question) error {
	optionsRaw, err := json.Marshal(q.Options)
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}
	const query = `INSERT INTO questions (id, prompt, options, correct_option, order_index)
		VALUES (gen_random_uuid(), $1, $2, $3, $4)
		RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query, q.Prompt, optionsRaw, q.CorrectOption, q.OrderIndex).
		Scan(&q.ID, &q.CreatedAt)
}

// CreateSubmission inserts a finalized submission. Either the whole row lands
// (score, timing, status) or nothing does.
func (r *Repository) CreateSubmission(ctx context.Context, sub *models.Submission) error {
	answersRaw, err := json.Marshal(sub.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	const query = `INSERT INTO submissions
		(id, registration_id, full_name, answers, score, total_questions, submitted_at, results_visible_at, status)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err = r.pool.QueryRow(ctx, query,
		sub.RegistrationID, sub.FullName, answersRaw, sub.Score, sub.TotalQuestions,
		sub.SubmittedAt, sub.ResultsVisibleAt, sub.Status).
		Scan(&sub.ID)
	if err != nil {
		return apperr.Wrap(apperr.CodeUnavailable, "failed to record submission", err)
	}
	return nil
}
