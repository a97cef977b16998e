package notifications

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizcomp/backend/internal/models"
)

// Repository handles notification persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a notifications repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a notification row.
func (r *Repository) Create(ctx context.Context, n *models.Notification) error {
	const q = `INSERT INTO notifications (id, type, message, registration_id)
		VALUES (gen_random_uuid(), $1, $2, $3)
		RETURNING id, is_read, created_at`
	return r.pool.QueryRow(ctx, q, n.Type, n.Message, n.RegistrationID).
		Scan(&n.ID, &n.IsRead, &n.CreatedAt)
}

// List returns all notifications, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Notification, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, type, message, registration_id, is_read, created_at
		FROM notifications ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Type, &n.Message, &n.RegistrationID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// MarkRead sets is_read for a notification.
func (r *Repository) MarkRead(ctx context.Context, id uuid.UUID) error {
	const q = `UPDATE notifications SET is_read = TRUE WHERE id = $1`
	_, err := r.pool.Exec(ctx, q, id)
	return err
}

// UnreadCount returns the number of unread notifications.
func (r *Repository) UnreadCount(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE is_read = FALSE`).Scan(&count)
	return count, err
}
