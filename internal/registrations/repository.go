package registrations

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizcomp/backend/internal/apperr"
	"github.com/quizcomp/backend/internal/models"
)

// Repository handles registration persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a registrations repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a registration. A duplicate registration_id surfaces as an
// already_exists error; callers treat it as fatal to the operation (no retry).
func (r *Repository) Create(ctx context.Context, reg *models.Registration) error {
	const q = `INSERT INTO registrations (id, registration_id, full_name)
		VALUES (gen_random_uuid(), $1, $2)
		RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, q, reg.RegistrationID, reg.FullName).
		Scan(&reg.ID, &reg.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperr.Wrap(apperr.CodeAlreadyExists, "registration id already exists", err)
		}
		return err
	}
	return nil
}

// GetByCredential returns the registration matching both registration_id and
// full_name exactly. This is the sole identity check in the system; a spelling
// mismatch yields not found by design.
func (r *Repository) GetByCredential(ctx context.Context, registrationID, fullName string) (*models.Registration, error) {
	const q = `SELECT id, registration_id, full_name, created_at
		FROM registrations WHERE registration_id = $1 AND full_name = $2`
	var reg models.Registration
	err := r.pool.QueryRow(ctx, q, registrationID, fullName).
		Scan(&reg.ID, &reg.RegistrationID, &reg.FullName, &reg.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.CodeNotFound, "registration not found")
		}
		return nil, err
	}
	return &reg, nil
}

// List returns all registrations, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Registration, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, registration_id, full_name, created_at
		FROM registrations ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Registration
	for rows.Next() {
		var reg models.Registration
		if err := rows.Scan(&reg.ID, &reg.RegistrationID, &reg.FullName, &reg.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, reg)
	}
	return list, rows.Err()
}
