package auth_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/quizcomp/backend/internal/auth"
	"github.com/quizcomp/backend/internal/models"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := auth.NewJWTService("test-secret", 24)
	userID := uuid.New()

	token, err := svc.Generate(userID, "admin@example.com", string(models.RoleAdmin))
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	require.Equal(t, userID, claims.UserID)
	require.Equal(t, "admin@example.com", claims.Email)
	require.Equal(t, string(models.RoleAdmin), claims.Role)
}

func TestJWTService_WrongSecret(t *testing.T) {
	token, err := auth.NewJWTService("secret-a", 24).Generate(uuid.New(), "admin@example.com", string(models.RoleAdmin))
	require.NoError(t, err)

	_, err = auth.NewJWTService("secret-b", 24).Validate(token)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTService_Expired(t *testing.T) {
	svc := auth.NewJWTService("test-secret", -1)

	token, err := svc.Generate(uuid.New(), "admin@example.com", string(models.RoleAdmin))
	require.NoError(t, err)

	_, err = svc.Validate(token)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTService_Garbage(t *testing.T) {
	svc := auth.NewJWTService("test-secret", 24)

	_, err := svc.Validate("not-a-token")
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}
