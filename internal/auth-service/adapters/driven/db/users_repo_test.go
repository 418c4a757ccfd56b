package db

import (
	"context"
	"testing"
	"time"

	"transfer-admin/internal/auth-service/core/domain/models"
	"transfer-admin/internal/auth-service/core/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestCreate_ReturnsID(t *testing.T) {
	mock := newMock(t)
	repo := NewUsersRepo(mock)

	id := uuid.New()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("admin", "admin@example.com", []byte("hash"), models.RoleAdmin).
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(id))

	got, err := repo.Create(context.Background(), models.User{
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: []byte("hash"),
		Role:         models.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmail(t *testing.T) {
	mock := newMock(t)
	repo := NewUsersRepo(mock)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("admin", "admin@example.com", []byte("hash"), models.RoleAdmin).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation, ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), models.User{
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: []byte("hash"),
		Role:         models.RoleAdmin,
	})
	assert.ErrorIs(t, err, service.ErrEmailRegistered)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateUsername(t *testing.T) {
	mock := newMock(t)
	repo := NewUsersRepo(mock)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("admin", "admin@example.com", []byte("hash"), models.RoleAdmin).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation, ConstraintName: "users_username_key"})

	_, err := repo.Create(context.Background(), models.User{
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: []byte("hash"),
		Role:         models.RoleAdmin,
	})
	assert.ErrorIs(t, err, service.ErrUsernameTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmail_Found(t *testing.T) {
	mock := newMock(t)
	repo := NewUsersRepo(mock)

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery("SELECT(.+)FROM(.+)users(.+)email = \\$1").
		WithArgs("admin@example.com").
		WillReturnRows(pgxmock.NewRows([]string{
			"user_id", "username", "email", "password_hash", "role", "status", "created_at", "updated_at",
		}).AddRow(id, "admin", "admin@example.com", []byte("hash"), models.RoleAdmin, "ACTIVE", now, now))

	got, err := repo.GetByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, got.UserId)
	assert.Equal(t, models.RoleAdmin, got.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmail_Unknown(t *testing.T) {
	mock := newMock(t)
	repo := NewUsersRepo(mock)

	mock.ExpectQuery("SELECT(.+)FROM(.+)users").
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, service.ErrUnknownEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}
