package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"transfer-admin/internal/auth-service/core/domain/models"
	"transfer-admin/internal/auth-service/core/ports"
	"transfer-admin/internal/auth-service/core/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type UsersRepo struct {
	db Querier
}

func NewUsersRepo(db Querier) ports.IUsersRepo {
	return &UsersRepo{db: db}
}

func (ur *UsersRepo) Create(ctx context.Context, user models.User) (uuid.UUID, error) {
	q := `INSERT INTO users (username, email, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING user_id`

	var id uuid.UUID
	if err := ur.db.QueryRow(ctx, q, user.Username, user.Email, user.PasswordHash, user.Role).Scan(&id); err != nil {
		return uuid.Nil, mapUniqueViolation(err)
	}
	return id, nil
}

func (ur *UsersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	q := `
	SELECT
		user_id, username, email, password_hash, role, status, created_at, updated_at
	FROM
		users
	WHERE
		email = $1
	`

	var u models.User
	err := ur.db.QueryRow(ctx, q, email).Scan(
		&u.UserId,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.Status,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, service.ErrUnknownEmail
		}
		return models.User{}, fmt.Errorf("get user by email: %w", err)
	}

	return u, nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		if strings.Contains(pgErr.ConstraintName, "email") {
			return service.ErrEmailRegistered
		}
		return service.ErrUsernameTaken
	}
	return fmt.Errorf("insert user: %w", err)
}
