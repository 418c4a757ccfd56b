package ports

import (
	"context"

	"transfer-admin/internal/auth-service/core/domain/dto"
	"transfer-admin/internal/auth-service/core/domain/models"

	"github.com/google/uuid"
)

type IUsersRepo interface {
	Create(ctx context.Context, user models.User) (uuid.UUID, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
}

type IAuthService interface {
	Register(ctx context.Context, req dto.UserRegistrationRequest) (string, string, error)
	Login(ctx context.Context, req dto.UserAuthRequest) (string, error)
}
