package service

import (
	"context"
	"testing"

	"transfer-admin/internal/auth-service/core/domain/dto"
	"transfer-admin/internal/auth-service/core/domain/models"
	"transfer-admin/internal/config"
	"transfer-admin/internal/mylogger"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsersRepo struct {
	users     map[string]models.User
	createErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: make(map[string]models.User)}
}

func (f *fakeUsersRepo) Create(_ context.Context, user models.User) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	if _, ok := f.users[user.Email]; ok {
		return uuid.Nil, ErrEmailRegistered
	}
	user.UserId = uuid.New()
	f.users[user.Email] = user
	return user.UserId, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return models.User{}, ErrUnknownEmail
	}
	return u, nil
}

func newAuthFixture(t *testing.T) (*fakeUsersRepo, *config.Config, *AuthService) {
	t.Helper()
	log, err := mylogger.New(mylogger.LevelError)
	require.NoError(t, err)

	cfg := &config.Config{App: &config.Appconfig{JwtSecret: "test-secret"}}
	repo := newFakeUsersRepo()
	svc := NewAuthService(cfg, repo, log).(*AuthService)
	return repo, cfg, svc
}

func TestRegister_MintsVerifiableToken(t *testing.T) {
	_, cfg, svc := newAuthFixture(t)

	id, tokenString, err := svc.Register(context.Background(), dto.UserRegistrationRequest{
		Username: "admin",
		Email:    "admin@example.com",
		Password: "s3cret",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.App.JwtSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, id, claims["user_id"])
	assert.Equal(t, "admin@example.com", claims["email"])
	assert.Equal(t, models.RoleAdmin, claims["role"])
}

func TestRegister_RejectsUnknownRole(t *testing.T) {
	repo, _, svc := newAuthFixture(t)

	_, _, err := svc.Register(context.Background(), dto.UserRegistrationRequest{
		Username: "admin",
		Email:    "admin@example.com",
		Password: "s3cret",
		Role:     "SUPERUSER",
	})
	assert.ErrorIs(t, err, ErrUnknownRole)
	assert.Empty(t, repo.users)
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	_, _, svc := newAuthFixture(t)

	_, _, err := svc.Register(context.Background(), dto.UserRegistrationRequest{
		Username: "admin",
		Email:    "admin@example.com",
		Password: "abc",
		Role:     models.RoleAdmin,
	})
	assert.Error(t, err)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	_, _, svc := newAuthFixture(t)

	reg := dto.UserRegistrationRequest{
		Username: "admin",
		Email:    "admin@example.com",
		Password: "s3cret",
		Role:     models.RoleAdmin,
	}
	_, _, err := svc.Register(context.Background(), reg)
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), reg)
	assert.ErrorIs(t, err, ErrEmailRegistered)
}

func TestLogin_RoundTrip(t *testing.T) {
	_, cfg, svc := newAuthFixture(t)

	_, _, err := svc.Register(context.Background(), dto.UserRegistrationRequest{
		Username: "support",
		Email:    "support@example.com",
		Password: "s3cret",
		Role:     models.RoleSupport,
	})
	require.NoError(t, err)

	tokenString, err := svc.Login(context.Background(), dto.UserAuthRequest{
		Email:    "support@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.App.JwtSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, models.RoleSupport, claims["role"])
}

func TestLogin_WrongPassword(t *testing.T) {
	_, _, svc := newAuthFixture(t)

	_, _, err := svc.Register(context.Background(), dto.UserRegistrationRequest{
		Username: "support",
		Email:    "support@example.com",
		Password: "s3cret",
		Role:     models.RoleSupport,
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.UserAuthRequest{
		Email:    "support@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrPasswordUnknown)
}

func TestLogin_UnknownEmail(t *testing.T) {
	_, _, svc := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.UserAuthRequest{
		Email:    "nobody@example.com",
		Password: "s3cret",
	})
	assert.ErrorIs(t, err, ErrUnknownEmail)
}
