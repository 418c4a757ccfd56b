package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"transfer-admin/internal/auth-service/core/domain/dto"
	"transfer-admin/internal/auth-service/core/domain/models"
	"transfer-admin/internal/auth-service/core/ports"
	"transfer-admin/internal/config"
	"transfer-admin/internal/mylogger"

	"github.com/golang-jwt/jwt"
)

const tokenTTL = time.Hour * 24 * 7

type AuthService struct {
	cfg       *config.Config
	usersRepo ports.IUsersRepo
	mylog     mylogger.Logger
}

func NewAuthService(
	cfg *config.Config,
	usersRepo ports.IUsersRepo,
	mylog mylogger.Logger,
) ports.IAuthService {
	return &AuthService{
		cfg:       cfg,
		usersRepo: usersRepo,
		mylog:     mylog,
	}
}

// ======================= Register =======================
func (as *AuthService) Register(ctx context.Context, regReq dto.UserRegistrationRequest) (string, string, error) {
	mylog := as.mylog.Action("Register")

	if err := validateRegistration(regReq.Username, regReq.Email, regReq.Password, regReq.Role); err != nil {
		return "", "", err
	}

	hashedPassword, err := hashPassword(regReq.Password)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash password: %v", err)
	}
	user := models.User{
		Username:     regReq.Username,
		Email:        regReq.Email,
		PasswordHash: hashedPassword,
		Role:         regReq.Role,
	}

	id, err := as.usersRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			mylog.Warn("Failed to register, username already taken")
			return "", "", err
		}
		if errors.Is(err, ErrEmailRegistered) {
			mylog.Warn("Failed to register, email already registered")
			return "", "", err
		}
		mylog.Error("Failed to save user in db", err)
		return "", "", fmt.Errorf("cannot save user in db: %w", err)
	}

	tokenString, err := as.mintToken(id.String(), regReq.Email, regReq.Role)
	if err != nil {
		mylog.Error("error to create jwt token", err)
		return "", "", err
	}

	mylog.Info("User registered successfully", "role", regReq.Role)
	return id.String(), tokenString, nil
}

func (as *AuthService) Login(ctx context.Context, authReq dto.UserAuthRequest) (string, error) {
	mylog := as.mylog.Action("Login")

	if err := validateLogin(authReq.Email, authReq.Password); err != nil {
		return "", err
	}

	user, err := as.usersRepo.GetByEmail(ctx, authReq.Email)
	if err != nil {
		if errors.Is(err, ErrUnknownEmail) {
			mylog.Warn("Failed to login, unknown email")
			return "", err
		}
		mylog.Error("Failed to load user from db", err)
		return "", fmt.Errorf("cannot load user from db: %w", err)
	}

	if !checkPassword(user.PasswordHash, authReq.Password) {
		mylog.Debug("Failed to login, wrong password")
		return "", ErrPasswordUnknown
	}

	tokenString, err := as.mintToken(user.UserId.String(), authReq.Email, user.Role)
	if err != nil {
		mylog.Error("error to create jwt token", err)
		return "", err
	}

	mylog.Info("User login successfully")
	return tokenString, nil
}

func (as *AuthService) mintToken(userId, email, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userId,
		"email":   email,
		"role":    role,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	})
	return token.SignedString([]byte(as.cfg.App.JwtSecret))
}
