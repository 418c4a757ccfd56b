package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"transfer-admin/internal/auth-service/core/domain/dto"
	"transfer-admin/internal/auth-service/core/ports"
	"transfer-admin/internal/auth-service/core/service"
	"transfer-admin/internal/mylogger"
)

// WaitTime bounds every store call made on behalf of a request, in seconds.
const WaitTime = 10

type AuthHandler struct {
	authService ports.IAuthService
	log         mylogger.Logger
}

func NewAuthHandler(as ports.IAuthService, log mylogger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: as,
		log:         log,
	}
}

func (ah *AuthHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.UserRegistrationRequest{}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		id, token, err := ah.authService.Register(ctx, req)
		if err != nil {
			if errors.Is(err, service.ErrUsernameTaken) || errors.Is(err, service.ErrEmailRegistered) {
				jsonError(w, http.StatusConflict, err)
				return
			}
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		jsonResponse(w, http.StatusCreated, dto.AuthResponse{UserId: id, Token: token})
	}
}

func (ah *AuthHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.UserAuthRequest{}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		token, err := ah.authService.Login(ctx, req)
		if err != nil {
			if errors.Is(err, service.ErrUnknownEmail) || errors.Is(err, service.ErrPasswordUnknown) {
				jsonError(w, http.StatusUnauthorized, err)
				return
			}
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		jsonResponse(w, http.StatusOK, dto.AuthResponse{Token: token})
	}
}

// jsonResponse writes the given data as a JSON-encoded HTTP response with status code 200 OK.
func jsonResponse(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// jsonError writes an error response as JSON with the specified HTTP status code.
func jsonError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
		"code":  code,
	})
}
