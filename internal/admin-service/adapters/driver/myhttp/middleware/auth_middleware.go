package middleware

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"transfer-admin/internal/admin-service/adapters/driver/myhttp/handle"

	"github.com/golang-jwt/jwt"
)

type AuthMiddleware struct {
	accessSecret string
}

func NewAuthMiddleware(accessSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		accessSecret: accessSecret,
	}
}

// Wrap authenticates the request and, when roles are given, authorizes it.
// The verified identity travels on as X-UserId and X-UserRole headers.
func (am *AuthMiddleware) Wrap(next http.Handler, roles ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := r.Header.Get("Authorization")
		if tokenString == "" {
			handle.JsonError(w, http.StatusUnauthorized, fmt.Errorf("empty JWT-Token"))
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")
		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(am.accessSecret), nil
		})
		if err != nil {
			handle.JsonError(w, http.StatusUnauthorized, fmt.Errorf("failed to parse JWT-Token"))
			return
		}

		if !token.Valid {
			handle.JsonError(w, http.StatusUnauthorized, fmt.Errorf("invalid JWT-Token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			handle.JsonError(w, http.StatusUnauthorized, fmt.Errorf("invalid claims"))
			return
		}

		userId, ok := claims["user_id"].(string)
		if !ok {
			handle.JsonError(w, http.StatusUnauthorized, fmt.Errorf("user id not found in token"))
			return
		}

		role, ok := claims["role"].(string)
		if !ok {
			handle.JsonError(w, http.StatusUnauthorized, fmt.Errorf("role not found in token"))
			return
		}

		if len(roles) > 0 && !slices.Contains(roles, role) {
			handle.JsonError(w, http.StatusForbidden, fmt.Errorf("role %s is not allowed to use this endpoint", role))
			return
		}

		r.Header.Set("X-UserId", userId)
		r.Header.Set("X-UserRole", role)

		next.ServeHTTP(w, r)
	})
}
