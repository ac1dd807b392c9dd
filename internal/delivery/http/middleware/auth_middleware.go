package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"medicitas-api/internal/usecase"
	"medicitas-api/pkg/jwt"
	"medicitas-api/pkg/response"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "user_email"
	RoleKey      contextKey = "role"
	TokenIDKey   contextKey = "token_id"
)

// SessionValidator is the server-side liveness check the middleware runs
// after the token's signature and expiry have been verified.
type SessionValidator interface {
	ValidateSession(ctx context.Context, tokenID string) error
}

type AuthMiddleware struct {
	jwtService *jwt.JWTService
	sessions   SessionValidator
}

func NewAuthMiddleware(jwtService *jwt.JWTService, sessions SessionValidator) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService, sessions: sessions}
}

// Authenticate gates protected routes. Both checks must pass: the token
// itself, then the session row it is bound to. A revoked session rejects
// a cryptographically valid token.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(w, "Authorization header must be a Bearer token")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrExpired) {
				response.Unauthorized(w, "Token has expired")
				return
			}
			response.Unauthorized(w, "Invalid token")
			return
		}

		if err := m.sessions.ValidateSession(r.Context(), claims.TokenID); err != nil {
			if errors.Is(err, usecase.ErrSessionRevoked) {
				response.Unauthorized(w, "Session has been revoked")
				return
			}
			response.InternalServerError(w, "")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
		ctx = context.WithValue(ctx, RoleKey, claims.Role)
		ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return id, ok
}

func GetUserEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}

func GetRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}

func GetTokenID(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}
