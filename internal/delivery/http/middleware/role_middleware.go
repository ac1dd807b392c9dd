package middleware

import (
	"net/http"

	"medicitas-api/internal/domain/entity"
	"medicitas-api/pkg/response"
)

// RequireRole allows only the listed roles through. It must run after
// Authenticate, which puts the role into the request context.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRole(r.Context())
			if !ok {
				response.Unauthorized(w, "")
				return
			}
			if _, ok := allowed[role]; !ok {
				response.Forbidden(w, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}
