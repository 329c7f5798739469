package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tair/confusion-server/pkg/auth"
	"github.com/tair/confusion-server/pkg/logger"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated identity of a request
type Principal struct {
	UserID   string
	Username string
	Role     string
}

// IsAdmin reports whether the principal may perform admin operations
func (p Principal) IsAdmin() bool {
	return p.Role == auth.RoleAdmin
}

// WithPrincipal returns a copy of ctx carrying p
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the principal stored by AuthMiddleware
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// AuthMiddleware validates the bearer token and stores the principal
func AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			logger.Warn(r.Context()).Str("path", r.URL.Path).Msg("Missing authorization header")
			respondError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			logger.Warn(r.Context()).Msg("Invalid authorization header format")
			respondError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			logger.Warn(r.Context()).Err(err).Msg("Invalid token")
			respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := WithPrincipal(r.Context(), Principal{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		})

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// AdminMiddleware authenticates the request, then requires the admin role
func AdminMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		if !ok || !p.IsAdmin() {
			logger.Warn(r.Context()).
				Str("user_id", p.UserID).
				Str("role", p.Role).
				Msg("Admin access denied")
			respondError(w, http.StatusForbidden, "You are not authorized to perform this operation!")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
