// Package middleware provides HTTP middleware for the API server.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/taskforge/tarefas-api/internal/api/shared"
	"github.com/taskforge/tarefas-api/internal/platform/logger"
	"github.com/taskforge/tarefas-api/internal/service/auth"
)

// AuthMiddleware verifies bearer tokens and attaches the caller identity to
// the request context. Every failure mode (missing header, malformed header,
// bad signature, expired token) produces the same 401 response so the reply
// never reveals which check failed.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given JWT service.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	if jwtService == nil {
		panic("jwtService cannot be nil")
	}
	return &AuthMiddleware{jwtService: jwtService}
}

// Authenticate is the middleware function that validates JWT tokens.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.DebugContext(r.Context(), "authentication failed: missing authorization header")
			respondUnauthorized(w, r)
			return
		}

		// Exactly "Bearer <token>"; anything else is rejected outright.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			log.DebugContext(r.Context(), "authentication failed: malformed authorization header")
			respondUnauthorized(w, r)
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), parts[1])
		if err != nil {
			log.DebugContext(r.Context(), "authentication failed: token rejected",
				slog.String("error", err.Error()))
			respondUnauthorized(w, r)
			return
		}

		ctx := shared.WithIdentity(r.Context(), shared.Identity{
			UserID: claims.UserID,
			Email:  claims.Email,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func respondUnauthorized(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid or expired token")
}

// GetUserIDFromContext retrieves the authenticated user ID from the context.
// Handlers behind Authenticate may rely on it being present.
func GetUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		return uuid.Nil, false
	}
	return identity.UserID, true
}
