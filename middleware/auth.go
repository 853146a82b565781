package middleware

import (
	"context"
	"net/http"
	"streak-pickem-go/models"
	"streak-pickem-go/services"
	"strings"
)

// UserContextKey is the key used to store user in request context
type UserContextKey string

const UserKey UserContextKey = "user"

// SessionCookieName is the cookie carrying the session token
const SessionCookieName = "session_token"

// AuthMiddleware resolves the session identity on each request. Every
// surface also works without a session; unauthenticated requests fall
// through to the shared anonymous storage partition.
type AuthMiddleware struct {
	sessions *services.SessionService
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(sessions *services.SessionService) *AuthMiddleware {
	return &AuthMiddleware{
		sessions: sessions,
	}
}

// RequireAuth rejects requests without a valid session
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.getUserFromRequest(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth adds the user to context when a valid session is present.
// Requests without one proceed with no user attached.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := m.getUserFromRequest(r)
		if user != nil {
			ctx := context.WithValue(r.Context(), UserKey, user)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// getUserFromRequest extracts and validates the session identity
func (m *AuthMiddleware) getUserFromRequest(r *http.Request) (*models.User, error) {
	// Try to get token from Authorization header
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return m.sessions.GetUserFromToken(parts[1])
		}
	}

	// Try to get token from cookie
	cookie, err := r.Cookie(SessionCookieName)
	if err == nil && cookie.Value != "" {
		return m.sessions.GetUserFromToken(cookie.Value)
	}

	return nil, http.ErrNoCookie
}

// GetUserFromContext retrieves the session user from request context.
// Returns nil for anonymous requests.
func GetUserFromContext(r *http.Request) *models.User {
	if user, ok := r.Context().Value(UserKey).(*models.User); ok {
		return user
	}
	return nil
}

// IsAuthenticated checks if the request has an authenticated user
func IsAuthenticated(r *http.Request) bool {
	return GetUserFromContext(r) != nil
}
