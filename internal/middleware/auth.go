package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"inkwell/internal/auth"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// userIDKey is the context key for the authenticated user's id.
const userIDKey contextKey = "userID"

// RequireAuth verifies the bearer token on the request and injects the
// authenticated user id into the context. Requests without a token, or
// with one that fails verification, are rejected with 401 before any
// handler runs. Role checks are left to individual handlers.
func RequireAuth(tokens *auth.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w, "No token, authorization denied")
				return
			}

			userID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				unauthorized(w, "Token is not valid")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromCtx extracts the authenticated user id from the request
// context. ok is false when the request did not pass RequireAuth.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// unauthorized writes the API error envelope with a 401 status.
func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"success":false,"error":"` + msg + `"}`))
}
