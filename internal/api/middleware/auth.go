package middleware

import (
	"context"
	"net/http"

	"github.com/pratik-mahalle/numera/internal/auth"
	"github.com/pratik-mahalle/numera/internal/pkg/errors"
	"github.com/pratik-mahalle/numera/internal/pkg/utils"
)

// ContextKey is a custom type for context keys
type ContextKey string

const (
	// UserIDKey is the context key for user ID
	UserIDKey ContextKey = "userID"
	// UserEmailKey is the context key for user email
	UserEmailKey ContextKey = "email"
)

// TokenVerifier resolves a bearer token to an identity
type TokenVerifier interface {
	Verify(token string) (*auth.Identity, error)
}

// RequireAuth rejects requests without a valid bearer token. The downstream
// handler only runs with a resolved identity in the context.
func RequireAuth(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := auth.ExtractBearer(r.Header.Get("Authorization"))
			if !ok {
				utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
				return
			}

			id, err := tokens.Verify(tokenStr)
			if err != nil {
				AddLogField(w, "auth_error", err.Error())
				utils.WriteError(w, errors.Unauthorized("Invalid or expired token"))
				return
			}

			next.ServeHTTP(w, withIdentity(w, r, id))
		})
	}
}

// OptionalAuth attaches the identity when a valid token is present and
// otherwise passes the request through untouched. It never fails a request.
func OptionalAuth(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokenStr, ok := auth.ExtractBearer(r.Header.Get("Authorization")); ok {
				if id, err := tokens.Verify(tokenStr); err == nil {
					r = withIdentity(w, r, id)
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func withIdentity(w http.ResponseWriter, r *http.Request, id *auth.Identity) *http.Request {
	ctx := context.WithValue(r.Context(), UserIDKey, id.UserID)
	ctx = context.WithValue(ctx, UserEmailKey, id.Email)

	// Add audit info to logs
	AddLogField(w, "user_id", id.UserID)
	AddLogField(w, "email", id.Email)

	return r.WithContext(ctx)
}

// GetUserID extracts the user ID from the request context
func GetUserID(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(UserIDKey).(string)
	return userID, ok && userID != ""
}

// GetUserEmail extracts the user email from the request context
func GetUserEmail(r *http.Request) (string, bool) {
	email, ok := r.Context().Value(UserEmailKey).(string)
	return email, ok
}
