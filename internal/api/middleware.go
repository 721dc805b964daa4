package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/kindredhq/kindred/internal/api/respond"
	"github.com/kindredhq/kindred/internal/services"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	tokenKey  contextKey = "sessionToken"
)

// BearerToken extracts the session token from the Authorization header.
func BearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("missing Authorization header")
	}

	// Expect "Bearer <token>" format
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errors.New("invalid Authorization header format, expected 'Bearer <token>'")
	}
	return parts[1], nil
}

// SessionMiddleware resolves the bearer token to a user and stores the user
// id and raw token on the request context. Any failure is a 401; ownership
// checks further down are 403s.
func SessionMiddleware(sessions *services.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := BearerToken(r)
			if err != nil {
				respond.WriteUnauthorized(w, err.Error())
				return
			}
			sess, err := sessions.Resolve(r.Context(), token)
			if err != nil {
				respond.WriteUnauthorized(w, "invalid or expired session")
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, sess.UserID)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated user id set by
// SessionMiddleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

func tokenFromContext(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(tokenKey).(string)
	return tok, ok
}
