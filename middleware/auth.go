package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/HoneyKnight/foodgram-project-react/config"
	"github.com/HoneyKnight/foodgram-project-react/util"
)

type contextKey string

const userContextKey contextKey = "user_id"

// RequireAuth rejects requests without a valid Bearer token and stores
// the authenticated user id in the request context.
func RequireAuth(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := parseToken(r, cfg.JWTSecret)
			if !ok {
				http.Error(w, `{"error": "invalid or missing token"}`, http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), userContextKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth resolves the user id when a valid token is present and
// passes the request through anonymously otherwise. Listing endpoints use
// it so anonymous callers still get (unannotated) results.
func OptionalAuth(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, ok := parseToken(r, cfg.JWTSecret); ok {
				ctx := context.WithValue(r.Context(), userContextKey, claims.UserID)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func parseToken(r *http.Request, secret []byte) (*util.Claims, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, false
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, false
	}
	claims, err := util.ValidateJWT(tokenString, secret)
	if err != nil {
		return nil, false
	}
	return claims, true
}

// UserID extracts the authenticated user id stored by the middlewares.
func UserID(r *http.Request) (uint, bool) {
	id, ok := r.Context().Value(userContextKey).(uint)
	return id, ok
}
