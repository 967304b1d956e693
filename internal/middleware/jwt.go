package middleware

import (
	"context"
	"net/http"
	"strings"
)

type key string

const usernameKey key = "username"

// TokenVerifier parses a bearer token and returns its subject.
type TokenVerifier interface {
	SubjectOf(token string) (string, error)
}

// BearerAuth rejects requests without a valid bearer token and stores the
// token subject (the username) in the request context. Rejections carry no
// body so the response never discriminates between missing, malformed and
// expired tokens.
func BearerAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			subject, err := verifier.SubjectOf(tokenStr)
			if err != nil {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), usernameKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUsername returns the authenticated username stored by BearerAuth.
func GetUsername(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(usernameKey).(string)
	return v, ok
}
