package middleware

import (
	"context"
	"net/http"
	"strings"

	"employeehub/internal/auth"
	"employeehub/internal/domain/navigator"
)

type ctxKey string

const ctxKeySession ctxKey = "session"

// Auth resolves the bearer token into a live session and threads it through
// the request context. Requests without a valid token pass through
// unauthenticated; handlers that need a session check for one themselves.
func Auth(secret string, registry *navigator.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			sess, ok := registry.Get(claims.SessionID)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeySession, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetSession(ctx context.Context) (*navigator.Session, bool) {
	sess, ok := ctx.Value(ctxKeySession).(*navigator.Session)
	return sess, ok
}
