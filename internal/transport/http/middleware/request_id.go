package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"employeehub/internal/platform/requestctx"
)

// RequestID tags every request with an id, honoring one supplied by the
// caller so traces can span a proxy.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(requestctx.WithRequestID(r.Context(), id)))
	})
}
