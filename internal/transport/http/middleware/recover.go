package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"employeehub/internal/platform/requestctx"
	"employeehub/internal/transport/http/api"
)

// Recoverer converts a handler panic into a 500 response instead of tearing
// down the connection.
func Recoverer(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("panic recovered",
						zap.Any("panic", rec),
						zap.String("path", r.URL.Path),
						zap.String("requestId", requestctx.GetRequestID(r.Context())),
					)
					api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestctx.GetRequestID(r.Context()))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
