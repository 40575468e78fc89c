// Package requestctx carries per-request values across package boundaries
// without widening handler signatures.
package requestctx

import "context"

type ctxKey int

const requestIDKey ctxKey = iota

// WithRequestID stores the request id for the lifetime of the request.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID returns the request id, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	value, _ := ctx.Value(requestIDKey).(string)
	return value
}
