// Package middleware contains the HTTP middleware: request IDs, request
// logging, and the API-key gate composed in front of the /v1 routes.
package middleware

import (
	"context"
	"net/http"

	"github.com/rs/xid"
)

type ctxKey int

const requestIDKey ctxKey = 0

// RequestID assigns each request an xid and exposes it via the context and
// the X-Request-Id response header, so a client-reported failure can be
// matched to its log lines.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := xid.New().String()
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the request's id, or "" outside the middleware.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
