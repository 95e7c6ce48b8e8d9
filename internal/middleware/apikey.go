package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
)

// DefaultAPIKeyHeader is the header the gate inspects when no other name is
// configured.
const DefaultAPIKeyHeader = "X-Api-Key"

// Gate is a predicate over request headers: true allows the request through.
// Handlers behind a gate are unaware of it.
type Gate func(http.Header) bool

// AllowAll is the permissive default used when no API key is configured.
func AllowAll(http.Header) bool { return true }

// APIKeyGate returns a gate that requires header to equal key exactly.
func APIKeyGate(header, key string) Gate {
	return func(h http.Header) bool {
		got := h.Get(header)
		return got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(key)) == 1
	}
}

// RequireGate short-circuits denied requests with a 401 and the standard
// error envelope; allowed requests pass through unchanged.
func RequireGate(gate Gate, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !gate(r.Header) {
				logger.Warn("request denied: missing or invalid api key",
					slog.String("request_id", GetRequestID(r.Context())),
					slog.String("path", r.URL.Path),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{
					"error":   "unauthorized",
					"message": "missing or invalid api key",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LogGate only logs denied requests and always passes them through. Useful
// for rolling out a key requirement without breaking existing clients.
func LogGate(gate Gate, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !gate(r.Header) {
				logger.Info("request without valid api key",
					slog.String("request_id", GetRequestID(r.Context())),
					slog.String("path", r.URL.Path),
				)
			}
			next.ServeHTTP(w, r)
		})
	}
}
