package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/vault-keeper/internal/logger"
)

// withLogging writes one access log line per request. Only the method, path,
// status, size and duration are recorded; bodies are never logged because
// they carry passwords.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lw := &responseWriter{
			ResponseWriter: w,
		}

		next.ServeHTTP(lw, r)

		logger.FromRequest(r).Info().
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Int("status", lw.status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Send()
	})
}
