package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/vault-keeper/internal/logger"
	"github.com/MKhiriev/vault-keeper/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, validates it
// via [service.AuthService.ParseToken] and stores the token subject in the
// request context with [utils.WithUsername].
//
// Requests are rejected with 401 Unauthorized when the header is absent or
// malformed, or when the token is expired or invalid.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, ErrEmptyAuthorizationHeader, "auth rejected")
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err), "auth rejected")
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			writeError(w, r, err, "error occurred during parsing token")
			return
		}

		l := logger.FromRequest(r).With().Str("username", token.Username).Logger()
		ctx = l.WithContext(utils.WithUsername(ctx, token.Username))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
