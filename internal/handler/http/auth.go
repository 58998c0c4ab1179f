package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/vault-keeper/internal/logger"
	"github.com/MKhiriev/vault-keeper/internal/utils"
	"github.com/MKhiriev/vault-keeper/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.AuthRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "invalid JSON was passed")
		return
	}

	user, err := h.services.AuthService.Register(ctx, req.Username, req.Password)
	if err != nil {
		writeError(w, r, err, "user registration failed")
		return
	}

	logger.FromRequest(r).Info().Str("username", user.Username).Msg("user registered")
	h.writeToken(w, r, user, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.AuthRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "invalid JSON was passed")
		return
	}

	user, err := h.services.AuthService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		writeError(w, r, err, "user login failed")
		return
	}

	logger.FromRequest(r).Debug().Str("username", user.Username).Msg("user successfully logged in")
	h.writeToken(w, r, user, http.StatusOK)
}

// writeToken issues a session token for user and returns it both in the
// Authorization header and in the body.
func (h *Handler) writeToken(w http.ResponseWriter, r *http.Request, user models.User, status int) {
	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		writeError(w, r, err, "creation of token failed")
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.TokenResponse{Token: token.SignedString}, status)
}
