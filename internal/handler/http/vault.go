package http

import (
	"net/http"

	"github.com/MKhiriev/vault-keeper/internal/app"
	"github.com/MKhiriev/vault-keeper/internal/logger"
	"github.com/MKhiriev/vault-keeper/internal/utils"
	"github.com/MKhiriev/vault-keeper/models"
)

func (h *Handler) listCredentials(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok {
		writeError(w, r, ErrNoUsernameInContext, "list credentials")
		return
	}

	var req models.ListCredentialsRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "invalid JSON was passed")
		return
	}

	entries, err := h.services.VaultService.ListCredentials(ctx, username, req.Password)
	if err != nil {
		writeError(w, r, err, "list credentials failed")
		return
	}
	if entries == nil {
		entries = []models.CredentialEntry{}
	}

	logger.FromRequest(r).Debug().Str("username", username).Int("count", len(entries)).Msg("credentials listed")
	utils.WriteJSON(w, entries, http.StatusOK)
}

func (h *Handler) saveCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok {
		writeError(w, r, ErrNoUsernameInContext, "save credential")
		return
	}

	var req models.SaveCredentialRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "invalid JSON was passed")
		return
	}

	if err := h.services.VaultService.SaveCredential(ctx, username, req.Password, req.Entry()); err != nil {
		writeError(w, r, err, "save credential failed")
		return
	}

	logger.FromRequest(r).Info().Str("username", username).Str("site", req.Site).Msg("credential saved")
	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgCredentialSaved}, http.StatusOK)
}
