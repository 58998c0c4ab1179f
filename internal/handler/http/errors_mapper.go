package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/vault-keeper/internal/app"
	"github.com/MKhiriev/vault-keeper/internal/crypto"
	"github.com/MKhiriev/vault-keeper/internal/logger"
	"github.com/MKhiriev/vault-keeper/internal/service"
	"github.com/MKhiriev/vault-keeper/internal/store"
	"github.com/MKhiriev/vault-keeper/internal/utils"
	"github.com/MKhiriev/vault-keeper/models"
)

type errorStatus struct {
	status  int
	message string
}

// errorStatusMap is checked in order, first match wins. Every failure to
// open a vault collapses into one 401 answer so callers cannot tell an
// unknown user from a wrong password.
var errorStatusMap = []struct {
	target error
	errorStatus
}{
	{context.DeadlineExceeded, errorStatus{http.StatusServiceUnavailable, app.MsgRequestTimeout}},
	{context.Canceled, errorStatus{http.StatusServiceUnavailable, app.MsgRequestTimeout}},

	{service.ErrInvalidDataProvided, errorStatus{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{utils.ErrMalformedJSON, errorStatus{http.StatusBadRequest, app.MsgInvalidDataProvided}},

	{service.ErrInvalidCredentials, errorStatus{http.StatusUnauthorized, app.MsgInvalidCredentials}},
	{crypto.ErrIntegrity, errorStatus{http.StatusUnauthorized, app.MsgInvalidCredentials}},
	{store.ErrUserNotFound, errorStatus{http.StatusUnauthorized, app.MsgInvalidCredentials}},
	{service.ErrTokenIsExpiredOrInvalid, errorStatus{http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid}},
	{ErrEmptyAuthorizationHeader, errorStatus{http.StatusUnauthorized, app.MsgMissingAuthorization}},
	{ErrInvalidAuthorizationHeader, errorStatus{http.StatusUnauthorized, app.MsgMissingAuthorization}},
	{ErrNoUsernameInContext, errorStatus{http.StatusUnauthorized, app.MsgNoUsernameProvided}},

	{store.ErrUserAlreadyExists, errorStatus{http.StatusConflict, app.MsgUsernameAlreadyExists}},

	{store.ErrVaultNotFound, errorStatus{http.StatusInternalServerError, app.MsgVaultUnavailable}},
	{store.ErrVaultIO, errorStatus{http.StatusInternalServerError, app.MsgVaultUnavailable}},
}

func statusFromError(err error) errorStatus {
	for _, e := range errorStatusMap {
		if errors.Is(err, e.target) {
			return e.errorStatus
		}
	}
	return errorStatus{http.StatusInternalServerError, app.MsgInternalServerError}
}

// writeError logs err with the request logger and answers with the mapped
// status and a models.ErrorResponse body. The raw error text never reaches
// the client.
func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	st := statusFromError(err)

	log := logger.FromRequest(r)
	event := log.Warn()
	if st.status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).Int("status", st.status).Msg(msg)

	utils.WriteJSON(w, models.ErrorResponse{Error: st.message}, st.status)
}
