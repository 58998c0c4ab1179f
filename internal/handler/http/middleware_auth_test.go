package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/vault-keeper/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeAuth(h *Handler, authHeader string, next http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/passwords/list", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rr, req)
	return rr
}

func TestAuth_TableTest(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantNext   bool
		wantMsg    string
	}{
		{name: "valid token", header: "Bearer signed.alice", wantStatus: http.StatusOK, wantNext: true},
		{name: "lowercase scheme", header: "bearer signed.alice", wantStatus: http.StatusOK, wantNext: true},
		{name: "no header", header: "", wantStatus: http.StatusUnauthorized, wantMsg: "missing or malformed authorization header"},
		{name: "scheme only", header: "Bearer", wantStatus: http.StatusUnauthorized, wantMsg: "missing or malformed authorization header"},
		{name: "basic scheme", header: "Basic YWxpY2U6eA==", wantStatus: http.StatusUnauthorized, wantMsg: "missing or malformed authorization header"},
		{name: "invalid token", header: "Bearer forged", wantStatus: http.StatusUnauthorized, wantMsg: "token is expired or invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&mockAuthService{parseTokenFn: acceptAnyToken}, nil)

			var nextCalled bool
			var gotUsername string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotUsername, _ = utils.GetUsernameFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			rr := executeAuth(h, tt.header, next)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
			if tt.wantNext {
				assert.Equal(t, "alice", gotUsername)
			} else {
				require.Equal(t, tt.wantMsg, decodeError(t, rr))
			}
		})
	}
}
