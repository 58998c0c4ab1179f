package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/vault-keeper/internal/config"
	"github.com/MKhiriev/vault-keeper/internal/logger"
	"github.com/MKhiriev/vault-keeper/internal/utils"
	"github.com/MKhiriev/vault-keeper/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient
	token  string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises the base URL from adapterCfg.HTTPAddress and configures the
// underlying HTTP client with it and the request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	return h.token
}

// Health implements [ServerAdapter] with GET /api/health.
func (h *httpServerAdapter) Health(ctx context.Context) (models.HealthResponse, error) {
	var health models.HealthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&health).
		Get("/api/health")
	if err != nil {
		return models.HealthResponse{}, fmt.Errorf("health request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.HealthResponse{}, err
	}

	return health, nil
}

// Register implements [ServerAdapter] with POST /api/user/register.
func (h *httpServerAdapter) Register(ctx context.Context, username, password string) (string, error) {
	return h.authenticate(ctx, "/api/user/register", username, password)
}

// Login implements [ServerAdapter] with POST /api/login.
func (h *httpServerAdapter) Login(ctx context.Context, username, password string) (string, error) {
	return h.authenticate(ctx, "/api/login", username, password)
}

// authenticate posts the credentials to path and stores the issued token.
// The Authorization header wins over the JSON body when both are present.
func (h *httpServerAdapter) authenticate(ctx context.Context, path, username, password string) (string, error) {
	var tokenResp models.TokenResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.AuthRequest{Username: username, Password: password}).
		SetResult(&tokenResp).
		Post(path)
	if err != nil {
		return "", fmt.Errorf("auth request %s: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	token := tokenResp.Token
	if header := resp.Header().Get("Authorization"); header != "" {
		token, err = utils.ParseBearerToken(header)
		if err != nil {
			return "", fmt.Errorf("parse bearer token: %w", err)
		}
	}
	if strings.TrimSpace(token) == "" {
		return "", ErrEmptyResponse
	}

	h.SetToken(token)
	h.logger.Debug().Str("path", path).Str("username", username).Msg("token received")
	return h.token, nil
}

// ListCredentials implements [ServerAdapter] with POST /api/passwords/list.
func (h *httpServerAdapter) ListCredentials(ctx context.Context, password string) ([]models.CredentialEntry, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}

	var entries []models.CredentialEntry
	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(models.ListCredentialsRequest{Password: password}).
		SetResult(&entries).
		Post("/api/passwords/list")
	if err != nil {
		return nil, fmt.Errorf("list request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return entries, nil
}

// SaveCredential implements [ServerAdapter] with POST /api/passwords.
func (h *httpServerAdapter) SaveCredential(ctx context.Context, password string, entry models.CredentialEntry) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(models.SaveCredentialRequest{
			Password:      password,
			Category:      entry.Category,
			Site:          entry.Site,
			EntryUsername: entry.Username,
			EntryPassword: entry.Password,
		}).
		Post("/api/passwords")
	if err != nil {
		return fmt.Errorf("save request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	if h.token == "" {
		return nil, ErrNoToken
	}
	return h.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+h.token), nil
}
