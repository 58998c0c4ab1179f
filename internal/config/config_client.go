package config

import (
	"fmt"
	"time"
)

const defaultClientServerAddress = "http://localhost:5000"

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the vault-keeper server.
	// Env: CLIENT_SERVER_ADDRESS
	HTTPAddress string `env:"SERVER_ADDRESS"`
	// RequestTimeout is the default timeout for outbound client requests.
	// Env: CLIENT_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// ClientConfig is the top-level client configuration.
type ClientConfig struct {
	// Adapter contains the server address and request timeout.
	Adapter ClientAdapter `envPrefix:"CLIENT_"`
	// Token is a previously issued session token.
	// Env: VAULT_TOKEN
	Token string `env:"VAULT_TOKEN"`
}

// GetClientConfig loads the client configuration from environment
// variables, fills defaults and validates the result.
func GetClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("error get client config: %w", err)
	}

	if cfg.Adapter.HTTPAddress == "" {
		cfg.Adapter.HTTPAddress = defaultClientServerAddress
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = defaultRequestTimeout
	}

	return cfg, cfg.validate()
}
