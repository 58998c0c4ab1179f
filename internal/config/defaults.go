package config

import "time"

const (
	defaultHTTPAddress    = "localhost:5000"
	defaultRequestTimeout = 30 * time.Second
	defaultTokenIssuer    = "vault-keeper"
	defaultTokenDuration  = 5 * time.Minute
	defaultDSN            = "vault-keeper.db"
	defaultVaultDir       = "vaults"
	defaultKDFTime        = 1
	defaultKDFMemoryKiB   = 64 * 1024
	defaultKDFThreads     = 4
)

// applyDefaults fills zero-valued fields left after all sources are merged.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"*"}
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = defaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = defaultTokenDuration
	}
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = defaultDSN
	}
	if cfg.Storage.Files.VaultDir == "" {
		cfg.Storage.Files.VaultDir = defaultVaultDir
	}
	if cfg.Crypto.KDFTime == 0 {
		cfg.Crypto.KDFTime = defaultKDFTime
	}
	if cfg.Crypto.KDFMemoryKiB == 0 {
		cfg.Crypto.KDFMemoryKiB = defaultKDFMemoryKiB
	}
	if cfg.Crypto.KDFThreads == 0 {
		cfg.Crypto.KDFThreads = defaultKDFThreads
	}
}
