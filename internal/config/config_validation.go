// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup. It runs after
// defaults are applied, so only values explicitly set to something unusable
// are rejected.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout < 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Storage.DB.DSN == "" || cfg.Storage.Files.VaultDir == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenDuration < 0 || cfg.App.TokenIssuer == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Crypto.KDFMemoryKiB < 8*uint32(cfg.Crypto.KDFThreads) {
		return fmt.Errorf("%w: memory must be at least 8 KiB per thread", ErrInvalidCryptoConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
