package service

import (
	"fmt"

	"github.com/MKhiriev/vault-keeper/internal/config"
	"github.com/MKhiriev/vault-keeper/internal/crypto"
	"github.com/MKhiriev/vault-keeper/internal/locker"
	"github.com/MKhiriev/vault-keeper/internal/logger"
	"github.com/MKhiriev/vault-keeper/internal/store"
)

type Services struct {
	AuthService    AuthService
	VaultService   VaultService
	AppInfoService AppInfoService
}

// NewServices wires the key deriver, vault codec, per-user locks and the
// validation wrappers around the core services.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	deriver := crypto.NewKeyDeriver(crypto.Argon2Params{
		Time:      cfg.Crypto.KDFTime,
		MemoryKiB: cfg.Crypto.KDFMemoryKiB,
		Threads:   cfg.Crypto.KDFThreads,
	})
	codec := crypto.NewVaultCodec()

	authService, err := NewAuthService(storages, deriver, codec, cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating auth service: %w", err)
	}

	vaultService, err := NewVaultService(storages, deriver, codec, locker.NewKeyedLocker(), logger)
	if err != nil {
		return nil, fmt.Errorf("error creating vault service: %w", err)
	}

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &Services{
		AuthService:    NewAuthValidationService().Wrap(authService),
		VaultService:   NewVaultValidationService().Wrap(vaultService),
		AppInfoService: appInfoService,
	}, nil
}
