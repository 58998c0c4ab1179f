package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/vault-keeper/internal/crypto"
	"github.com/MKhiriev/vault-keeper/internal/locker"
	"github.com/MKhiriev/vault-keeper/internal/logger"
	"github.com/MKhiriev/vault-keeper/internal/store"
	"github.com/MKhiriev/vault-keeper/models"
)

// vaultService implements VaultService on top of a vaultOpener and a
// per-user lock map.
type vaultService struct {
	opener *vaultOpener
	locks  *locker.KeyedLocker
	logger *logger.Logger
}

func NewVaultService(storages *store.Storages, deriver crypto.KeyDeriver, codec crypto.VaultCodec, locks *locker.KeyedLocker, logger *logger.Logger) (VaultService, error) {
	opener, err := newVaultOpener(storages.UserRepository, storages.VaultFileStorage, deriver, codec)
	if err != nil {
		return nil, err
	}

	return &vaultService{
		opener: opener,
		locks:  locks,
		logger: logger,
	}, nil
}

// ListCredentials decrypts the vault and returns a fresh flattened list of
// its entries, sorted by category then site.
//
// Reads take no lock: vault files are replaced by rename, so a reader sees
// either the previous or the next complete vault.
func (s *vaultService) ListCredentials(ctx context.Context, username, password string) ([]models.CredentialEntry, error) {
	opened, err := s.opener.open(ctx, username, password)
	if err != nil {
		return nil, err
	}
	defer opened.close()

	return opened.vault.List(), nil
}

// SaveCredential adds entry to the vault, replacing an entry for the same
// site in the same category. The whole decrypt, modify, encrypt and persist
// cycle runs under the user's lock. On any error nothing is persisted and
// the previous vault file stays in place.
func (s *vaultService) SaveCredential(ctx context.Context, username, password string, entry models.CredentialEntry) error {
	log := logger.FromContext(ctx)

	unlock, err := s.locks.Lock(ctx, username)
	if err != nil {
		log.Warn().Err(err).Str("username", username).Msg("waiting for vault lock aborted")
		return fmt.Errorf("vault lock: %w", err)
	}
	defer unlock()

	opened, err := s.opener.open(ctx, username, password)
	if err != nil {
		return err
	}
	defer opened.close()

	opened.vault.Put(entry.Category, entry.Site, entry.Username, entry.Password)

	if err = s.opener.seal(ctx, opened.user.VaultPath, opened.vault, opened.key); err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			log.Err(err).Str("username", username).Msg("persisting vault failed")
		}
		return err
	}

	log.Debug().Str("username", username).Str("site", entry.Site).Msg("credential saved")
	return nil
}

