package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/vault-keeper/internal/config"
	"github.com/MKhiriev/vault-keeper/internal/logger"
)

// Storages groups the persistence dependencies of the service layer.
type Storages struct {
	UserRepository   UserRepository
	VaultFileStorage VaultFileStorage

	db *DB
}

// NewStorages connects the user registry, applies migrations and prepares
// the vault directory.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectDB(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting user registry: %w", err)
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error migrating user registry")
		db.Close()
		return nil, err
	}

	files, err := NewVaultFileStorage(cfg.Files.VaultDir, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Storages{
		UserRepository:   NewUserRepository(db, log),
		VaultFileStorage: files,
		db:               db,
	}, nil
}

// Close releases the registry connection.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
