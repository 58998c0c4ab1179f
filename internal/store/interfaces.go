package store

import (
	"context"

	"github.com/MKhiriev/vault-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the user registry: the durable mapping from username to
// the salt and vault location of that user.
type UserRepository interface {
	// CreateUser inserts a new record. The record is committed when the call
	// returns. A taken username yields [ErrUserAlreadyExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByUsername returns the record for username or
	// [ErrUserNotFound].
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// VaultPathFor returns the vault file location of username or
	// [ErrUserNotFound].
	VaultPathFor(ctx context.Context, username string) (string, error)
}

// VaultFileStorage reads and atomically replaces encrypted vault files.
type VaultFileStorage interface {
	// NewVaultPath returns a fresh, unused location for a new vault file.
	NewVaultPath() string

	// Read returns the whole encrypted vault, [ErrVaultNotFound] when the
	// file does not exist, or an error wrapping [ErrVaultIO].
	Read(ctx context.Context, path string) ([]byte, error)

	// Write replaces the vault at path with blob. Either the new content is
	// fully in place when Write returns nil, or the previous file is left
	// untouched and an error wrapping [ErrVaultIO] is returned.
	Write(ctx context.Context, path string, blob []byte) error

	// Remove deletes the vault at path. Removing a missing file is not an
	// error.
	Remove(ctx context.Context, path string) error
}

// ErrorClassificator maps driver-specific database errors to an
// [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
