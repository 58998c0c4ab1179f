package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/vault-keeper/internal/config"
	"github.com/MKhiriev/vault-keeper/internal/logger"
	"github.com/MKhiriev/vault-keeper/internal/store"
	"github.com/MKhiriev/vault-keeper/models"
)

func TestNewServices_EndToEndOverSQLite(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	cfg := config.StructuredConfig{
		App: testAppConfig(),
		Crypto: config.Crypto{
			KDFTime:      1,
			KDFMemoryKiB: 64,
			KDFThreads:   1,
		},
		Storage: config.Storage{
			DB:    config.DB{DSN: filepath.Join(dir, "registry.db")},
			Files: config.Files{VaultDir: filepath.Join(dir, "vaults")},
		},
	}

	storages, err := store.NewStorages(ctx, cfg.Storage, logger.Nop())
	require.NoError(t, err)
	defer storages.Close()

	services, err := NewServices(storages, cfg, logger.Nop())
	require.NoError(t, err)

	_, err = services.AuthService.Register(ctx, "alice", "CorrectHorse1")
	require.NoError(t, err)

	_, err = services.AuthService.Register(ctx, "alice", "CorrectHorse1")
	require.ErrorIs(t, err, store.ErrUserAlreadyExists)

	user, err := services.AuthService.Authenticate(ctx, "alice", "CorrectHorse1")
	require.NoError(t, err)

	token, err := services.AuthService.CreateToken(ctx, user)
	require.NoError(t, err)
	parsed, err := services.AuthService.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "alice", parsed.Username)

	require.NoError(t, services.VaultService.SaveCredential(ctx, "alice", "CorrectHorse1", models.CredentialEntry{
		Site: "example.com", Username: "alice@example.com", Password: "s3cret",
	}))

	entries, err := services.VaultService.ListCredentials(ctx, "alice", "CorrectHorse1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "s3cret", entries[0].Password)

	err = services.VaultService.SaveCredential(ctx, "alice", "CorrectHorse1", models.CredentialEntry{})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	assert.Equal(t, "test", services.AppInfoService.GetAppVersion(ctx))
}

func TestNewServices_RequiresVersion(t *testing.T) {
	cfg := config.StructuredConfig{App: testAppConfig()}
	cfg.App.Version = ""

	_, err := NewServices(&store.Storages{}, cfg, logger.Nop())
	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
}
