package service

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/vault-keeper/internal/crypto"
	"github.com/MKhiriev/vault-keeper/internal/locker"
	"github.com/MKhiriev/vault-keeper/internal/logger"
	"github.com/MKhiriev/vault-keeper/internal/mock"
	"github.com/MKhiriev/vault-keeper/internal/store"
	"github.com/MKhiriev/vault-keeper/internal/vault"
	"github.com/MKhiriev/vault-keeper/models"
)

func TestVaultService_AliceScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, "alice", "CorrectHorse1")
	require.NoError(t, err)

	_, err = env.auth.Authenticate(ctx, "alice", "CorrectHorse1")
	require.NoError(t, err)

	_, err = env.auth.Authenticate(ctx, "alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	err = env.vault.SaveCredential(ctx, "alice", "CorrectHorse1", models.CredentialEntry{
		Site:     "example.com",
		Username: "alice@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)

	entries, err := env.vault.ListCredentials(ctx, "alice", "CorrectHorse1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.CredentialEntry{
		Category: vault.DefaultCategory,
		Site:     "example.com",
		Username: "alice@example.com",
		Password: "s3cret",
	}, entries[0])
}

func TestVaultService_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, "alice", "CorrectHorse1")
	require.NoError(t, err)

	_, err = env.vault.ListCredentials(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, crypto.ErrIntegrity)

	err = env.vault.SaveCredential(ctx, "alice", "wrong", models.CredentialEntry{Site: "a", Username: "u", Password: "p"})
	assert.ErrorIs(t, err, crypto.ErrIntegrity)

	_, err = env.vault.ListCredentials(ctx, "nobody", "CorrectHorse1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVaultService_CorruptedFile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.auth.Register(ctx, "alice", "CorrectHorse1")
	require.NoError(t, err)
	corruptFile(t, user.VaultPath)

	before, err := os.ReadFile(user.VaultPath)
	require.NoError(t, err)

	_, err = env.vault.ListCredentials(ctx, "alice", "CorrectHorse1")
	assert.ErrorIs(t, err, crypto.ErrIntegrity)

	err = env.vault.SaveCredential(ctx, "alice", "CorrectHorse1", models.CredentialEntry{Site: "a", Username: "u", Password: "p"})
	assert.ErrorIs(t, err, crypto.ErrIntegrity)

	after, err := os.ReadFile(user.VaultPath)
	require.NoError(t, err)
	assert.Equal(t, before, after, "a failed save must not touch the vault file")
}

func TestVaultService_LastWriteWins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, "alice", "pw")
	require.NoError(t, err)

	require.NoError(t, env.vault.SaveCredential(ctx, "alice", "pw", models.CredentialEntry{Site: "example.com", Username: "old", Password: "old"}))
	require.NoError(t, env.vault.SaveCredential(ctx, "alice", "pw", models.CredentialEntry{Site: "example.com", Username: "new", Password: "new"}))

	entries, err := env.vault.ListCredentials(ctx, "alice", "pw")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "new", entries[0].Username)
	assert.Equal(t, "new", entries[0].Password)
}

func TestVaultService_Categories(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, "alice", "pw")
	require.NoError(t, err)

	require.NoError(t, env.vault.SaveCredential(ctx, "alice", "pw", models.CredentialEntry{Category: "Work", Site: "example.com", Username: "w", Password: "w"}))
	require.NoError(t, env.vault.SaveCredential(ctx, "alice", "pw", models.CredentialEntry{Site: "example.com", Username: "d", Password: "d"}))

	entries, err := env.vault.ListCredentials(ctx, "alice", "pw")
	require.NoError(t, err)
	require.Len(t, entries, 2, "same site in different categories are different entries")
	assert.Equal(t, vault.DefaultCategory, entries[0].Category)
	assert.Equal(t, "Work", entries[1].Category)
}

func TestVaultService_ConcurrentSavesForDifferentSites(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, "alice", "pw")
	require.NoError(t, err)

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- env.vault.SaveCredential(ctx, "alice", "pw", models.CredentialEntry{
				Site:     fmt.Sprintf("site-%d.com", i),
				Username: "u",
				Password: "p",
			})
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	entries, err := env.vault.ListCredentials(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.Len(t, entries, n, "no save may be lost")
}

func TestVaultService_UsersAreIndependent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, "alice", "pw-a")
	require.NoError(t, err)
	_, err = env.auth.Register(ctx, "bob", "pw-b")
	require.NoError(t, err)

	require.NoError(t, env.vault.SaveCredential(ctx, "alice", "pw-a", models.CredentialEntry{Site: "a.com", Username: "a", Password: "a"}))

	entries, err := env.vault.ListCredentials(ctx, "bob", "pw-b")
	require.NoError(t, err)
	assert.Empty(t, entries)

	// alice's password does not open bob's vault
	_, err = env.vault.ListCredentials(ctx, "bob", "pw-a")
	assert.ErrorIs(t, err, crypto.ErrIntegrity)
}

func TestVaultService_SaveWaitsForLockUntilDeadline(t *testing.T) {
	dir := t.TempDir()
	files, err := store.NewVaultFileStorage(dir, logger.Nop())
	require.NoError(t, err)

	locks := locker.NewKeyedLocker()
	storages := &store.Storages{UserRepository: newMemUsers(), VaultFileStorage: files}
	svc, err := NewVaultService(storages, testDeriver(), crypto.NewVaultCodec(), locks, logger.Nop())
	require.NoError(t, err)

	unlock, err := locks.Lock(context.Background(), "alice")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err = svc.SaveCredential(ctx, "alice", "pw", models.CredentialEntry{Site: "a", Username: "u", Password: "p"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestVaultService_FailedPersistKeepsPreviousVault(t *testing.T) {
	ctrl := gomock.NewController(t)
	files := mock.NewMockVaultFileStorage(ctrl)
	users := newMemUsers()
	codec := crypto.NewVaultCodec()
	deriver := testDeriver()
	ctx := context.Background()

	salt, err := deriver.NewSalt()
	require.NoError(t, err)
	key, err := deriver.DeriveKey([]byte("pw"), salt)
	require.NoError(t, err)
	body, err := vault.New().Encode()
	require.NoError(t, err)
	blob, err := codec.Encrypt(body, key)
	require.NoError(t, err)

	_, err = users.CreateUser(ctx, models.User{Username: "alice", Salt: salt, VaultPath: "alice.vault"})
	require.NoError(t, err)

	files.EXPECT().Read(gomock.Any(), "alice.vault").Return(blob, nil)
	files.EXPECT().Write(gomock.Any(), "alice.vault", gomock.Any()).Return(store.ErrVaultIO)

	svc, err := NewVaultService(&store.Storages{UserRepository: users, VaultFileStorage: files},
		deriver, codec, locker.NewKeyedLocker(), logger.Nop())
	require.NoError(t, err)

	err = svc.SaveCredential(ctx, "alice", "pw", models.CredentialEntry{Site: "a", Username: "u", Password: "p"})
	assert.ErrorIs(t, err, store.ErrVaultIO)
}

func TestVaultService_KeyIsWipedAfterUse(t *testing.T) {
	ctrl := gomock.NewController(t)
	files := mock.NewMockVaultFileStorage(ctrl)
	deriver := mock.NewMockKeyDeriver(ctrl)
	users := newMemUsers()
	codec := crypto.NewVaultCodec()
	ctx := context.Background()

	salt := make([]byte, crypto.SaltSize)
	key := []byte("0123456789abcdef0123456789abcdef")
	body, err := vault.New().Encode()
	require.NoError(t, err)
	blob, err := codec.Encrypt(body, key)
	require.NoError(t, err)

	_, err = users.CreateUser(ctx, models.User{Username: "alice", Salt: salt, VaultPath: "alice.vault"})
	require.NoError(t, err)

	deriver.EXPECT().NewSalt().Return(salt, nil)
	deriver.EXPECT().DeriveKeyContext(gomock.Any(), gomock.Any(), salt).Return(key, nil)
	files.EXPECT().Read(gomock.Any(), "alice.vault").Return(blob, nil)

	svc, err := NewVaultService(&store.Storages{UserRepository: users, VaultFileStorage: files},
		deriver, codec, locker.NewKeyedLocker(), logger.Nop())
	require.NoError(t, err)

	_, err = svc.ListCredentials(ctx, "alice", "pw")
	require.NoError(t, err)

	assert.Equal(t, make([]byte, len(key)), key, "derived key must be zeroed")
}

func TestVaultService_KeyIsWipedOnIntegrityFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	files := mock.NewMockVaultFileStorage(ctrl)
	deriver := mock.NewMockKeyDeriver(ctrl)
	users := newMemUsers()
	ctx := context.Background()

	salt := make([]byte, crypto.SaltSize)
	key := []byte("0123456789abcdef0123456789abcdef")

	_, err := users.CreateUser(ctx, models.User{Username: "alice", Salt: salt, VaultPath: "alice.vault"})
	require.NoError(t, err)

	deriver.EXPECT().NewSalt().Return(salt, nil)
	deriver.EXPECT().DeriveKeyContext(gomock.Any(), gomock.Any(), salt).Return(key, nil)
	files.EXPECT().Read(gomock.Any(), "alice.vault").Return([]byte("VKV\x01garbage"), nil)

	svc, err := NewVaultService(&store.Storages{UserRepository: users, VaultFileStorage: files},
		deriver, crypto.NewVaultCodec(), locker.NewKeyedLocker(), logger.Nop())
	require.NoError(t, err)

	_, err = svc.ListCredentials(ctx, "alice", "pw")
	require.ErrorIs(t, err, crypto.ErrIntegrity)

	assert.Equal(t, make([]byte, len(key)), key, "derived key must be zeroed")
}
