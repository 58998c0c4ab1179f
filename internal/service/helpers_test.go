package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/vault-keeper/internal/config"
	"github.com/MKhiriev/vault-keeper/internal/crypto"
	"github.com/MKhiriev/vault-keeper/internal/locker"
	"github.com/MKhiriev/vault-keeper/internal/logger"
	"github.com/MKhiriev/vault-keeper/internal/store"
	"github.com/MKhiriev/vault-keeper/models"
)

// memUsers is an in-memory UserRepository for scenario tests.
type memUsers struct {
	mu    sync.Mutex
	users map[string]models.User
	next  int64
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[string]models.User)}
}

func (m *memUsers) CreateUser(_ context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.Username]; ok {
		return models.User{}, store.ErrUserAlreadyExists
	}
	m.next++
	user.UserID = m.next
	user.CreatedAt = time.Now()
	m.users[user.Username] = user
	return user, nil
}

func (m *memUsers) FindUserByUsername(_ context.Context, username string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[username]
	if !ok {
		return models.User{}, store.ErrUserNotFound
	}
	return user, nil
}

func (m *memUsers) VaultPathFor(ctx context.Context, username string) (string, error) {
	user, err := m.FindUserByUsername(ctx, username)
	return user.VaultPath, err
}

func testDeriver() crypto.KeyDeriver {
	return crypto.NewKeyDeriver(crypto.Argon2Params{Time: 1, MemoryKiB: 64, Threads: 1})
}

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "vault-keeper-test",
		TokenDuration: time.Minute,
		Version:       "test",
	}
}

type testEnv struct {
	users    *memUsers
	storages *store.Storages
	auth     AuthService
	vault    VaultService
	dir      string
}

// newTestEnv wires the real services over in-memory users and vault files
// in a temp dir.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "vaults")
	files, err := store.NewVaultFileStorage(dir, logger.Nop())
	require.NoError(t, err)

	users := newMemUsers()
	storages := &store.Storages{UserRepository: users, VaultFileStorage: files}

	auth, err := NewAuthService(storages, testDeriver(), crypto.NewVaultCodec(), testAppConfig(), logger.Nop())
	require.NoError(t, err)
	vault, err := NewVaultService(storages, testDeriver(), crypto.NewVaultCodec(), locker.NewKeyedLocker(), logger.Nop())
	require.NoError(t, err)

	return &testEnv{users: users, storages: storages, auth: auth, vault: vault, dir: dir}
}
