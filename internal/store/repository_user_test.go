package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sethvargo/go-retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/vault-keeper/internal/config"
	"github.com/MKhiriev/vault-keeper/internal/logger"
	"github.com/MKhiriev/vault-keeper/models"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		db: &DB{
			DB:                 db,
			dialect:            DialectPostgres,
			errorClassificator: NewPostgresErrorClassifier(),
			logger:             l,
		},
		logger: l,
		backoff: func() retry.Backoff {
			return retry.WithMaxRetries(2, retry.NewConstant(time.Millisecond))
		},
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

// ─────────────────────────────────────────────
// CreateUser
// ─────────────────────────────────────────────

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	user := models.User{Username: "alice", Salt: []byte("0123456789abcdef"), VaultPath: "vaults/a.vault"}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Username, user.Salt, user.VaultPath, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(7))

	created, err := repo.CreateUser(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.UserID)
	assert.Equal(t, "alice", created.Username)
	assert.False(t, created.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{Username: "alice"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), models.User{Username: "alice"})
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NotErrorIs(t, err, ErrUserAlreadyExists)
}

func TestCreateUser_RetryableErrorIsNotRetried(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.SerializationFailure))

	_, err := repo.CreateUser(context.Background(), models.User{Username: "alice"})
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ─────────────────────────────────────────────
// FindUserByUsername / VaultPathFor
// ─────────────────────────────────────────────

func TestFindUserByUsername_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	now := time.Now().UTC()
	salt := []byte("0123456789abcdef")
	mock.ExpectQuery("SELECT user_id, username, salt, vault_path, created_at FROM users").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(1, "alice", salt, "vaults/a.vault", now))

	found, err := repo.FindUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), found.UserID)
	assert.Equal(t, "alice", found.Username)
	assert.Equal(t, salt, found.Salt)
	assert.Equal(t, "vaults/a.vault", found.VaultPath)
	assert.Equal(t, now, found.CreatedAt)
}

func TestFindUserByUsername_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id").
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.FindUserByUsername(context.Background(), "bob")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFindUserByUsername_RetriesTransientErrors(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id").
		WithArgs("alice").
		WillReturnError(pgError(pgerrcode.DeadlockDetected))
	mock.ExpectQuery("SELECT user_id").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(1, "alice", []byte{1}, "p", time.Now()))

	found, err := repo.FindUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByUsername_GivesUpAfterRetries(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	for range 3 {
		mock.ExpectQuery("SELECT user_id").
			WillReturnError(pgError(pgerrcode.ConnectionFailure))
	}

	_, err := repo.FindUserByUsername(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByUsername_NonRetryableFailsFast(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id").
		WillReturnError(pgError(pgerrcode.UndefinedTable))

	_, err := repo.FindUserByUsername(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVaultPathFor(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT vault_path FROM users").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"vault_path"}).AddRow("vaults/a.vault"))
	mock.ExpectQuery("SELECT vault_path FROM users").
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows([]string{"vault_path"}))

	path, err := repo.VaultPathFor(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "vaults/a.vault", path)

	_, err = repo.VaultPathFor(context.Background(), "bob")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// ─────────────────────────────────────────────
// SQLite end to end
// ─────────────────────────────────────────────

func TestUserRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := config.DB{DSN: filepath.Join(t.TempDir(), "nested", "registry.db")}

	db, err := NewConnectDB(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	defer db.Close()
	require.Equal(t, DialectSQLite, db.Dialect())
	require.NoError(t, db.Migrate())

	repo := NewUserRepository(db, logger.Nop())

	salt := []byte("0123456789abcdef")
	created, err := repo.CreateUser(ctx, models.User{Username: "alice", Salt: salt, VaultPath: "vaults/a.vault"})
	require.NoError(t, err)
	assert.NotZero(t, created.UserID)

	_, err = repo.CreateUser(ctx, models.User{Username: "alice", Salt: salt, VaultPath: "vaults/b.vault"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	found, err := repo.FindUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, salt, found.Salt)
	assert.Equal(t, "vaults/a.vault", found.VaultPath)
	assert.WithinDuration(t, created.CreatedAt, found.CreatedAt, time.Second)

	_, err = repo.FindUserByUsername(ctx, "Alice")
	assert.ErrorIs(t, err, ErrUserNotFound, "usernames are case-sensitive")
}
