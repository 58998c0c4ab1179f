package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/vault-keeper/internal/logger"
	"github.com/MKhiriev/vault-keeper/models"
)

// readRetries bounds how many times a read is repeated after an error the
// classifier marks as [Retryable].
const readRetries = 3

// userRepository is the SQL implementation of [UserRepository] over the
// "users" table. It works against both PostgreSQL and SQLite; the dialect of
// the wrapped [DB] selects placeholders and error classification.
type userRepository struct {
	logger  *logger.Logger
	db      *DB
	backoff func() retry.Backoff
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Str("dialect", string(db.dialect)).Msg("creating user repository")
	return &userRepository{
		db:      db,
		logger:  logger,
		backoff: defaultBackoff,
	}
}

func defaultBackoff() retry.Backoff {
	return retry.WithMaxRetries(readRetries, retry.NewExponential(50*time.Millisecond))
}

// CreateUser persists a new user record and returns it with UserID and
// CreatedAt filled in.
//
// Error handling:
//   - unique violation on username → [ErrUserAlreadyExists].
//   - any other driver-level error → wrapped [ErrExecutingQuery].
//
// Inserts are never retried: a retry after an ambiguous failure could report
// a duplicate for a row this very call created.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	createdAt := time.Now().UTC().Truncate(time.Microsecond)
	query, args, err := buildCreateUserQuery(r.db.placeholder(), user, createdAt)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	// create user in db
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&user.UserID); err != nil {
		if r.db.classify(err) == UniqueViolation {
			return models.User{}, ErrUserAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	user.CreatedAt = createdAt
	return user, nil
}

// FindUserByUsername retrieves the registry record for username.
//
// Error handling:
//   - no matching row → [ErrUserNotFound].
//   - any other driver-level error → wrapped [ErrExecutingQuery] after
//     retryable errors have been retried.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserByUsernameQuery(r.db.placeholder(), username)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByUsername").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var found models.User
	err = r.read(ctx, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, args...).
			Scan(&found.UserID, &found.Username, &found.Salt, &found.VaultPath, &found.CreatedAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByUsername").Msg("error selecting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return found, nil
}

// VaultPathFor returns the vault location stored for username.
func (r *userRepository) VaultPathFor(ctx context.Context, username string) (string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildVaultPathQuery(r.db.placeholder(), username)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.VaultPathFor").Msg("error building query")
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var path string
	err = r.read(ctx, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&path)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.VaultPathFor").Msg("error selecting vault path")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return path, nil
}

// read runs fn, repeating it while the classifier reports a retryable error.
func (r *userRepository) read(ctx context.Context, fn func(ctx context.Context) error) error {
	return retry.Do(ctx, r.backoff(), func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && r.db.classify(err) == Retryable {
			logger.FromContext(ctx).Warn().Err(err).Msg("retrying registry read")
			return retry.RetryableError(err)
		}
		return err
	})
}
