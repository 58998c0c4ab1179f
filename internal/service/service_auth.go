package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/vault-keeper/internal/config"
	"github.com/MKhiriev/vault-keeper/internal/crypto"
	"github.com/MKhiriev/vault-keeper/internal/logger"
	"github.com/MKhiriev/vault-keeper/internal/store"
	"github.com/MKhiriev/vault-keeper/internal/utils"
	"github.com/MKhiriev/vault-keeper/internal/vault"
	"github.com/MKhiriev/vault-keeper/models"
)

// authService is the concrete implementation of AuthService.
//
// No password hash is stored anywhere: a password is correct exactly when
// the user's vault decrypts with the key derived from it.
type authService struct {
	opener *vaultOpener

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService over the registry and vault
// files in storages, populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(storages *store.Storages, deriver crypto.KeyDeriver, codec crypto.VaultCodec, cfg config.App, logger *logger.Logger) (AuthService, error) {
	opener, err := newVaultOpener(storages.UserRepository, storages.VaultFileStorage, deriver, codec)
	if err != nil {
		return nil, err
	}

	return &authService{
		opener:        opener,
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}, nil
}

// Register creates a new vault owner.
//
// Steps: new salt, key derivation, encryption of an empty vault, vault file
// write, registry insert. If the insert fails the fresh vault file is
// removed again.
//
// Returns the persisted user or:
//   - store.ErrUserAlreadyExists if the username is taken.
//   - a wrapped crypto or storage error otherwise.
func (a *authService) Register(ctx context.Context, username, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	// fail fast before the expensive derivation; the unique constraint
	// still settles concurrent registrations
	if _, err := a.opener.users.FindUserByUsername(ctx, username); err == nil {
		return models.User{}, store.ErrUserAlreadyExists
	} else if !errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	salt, err := a.opener.deriver.NewSalt()
	if err != nil {
		log.Err(err).Msg("salt generation failed")
		return models.User{}, err
	}

	key, err := a.opener.derive(ctx, password, salt)
	if err != nil {
		return models.User{}, err
	}
	defer crypto.Wipe(key)

	path := a.opener.files.NewVaultPath()
	if err = a.opener.seal(ctx, path, vault.New(), key); err != nil {
		log.Err(err).Str("username", username).Msg("writing initial vault failed")
		return models.User{}, err
	}

	user, err := a.opener.users.CreateUser(ctx, models.User{
		Username:  username,
		Salt:      salt,
		VaultPath: path,
	})
	if err != nil {
		if rmErr := a.opener.files.Remove(context.WithoutCancel(ctx), path); rmErr != nil {
			log.Err(rmErr).Str("path", path).Msg("removing orphaned vault failed")
		}
		if errors.Is(err, store.ErrUserAlreadyExists) {
			return models.User{}, err
		}
		log.Err(err).Str("username", username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Str("username", username).Msg("user registered")
	return user, nil
}

// Authenticate proves password by decrypting the user's vault.
//
// Unknown usernames, wrong passwords and vaults failing the integrity check
// all return ErrInvalidCredentials.
func (a *authService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	opened, err := a.opener.open(ctx, username, password)
	if errors.Is(err, crypto.ErrIntegrity) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}
	defer opened.close()

	return opened.user, nil
}

// CreateToken issues a signed JWT whose subject is the username.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.Username, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
