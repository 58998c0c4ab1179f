package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/vault-keeper/internal/validators"
	"github.com/MKhiriev/vault-keeper/models"
)

// AuthValidationService rejects malformed usernames and passwords before
// the wrapped AuthService derives any key.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{
		validator: validators.NewUserValidator(),
	}
}

func (v *AuthValidationService) Register(ctx context.Context, username, password string) (models.User, error) {
	if err := v.validator.Validate(ctx, models.User{Username: username, Password: password}); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Register(ctx, username, password)
}

// Authenticate only requires both values to be present. Format rules are
// enforced at registration; a stored name that breaks them just fails to
// match.
func (v *AuthValidationService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	if err := requireCredentials(username, password); err != nil {
		return models.User{}, err
	}

	return v.inner.Authenticate(ctx, username, password)
}

func (v *AuthValidationService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if user.Username == "" {
		return models.Token{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrEmptyUsername)
	}

	return v.inner.CreateToken(ctx, user)
}

func (v *AuthValidationService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if tokenString == "" {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return v.inner.ParseToken(ctx, tokenString)
}

func (v *AuthValidationService) Wrap(wrapped AuthService) AuthService {
	v.inner = wrapped
	return v
}

// VaultValidationService rejects incomplete requests before the wrapped
// VaultService derives any key.
type VaultValidationService struct {
	inner     VaultService
	validator validators.Validator
}

func NewVaultValidationService() VaultServiceWrapper {
	return &VaultValidationService{
		validator: validators.NewCredentialValidator(),
	}
}

func (v *VaultValidationService) ListCredentials(ctx context.Context, username, password string) ([]models.CredentialEntry, error) {
	if err := requireCredentials(username, password); err != nil {
		return nil, err
	}

	return v.inner.ListCredentials(ctx, username, password)
}

func (v *VaultValidationService) SaveCredential(ctx context.Context, username, password string, entry models.CredentialEntry) error {
	if err := requireCredentials(username, password); err != nil {
		return err
	}
	if err := v.validator.Validate(ctx, entry); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.SaveCredential(ctx, username, password, entry)
}

func (v *VaultValidationService) Wrap(wrapped VaultService) VaultService {
	v.inner = wrapped
	return v
}

func requireCredentials(username, password string) error {
	switch {
	case username == "":
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrEmptyUsername)
	case password == "":
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrEmptyPassword)
	}
	return nil
}
