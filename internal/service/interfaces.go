package service

import (
	"context"

	"github.com/MKhiriev/vault-keeper/models"
)

// AuthService registers vault owners, proves their passwords and manages
// session tokens.
type AuthService interface {
	// Register creates a user with a fresh salt and an empty encrypted vault.
	Register(ctx context.Context, username, password string) (models.User, error)

	// Authenticate succeeds when the vault of username decrypts with a key
	// derived from password. The decrypted vault is discarded.
	Authenticate(ctx context.Context, username, password string) (models.User, error)

	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// VaultService reads and updates the credentials inside a user's vault.
// Every call needs the vault password because derived keys are never kept.
type VaultService interface {
	ListCredentials(ctx context.Context, username, password string) ([]models.CredentialEntry, error)
	SaveCredential(ctx context.Context, username, password string, entry models.CredentialEntry) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// AuthServiceWrapper defines middleware composition for AuthService.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

// VaultServiceWrapper defines middleware composition for VaultService.
// Implementations wrap an existing VaultService to add behavior such as
// validation.
type VaultServiceWrapper interface {
	Wrap(VaultService) VaultService // returns a decorated VaultService applying additional behavior
}
