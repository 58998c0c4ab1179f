package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/vault-keeper/internal/crypto"
	"github.com/MKhiriev/vault-keeper/internal/logger"
	"github.com/MKhiriev/vault-keeper/internal/store"
	"github.com/MKhiriev/vault-keeper/internal/vault"
	"github.com/MKhiriev/vault-keeper/models"
)

// vaultOpener performs the steps shared by authentication and vault access:
// registry lookup, key derivation, file read and decryption.
type vaultOpener struct {
	users   store.UserRepository
	files   store.VaultFileStorage
	deriver crypto.KeyDeriver
	codec   crypto.VaultCodec

	// dummySalt feeds the derivation run for unknown usernames.
	dummySalt []byte
}

func newVaultOpener(users store.UserRepository, files store.VaultFileStorage, deriver crypto.KeyDeriver, codec crypto.VaultCodec) (*vaultOpener, error) {
	salt, err := deriver.NewSalt()
	if err != nil {
		return nil, err
	}
	return &vaultOpener{
		users:     users,
		files:     files,
		deriver:   deriver,
		codec:     codec,
		dummySalt: salt,
	}, nil
}

// openedVault is a decrypted vault together with the key that opened it.
// close must be called on every path to wipe the key.
type openedVault struct {
	user  models.User
	vault vault.Vault
	key   []byte
}

func (o *openedVault) close() {
	crypto.Wipe(o.key)
	o.key = nil
	o.vault = nil
}

// open unlocks the vault of username.
//
// Errors:
//   - unknown user → ErrInvalidCredentials, after a dummy derivation so
//     the response time matches a wrong password.
//   - wrong password or tampered file → crypto.ErrIntegrity.
//   - missing vault file → store.ErrVaultNotFound.
//   - unreadable vault file → store.ErrVaultIO.
func (o *vaultOpener) open(ctx context.Context, username, password string) (*openedVault, error) {
	log := logger.FromContext(ctx)

	user, err := o.users.FindUserByUsername(ctx, username)
	if errors.Is(err, store.ErrUserNotFound) {
		o.burnDerivation(ctx, password)
		log.Info().Str("username", username).Msg("unknown user")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}

	key, err := o.derive(ctx, password, user.Salt)
	if err != nil {
		return nil, err
	}

	opened := &openedVault{user: user, key: key}

	blob, err := o.files.Read(ctx, user.VaultPath)
	if err != nil {
		opened.close()
		return nil, err
	}

	body, err := o.codec.Decrypt(blob, key)
	if err != nil {
		opened.close()
		log.Warn().Str("username", username).Msg("vault integrity check failed")
		return nil, crypto.ErrIntegrity
	}
	defer crypto.Wipe(body)

	opened.vault, err = vault.Decode(body)
	if err != nil {
		opened.close()
		log.Err(err).Str("username", username).Msg("decrypted vault is malformed")
		return nil, err
	}

	return opened, nil
}

// seal encrypts v under key and atomically replaces the file at path.
func (o *vaultOpener) seal(ctx context.Context, path string, v vault.Vault, key []byte) error {
	body, err := v.Encode()
	if err != nil {
		return err
	}
	defer crypto.Wipe(body)

	blob, err := o.codec.Encrypt(body, key)
	if err != nil {
		return fmt.Errorf("vault encryption failed: %w", err)
	}

	return o.files.Write(ctx, path, blob)
}

func (o *vaultOpener) derive(ctx context.Context, password string, salt []byte) ([]byte, error) {
	pw := []byte(password)
	defer crypto.Wipe(pw)

	key, err := o.deriver.DeriveKeyContext(ctx, pw, salt)
	if err != nil {
		return nil, fmt.Errorf("key derivation failed: %w", err)
	}
	return key, nil
}

func (o *vaultOpener) burnDerivation(ctx context.Context, password string) {
	if password == "" {
		return
	}
	if key, err := o.derive(ctx, password, o.dummySalt); err == nil {
		crypto.Wipe(key)
	}
}
