package crypto

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// KeyDeriver turns a user password and the user's stored salt into the
// symmetric key protecting the user's vault.
//
// Derivation is deterministic: the same (password, salt) pair always yields
// the same key. Keys are never persisted; callers recompute them for every
// vault operation and wipe them with [Wipe] afterwards.
type KeyDeriver interface {
	// NewSalt returns a fresh random salt of [SaltSize] bytes.
	NewSalt() ([]byte, error)

	// DeriveKey derives a [KeySize]-byte key. Empty passwords and salts of
	// the wrong length are rejected before any hashing happens.
	DeriveKey(password, salt []byte) ([]byte, error)

	// DeriveKeyContext is DeriveKey that stops waiting for the result once
	// ctx is done.
	DeriveKeyContext(ctx context.Context, password, salt []byte) ([]byte, error)
}

// VaultCodec seals and opens serialized vault bodies.
type VaultCodec interface {
	// Encrypt returns header ‖ nonce ‖ ciphertext ‖ tag. A new random nonce
	// is generated on every call.
	Encrypt(plaintext, key []byte) ([]byte, error)

	// Decrypt verifies and opens a blob produced by Encrypt. Any mismatch
	// (wrong key, tampered bytes, unknown header) returns [ErrIntegrity]
	// and no plaintext.
	Decrypt(blob, key []byte) ([]byte, error)
}
