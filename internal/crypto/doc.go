// Package crypto contains the vault cryptography: Argon2id key derivation
// from a password and per-user salt, and the AES-256-GCM envelope used for
// vault files.
//
// Vault file layout:
//
//	"VKV" | version (1 byte) | nonce (12 bytes) | ciphertext | tag (16 bytes)
//
// The 4-byte header is passed to GCM as additional authenticated data, so a
// change to any byte of the file makes decryption fail with [ErrIntegrity].
package crypto
