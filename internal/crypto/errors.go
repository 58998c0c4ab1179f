// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrIntegrity is returned by [VaultCodec.Decrypt] when the blob cannot
	// be authenticated under the given key. A wrong password and a tampered
	// vault file are indistinguishable at this level.
	ErrIntegrity = errors.New("vault integrity check failed")

	// ErrEmptyPassword is returned when key derivation is requested for an
	// empty password.
	ErrEmptyPassword = errors.New("password is empty")

	// ErrInvalidSaltLength is returned when the salt is not [SaltSize] bytes.
	ErrInvalidSaltLength = errors.New("invalid salt length")

	// ErrInvalidKeyLength is returned when a key passed to the codec is not
	// [KeySize] bytes.
	ErrInvalidKeyLength = errors.New("invalid key length")
)
