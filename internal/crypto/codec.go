// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

const (
	// FormatVersion is the current vault file format version.
	FormatVersion byte = 1

	headerSize = 4
	nonceSize  = 12
	tagSize    = 16
)

var magic = [3]byte{'V', 'K', 'V'}

// aesGCMCodec is the AES-256-GCM implementation of [VaultCodec].
type aesGCMCodec struct{}

// NewVaultCodec constructs the default [VaultCodec].
func NewVaultCodec() VaultCodec {
	return &aesGCMCodec{}
}

// Encrypt implements [VaultCodec].
func (c *aesGCMCodec) Encrypt(plaintext, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	header := vaultHeader(FormatVersion)

	blob := make([]byte, headerSize+nonceSize, headerSize+nonceSize+len(plaintext)+tagSize)
	copy(blob, header)

	nonce := blob[headerSize : headerSize+nonceSize]
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return gcm.Seal(blob, nonce, plaintext, header), nil
}

// Decrypt implements [VaultCodec].
func (c *aesGCMCodec) Decrypt(blob, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(blob) < headerSize+nonceSize+tagSize {
		return nil, ErrIntegrity
	}

	header := blob[:headerSize]
	if header[0] != magic[0] || header[1] != magic[1] || header[2] != magic[2] || header[3] != FormatVersion {
		return nil, ErrIntegrity
	}

	nonce := blob[headerSize : headerSize+nonceSize]
	plaintext, err := gcm.Open(nil, nonce, blob[headerSize+nonceSize:], header)
	if err != nil {
		return nil, ErrIntegrity
	}

	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeyLength
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}

func vaultHeader(version byte) []byte {
	return []byte{magic[0], magic[1], magic[2], version}
}
