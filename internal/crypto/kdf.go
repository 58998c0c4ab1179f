// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

const (
	// SaltSize is the length of a user salt in bytes.
	SaltSize = 16
	// KeySize is the length of a derived key in bytes (AES-256).
	KeySize = 32
)

// Argon2Params holds the Argon2id work factors.
type Argon2Params struct {
	// Time is the number of passes over memory.
	Time uint32
	// MemoryKiB is the memory cost in KiB.
	MemoryKiB uint32
	// Threads is the degree of parallelism.
	Threads uint8
}

// DefaultArgon2Params returns the OWASP-recommended Argon2id parameters
// (1 pass, 64 MiB, 4 lanes), which cost a few tens of milliseconds on
// server hardware.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Time:      1,
		MemoryKiB: 64 * 1024,
		Threads:   4,
	}
}

// argon2Deriver is the Argon2id implementation of [KeyDeriver].
type argon2Deriver struct {
	params Argon2Params
}

// NewKeyDeriver constructs a [KeyDeriver] with the given parameters. Zero
// fields are replaced with the values from [DefaultArgon2Params].
func NewKeyDeriver(params Argon2Params) KeyDeriver {
	defaults := DefaultArgon2Params()
	if params.Time == 0 {
		params.Time = defaults.Time
	}
	if params.MemoryKiB == 0 {
		params.MemoryKiB = defaults.MemoryKiB
	}
	if params.Threads == 0 {
		params.Threads = defaults.Threads
	}

	return &argon2Deriver{params: params}
}

// NewSalt implements [KeyDeriver].
func (d *argon2Deriver) NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// DeriveKey implements [KeyDeriver].
func (d *argon2Deriver) DeriveKey(password, salt []byte) ([]byte, error) {
	if len(password) == 0 {
		return nil, ErrEmptyPassword
	}
	if len(salt) != SaltSize {
		return nil, ErrInvalidSaltLength
	}

	return argon2.IDKey(password, salt, d.params.Time, d.params.MemoryKiB, d.params.Threads, KeySize), nil
}

// DeriveKeyContext implements [KeyDeriver]. Argon2 itself cannot be
// interrupted, so the derivation keeps running in the background after ctx
// is done; its result is wiped and dropped.
func (d *argon2Deriver) DeriveKeyContext(ctx context.Context, password, salt []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		key []byte
		err error
	}

	done := make(chan result, 1)
	go func() {
		key, err := d.DeriveKey(password, salt)
		done <- result{key: key, err: err}
	}()

	select {
	case res := <-done:
		return res.key, res.err
	case <-ctx.Done():
		go func() {
			Wipe((<-done).key)
		}()
		return nil, ctx.Err()
	}
}

// Wipe overwrites b with zeroes.
func Wipe(b []byte) {
	clear(b)
}
