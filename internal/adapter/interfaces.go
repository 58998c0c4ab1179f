// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport used by the command-line client to
// talk to the vault-keeper server.
//
// The primary abstraction is [ServerAdapter], which keeps the client commands
// unaware of the wire protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrConflict] for 409,
// [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/vault-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the vault-keeper server.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or an empty string.
	Token() string

	// Health reports the server status and version.
	Health(ctx context.Context) (models.HealthResponse, error)

	// Register creates an account and stores the issued token.
	Register(ctx context.Context, username, password string) (string, error)

	// Login authenticates an existing account and stores the issued token.
	Login(ctx context.Context, username, password string) (string, error)

	// ListCredentials returns every entry of the caller's vault. The vault
	// password is sent with each call because the server keeps no key.
	ListCredentials(ctx context.Context, password string) ([]models.CredentialEntry, error)

	// SaveCredential inserts or replaces one entry in the caller's vault.
	SaveCredential(ctx context.Context, password string, entry models.CredentialEntry) error
}
