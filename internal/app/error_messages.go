// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// vault-keeper server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place keeps the API wording consistent.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidCredentials is the single answer for an unknown username, a
	// wrong password and a vault that fails to decrypt.
	MsgInvalidCredentials = "invalid credentials"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgMissingAuthorization is returned when an authenticated route is
	// called without a usable "Authorization: Bearer" header.
	MsgMissingAuthorization = "missing or malformed authorization header"

	// MsgNoUsernameProvided is returned when a handler requires the session
	// username but none is present in the request context.
	MsgNoUsernameProvided = "no username provided"

	// MsgUsernameAlreadyExists is returned when a registration attempt is
	// rejected because the requested username is already in use.
	MsgUsernameAlreadyExists = "username already exists"

	// MsgVaultUnavailable is returned when the vault file cannot be read or
	// replaced. The previous vault stays intact.
	MsgVaultUnavailable = "vault storage failure"

	// MsgRequestTimeout is returned when the request deadline expires while
	// waiting for the vault lock or the key derivation.
	MsgRequestTimeout = "request timed out, try again"

	// MsgMethodNotAllowed is returned for a known path called with an
	// unsupported method.
	MsgMethodNotAllowed = "method not allowed"

	// MsgCredentialSaved confirms a successful save.
	MsgCredentialSaved = "credential saved"

	// MsgStatusOK is the health endpoint status.
	MsgStatusOK = "ok"
)
