// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the handlers and the authentication middleware.
// Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but is not a non-empty "Bearer <token>" value.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrNoUsernameInContext is returned when an authenticated handler runs
	// without the auth middleware having stored the session username.
	ErrNoUsernameInContext = errors.New("no username in request context")
)
