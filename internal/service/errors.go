package service

import "errors"

var (
	// ErrInvalidDataProvided wraps every input validation failure. It is
	// returned before any key derivation happens.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is the single answer for an unknown username and
	// for a wrong password. Callers cannot tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
