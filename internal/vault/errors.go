package vault

import "errors"

var (
	// ErrMalformedVault is returned when a decrypted body is not a
	// category → site → credential mapping.
	ErrMalformedVault = errors.New("malformed vault")

	// ErrMalformedEntry is returned when a stored entry is not a
	// {username, password} object.
	ErrMalformedEntry = errors.New("malformed vault entry")
)
