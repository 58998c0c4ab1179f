package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyUsername      = errors.New("username is required")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrEmptyPassword      = errors.New("password is required")
	ErrPasswordTooLong    = errors.New("password is too long")
	ErrEmptySite          = errors.New("site is required")
	ErrInvalidSite        = errors.New("invalid site")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrEmptyEntryUsername = errors.New("entry username is required")
	ErrEmptyEntryPassword = errors.New("entry password is required")
	ErrEntryFieldTooLong  = errors.New("entry field is too long")
)
