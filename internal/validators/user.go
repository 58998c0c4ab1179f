package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/vault-keeper/models"
)

// UserValidator checks registration and login input.
type UserValidator struct{}

func NewUserValidator() Validator {
	return &UserValidator{}
}

// Validate accepts models.User and *models.User. Without fields it checks
// username and password.
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.User:
		return v.validateUser(ctx, value, fields...)
	case *models.User:
		return v.validateUser(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateUser(_ context.Context, user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if user.Username == "" {
				return ErrEmptyUsername
			}
			// usernames double as map keys and token subjects
			if !isName(user.Username, maxUsernameLen) || strings.ContainsRune(user.Username, ' ') {
				return ErrInvalidUsername
			}
		case FieldPassword:
			if user.Password == "" {
				return ErrEmptyPassword
			}
			if utf8.RuneCountInString(user.Password) > maxPasswordLen {
				return ErrPasswordTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
