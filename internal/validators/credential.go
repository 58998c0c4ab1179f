package validators

import (
	"context"

	"github.com/MKhiriev/vault-keeper/models"
)

// CredentialValidator checks a credential entry before it is written into a
// vault.
type CredentialValidator struct{}

func NewCredentialValidator() Validator {
	return &CredentialValidator{}
}

// Validate accepts models.CredentialEntry and *models.CredentialEntry.
// Without fields it checks site, category, entry username and entry
// password. An empty category is valid.
func (v *CredentialValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CredentialEntry:
		return v.validateEntry(ctx, value, fields...)
	case *models.CredentialEntry:
		return v.validateEntry(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *CredentialValidator) validateEntry(_ context.Context, entry models.CredentialEntry, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSite, FieldCategory, FieldEntryUsername, FieldEntryPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldSite:
			if entry.Site == "" {
				return ErrEmptySite
			}
			if !isName(entry.Site, maxSiteLen) {
				return ErrInvalidSite
			}
		case FieldCategory:
			if entry.Category != "" && !isName(entry.Category, maxCategoryLen) {
				return ErrInvalidCategory
			}
		case FieldEntryUsername:
			if entry.Username == "" {
				return ErrEmptyEntryUsername
			}
			if len(entry.Username) > maxEntryLen {
				return ErrEntryFieldTooLong
			}
		case FieldEntryPassword:
			if entry.Password == "" {
				return ErrEmptyEntryPassword
			}
			if len(entry.Password) > maxEntryLen {
				return ErrEntryFieldTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
