package validators

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	// FieldUsername targets the account name of a vault owner.
	FieldUsername = "username"

	// FieldPassword targets the vault password of a vault owner.
	FieldPassword = "password"

	// FieldSite targets the site key of a credential entry.
	FieldSite = "site"

	// FieldCategory targets the optional category of a credential entry.
	FieldCategory = "category"

	// FieldEntryUsername targets the username stored inside a credential entry.
	FieldEntryUsername = "entry_username"

	// FieldEntryPassword targets the password stored inside a credential entry.
	FieldEntryPassword = "entry_password"
)

const (
	maxUsernameLen = 64
	maxPasswordLen = 1024
	maxSiteLen     = 255
	maxCategoryLen = 64
	maxEntryLen    = 4096
)

// isName reports whether s is a non-blank, printable, single-line name of
// at most maxLen runes without leading or trailing spaces.
func isName(s string, maxLen int) bool {
	if s == "" || !utf8.ValidString(s) || utf8.RuneCountInString(s) > maxLen {
		return false
	}
	if strings.TrimSpace(s) != s {
		return false
	}
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
