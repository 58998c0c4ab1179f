// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// CredentialEntry is one stored site credential in its flattened form, as
// returned by the list operation and accepted by the save operation.
type CredentialEntry struct {
	// Category is the vault bucket the entry lives in. Empty means the
	// default category.
	Category string `json:"category,omitempty"`

	// Site is the site name the credential belongs to (e.g. "example.com").
	Site string `json:"site"`

	// Username is the login stored for the site.
	Username string `json:"username"`

	// Password is the password stored for the site.
	Password string `json:"password"`
}
