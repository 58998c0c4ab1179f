package models

import "time"

// User is a registry record: the identity of a vault owner together with
// the material needed to reach and unlock the owner's vault.
//
// No password or password hash is stored. A successful decryption of the
// vault with a key derived from the supplied password is the password
// check.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Username is the unique login of the vault owner.
	Username string `json:"username"`

	// Password is the plaintext password carried from a request into the
	// service layer. It is never persisted or serialised.
	Password string `json:"password,omitempty"`

	// Salt is the per-user random salt mixed into key derivation.
	// Issued once at registration and never changed afterwards.
	Salt []byte `json:"-"`

	// VaultPath is the location of the user's encrypted vault file.
	VaultPath string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
