package models

// AuthRequest is the body of the register and login endpoints.
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ListCredentialsRequest is the body of the list endpoint. The vault
// password is required on every vault read because no derived key is kept
// between requests.
type ListCredentialsRequest struct {
	Password string `json:"password"`
}

// SaveCredentialRequest is the body of the save endpoint.
type SaveCredentialRequest struct {
	// Password is the vault owner's password.
	Password string `json:"password"`

	// Category is optional; entries without one land in the default category.
	Category string `json:"category,omitempty"`

	Site          string `json:"site"`
	EntryUsername string `json:"username"`
	EntryPassword string `json:"entry_password"`
}

// Entry converts the request into the credential entry it describes.
func (r SaveCredentialRequest) Entry() CredentialEntry {
	return CredentialEntry{
		Category: r.Category,
		Site:     r.Site,
		Username: r.EntryUsername,
		Password: r.EntryPassword,
	}
}
