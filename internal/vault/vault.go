// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/MKhiriev/vault-keeper/models"
)

// DefaultCategory is the bucket for entries saved without a category.
const DefaultCategory = "Default"

// SiteCredential is the only entry shape a vault may hold.
type SiteCredential struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UnmarshalJSON rejects anything that is not an object with string
// "username" and "password" fields.
func (c *SiteCredential) UnmarshalJSON(data []byte) error {
	var raw struct {
		Username *string `json:"username"`
		Password *string `json:"password"`
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedEntry, err)
	}
	if raw.Username == nil || raw.Password == nil {
		return ErrMalformedEntry
	}

	c.Username = *raw.Username
	c.Password = *raw.Password
	return nil
}

// Vault maps category → site → credential.
type Vault map[string]map[string]SiteCredential

// New returns an empty vault containing only the default category.
func New() Vault {
	return Vault{DefaultCategory: {}}
}

// Decode parses a serialized vault body.
func Decode(data []byte) (Vault, error) {
	var v Vault
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedVault, err)
	}
	if v == nil {
		return nil, ErrMalformedVault
	}

	for category, sites := range v {
		if sites == nil {
			v[category] = map[string]SiteCredential{}
		}
	}

	return v, nil
}

// Encode serializes the vault body.
func (v Vault) Encode() ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode vault: %w", err)
	}
	return data, nil
}

// List flattens the vault into entries. A new slice is built on every call,
// ordered by category and then by site.
func (v Vault) List() []models.CredentialEntry {
	categories := make([]string, 0, len(v))
	for category := range v {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	entries := make([]models.CredentialEntry, 0)
	for _, category := range categories {
		sites := make([]string, 0, len(v[category]))
		for site := range v[category] {
			sites = append(sites, site)
		}
		sort.Strings(sites)

		for _, site := range sites {
			cred := v[category][site]
			entries = append(entries, models.CredentialEntry{
				Category: category,
				Site:     site,
				Username: cred.Username,
				Password: cred.Password,
			})
		}
	}

	return entries
}

// Put stores a credential for site under category, creating the category
// if needed. An existing credential for the same site is replaced.
func (v Vault) Put(category, site, username, password string) {
	if category == "" {
		category = DefaultCategory
	}

	sites, ok := v[category]
	if !ok {
		sites = make(map[string]SiteCredential)
		v[category] = sites
	}

	sites[site] = SiteCredential{Username: username, Password: password}
}

// Get returns the credential stored for site under category.
func (v Vault) Get(category, site string) (SiteCredential, bool) {
	if category == "" {
		category = DefaultCategory
	}

	cred, ok := v[category][site]
	return cred, ok
}

// Len returns the number of stored credentials across all categories.
func (v Vault) Len() int {
	n := 0
	for _, sites := range v {
		n += len(sites)
	}
	return n
}
