package utils

import "github.com/google/uuid"

// NewID returns a time-ordered UUIDv7 string. If the v7 generator fails it
// falls back to a random v4 UUID.
func NewID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
