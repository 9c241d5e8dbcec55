// Package uuid issues the identifiers used for users, trades, quiz attempts,
// and content items.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New generates a time-ordered UUIDv7 so identifiers sort by creation time.
// It falls back to a random UUIDv4 if the v7 generator cannot read entropy.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.New().String()
	}
	return id.String()
}
