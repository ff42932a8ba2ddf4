package archive

import (
	"context"
	"errors"
)

// ErrUnauthorized indicates the archive credential is absent or expired.
// Distinct from ErrNotFound so callers can tell a bad credential from a bad
// identifier.
var ErrUnauthorized = errors.New("archive: unauthorized")

// ErrNotFound indicates no stored object exists for the given identifier.
var ErrNotFound = errors.New("archive: object not found")

// StoredFile identifies an archived image: the archive's internal id plus a
// human-shareable link.
type StoredFile struct {
	ID   string `json:"id"`
	Link string `json:"link"`
}

// Archive defines the interface for durable receipt image storage
type Archive interface {
	// Store uploads content under the given name and returns its identifier
	// and shareable link. Names are expected to already be unique; Store
	// never overwrites an existing object.
	Store(ctx context.Context, data []byte, name string, contentType string) (*StoredFile, error)

	// Fetch returns the stored bytes and content type for an identifier
	Fetch(ctx context.Context, id string) ([]byte, string, error)
}
