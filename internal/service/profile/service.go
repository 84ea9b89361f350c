// Package profile loads business and VA profile documents by owning user
// for completion scoring.
package profile

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates no profile document exists for the user.
var ErrNotFound = errors.New("profile not found")

// Doc is a profile document read for scoring. Fields holds the raw field
// map; the scorer resolves dotted paths against it and never mutates it.
type Doc struct {
	ID        string
	Fields    map[string]any
	UpdatedAt time.Time
}

// Service resolves profile documents by their owning user reference.
type Service interface {
	BusinessByUser(ctx context.Context, userID string) (*Doc, error)
	VAByUser(ctx context.Context, userID string) (*Doc, error)
}
