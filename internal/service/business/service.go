// Package business resolves business records for saved-list operations.
package business

import (
	"context"
	"errors"
)

// ErrNotFound indicates no business profile exists for the user.
var ErrNotFound = errors.New("business profile not found")

// Business identifies a business profile.
type Business struct {
	ID          string
	UserID      string
	CompanyName string
}

// Service resolves businesses by their owning user.
type Service interface {
	ByUser(ctx context.Context, userID string) (*Business, error)
}
