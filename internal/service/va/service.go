// Package va resolves VA records and the display fields the saved list joins in.
package va

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates no VA exists with the given ID.
var ErrNotFound = errors.New("va not found")

// VA statuses.
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

// VA carries the display fields a saved-list entry renders.
type VA struct {
	ID                string
	FirstName         string
	LastName          string
	Hero              string
	Title             string
	Skills            []string
	Specialties       []string
	Rating            float64
	HourlyRate        float64
	Availability      string
	Timezone          string
	Avatar            string
	Bio               string
	Status            string
	Industry          string
	Location          string
	YearsOfExperience int
	LastActive        time.Time
}

// Name returns the VA's display name.
func (v *VA) Name() string {
	if v.FirstName == "" {
		return v.LastName
	}
	if v.LastName == "" {
		return v.FirstName
	}
	return v.FirstName + " " + v.LastName
}

// Unavailable reports whether the VA should be rendered as unavailable in
// saved lists. Deactivated and suspended accounts stay listed but marked.
func (v *VA) Unavailable() bool {
	return v == nil || v.Status == StatusInactive || v.Status == StatusSuspended
}

// Service resolves VAs by ID.
type Service interface {
	Get(ctx context.Context, id string) (*VA, error)
	Exists(ctx context.Context, id string) (bool, error)
}
