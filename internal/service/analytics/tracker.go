// Package analytics emits product analytics events. Tracking is
// fire-and-forget: it must never block or fail the primary operation.
package analytics

import (
	"context"
	"time"
)

// Event names emitted by the saved-VA flows.
const (
	EventSaveVA          = "save_va_success"
	EventUnsaveVA        = "unsave_va_success"
	EventSavedListViewed = "saved_list_viewed"
)

// Event is a single analytics event.
type Event struct {
	UserID     string         `json:"userId"`
	Name       string         `json:"event"`
	Properties map[string]any `json:"properties,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}

// Tracker records analytics events. Implementations must return promptly
// and swallow delivery failures.
type Tracker interface {
	Track(ctx context.Context, event Event)
}

// Noop discards all events.
type Noop struct{}

// Track implements Tracker.
func (Noop) Track(_ context.Context, _ Event) {}

// Compile-time interface check
var _ Tracker = Noop{}
