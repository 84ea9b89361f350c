package completion

import (
	"github.com/linkagehub/marketplace-api/internal/platform/timeutil"
	completionsvc "github.com/linkagehub/marketplace-api/internal/service/completion"
)

// Status is the completion status payload. UserType, MissingFields and
// Profile stay empty when the user has no profile document yet; the
// endpoint then reports zero completion with a setup suggestion instead
// of an error.
type Status struct {
	Percentage    int                        `json:"percentage"              doc:"Completion percentage"             example:"85"`
	UserType      string                     `json:"userType,omitempty"      doc:"Profile kind"                      example:"va"     enum:"business,va"`
	IsComplete    bool                       `json:"isComplete"              doc:"Whether the threshold is met"      example:"true"`
	MissingFields *completionsvc.Missing     `json:"missingFields,omitempty" doc:"Incomplete fields by category"`
	Suggestions   []completionsvc.Suggestion `json:"suggestions"             doc:"What to complete next"`
	Profile       *StatusProfile             `json:"profile,omitempty"       doc:"Scored profile reference"`
}

// StatusProfile references the profile document that was scored.
type StatusProfile struct {
	ID          string        `json:"id"          doc:"Profile document ID"   example:"profile-123"`
	LastUpdated timeutil.Time `json:"lastUpdated" doc:"Last profile update"   example:"2026-01-15T10:30:00.000Z"`
}
