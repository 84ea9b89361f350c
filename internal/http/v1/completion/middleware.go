package completion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/linkagehub/marketplace-api/internal/api"
	appmiddleware "github.com/linkagehub/marketplace-api/internal/middleware"
	"github.com/linkagehub/marketplace-api/internal/platform/auth"
	completionsvc "github.com/linkagehub/marketplace-api/internal/service/completion"
	profilesvc "github.com/linkagehub/marketplace-api/internal/service/profile"
)

// Operation metadata keys. Set to true on an operation to enroll it in
// the gate or the warning middleware.
const (
	MetadataGate    = "profile-completion-gate"
	MetadataWarning = "profile-completion-warning"
)

// Warning response headers.
const (
	HeaderWarning    = "X-Profile-Completion-Warning"
	HeaderPercentage = "X-Profile-Completion-Percentage"
)

// gateResultKey is the context key for the passed-gate result.
type gateResultKey struct{}

// GateResult is attached to request context when the gate allows a
// request through.
type GateResult struct {
	Percentage int
	UserType   string
	ProfileID  string
}

// GateResultFromContext returns the gate result, or nil when the
// operation was not gated or the principal is an admin.
func GateResultFromContext(ctx context.Context) *GateResult {
	result, _ := ctx.Value(gateResultKey{}).(*GateResult)
	return result
}

// GateRejection is the structured body of a gate refusal. It extends the
// standard error envelope with the completion details a client needs to
// walk the user through finishing their profile.
type GateRejection struct {
	Success            bool                       `json:"success"`
	Error              *api.ErrorBody             `json:"error"`
	ProfileCompletion  int                        `json:"profileCompletion"`
	RequiredCompletion int                        `json:"requiredCompletion,omitempty"`
	MissingFields      *completionsvc.Missing     `json:"missingFields,omitempty"`
	Suggestions        []completionsvc.Suggestion `json:"suggestions,omitempty"`
}

// NewGateMiddleware blocks requests whose principal's profile completion
// is below the checker's threshold. Operations opt in via MetadataGate.
// Admins always pass. At or above the threshold the request proceeds with
// a GateResult in context.
func NewGateMiddleware(checker *Checker) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if enabled, _ := ctx.Operation().Metadata[MetadataGate].(bool); !enabled {
			next(ctx)
			return
		}

		p := auth.PrincipalFromContext(ctx.Context())
		if p != nil && p.Admin {
			next(ctx)
			return
		}

		assessment, err := checker.Assess(ctx.Context(), p)
		if err != nil {
			switch {
			case errors.Is(err, ErrNoAssociation):
				writeRejection(ctx, http.StatusForbidden, GateRejection{
					Error: &api.ErrorBody{
						Code:    "PROFILE_SETUP_REQUIRED",
						Message: "Profile setup required",
					},
					RequiredCompletion: checker.Threshold(),
				})
			case errors.Is(err, profilesvc.ErrNotFound):
				writeRejection(ctx, http.StatusForbidden, GateRejection{
					Error: &api.ErrorBody{
						Code:    "PROFILE_NOT_FOUND",
						Message: "Profile not found",
					},
					RequiredCompletion: checker.Threshold(),
				})
			default:
				appmiddleware.LogError(ctx.Context(), "profile completion check failed", err,
					zap.String("user_id", uidOf(p)))
				writeRejection(ctx, http.StatusInternalServerError, GateRejection{
					Error: &api.ErrorBody{
						Code:    "INTERNAL_SERVER_ERROR",
						Message: "Failed to verify profile completion",
					},
				})
			}
			return
		}

		if !assessment.Complete(checker.Threshold()) {
			writeRejection(ctx, http.StatusForbidden, GateRejection{
				Error: &api.ErrorBody{
					Code:    "INCOMPLETE_PROFILE",
					Message: "Please complete your profile to access this feature",
				},
				ProfileCompletion:  assessment.Percentage,
				RequiredCompletion: checker.Threshold(),
				MissingFields:      &assessment.Missing,
				Suggestions:        assessment.Suggestions,
			})
			return
		}

		ctx = huma.WithValue(ctx, gateResultKey{}, &GateResult{
			Percentage: assessment.Percentage,
			UserType:   assessment.UserType,
			ProfileID:  assessment.Profile.ID,
		})
		next(ctx)
	}
}

// NewWarningMiddleware attaches informational completion headers when the
// principal's profile is below the threshold. It never blocks: lookup
// failures are logged and the request proceeds.
func NewWarningMiddleware(checker *Checker) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if enabled, _ := ctx.Operation().Metadata[MetadataWarning].(bool); !enabled {
			next(ctx)
			return
		}

		p := auth.PrincipalFromContext(ctx.Context())
		if p == nil || p.Admin {
			next(ctx)
			return
		}

		assessment, err := checker.Assess(ctx.Context(), p)
		if err != nil {
			if !errors.Is(err, ErrNoAssociation) && !errors.Is(err, profilesvc.ErrNotFound) {
				appmiddleware.LogWarn(ctx.Context(), "profile completion warning check failed",
					zap.Error(err), zap.String("user_id", p.UID))
			}
			next(ctx)
			return
		}

		if !assessment.Complete(checker.Threshold()) {
			ctx.SetHeader(HeaderPercentage, strconv.Itoa(assessment.Percentage))
			ctx.SetHeader(HeaderWarning,
				"Your profile is "+strconv.Itoa(assessment.Percentage)+
					"% complete. Complete it to unlock all features.")
		}
		next(ctx)
	}
}

func writeRejection(ctx huma.Context, status int, body GateRejection) {
	body.Success = false
	ctx.SetHeader("Content-Type", "application/json")
	ctx.SetStatus(status)
	if err := json.NewEncoder(ctx.BodyWriter()).Encode(body); err != nil {
		appmiddleware.LogError(ctx.Context(), "failed to write gate rejection", err)
	}
}

func uidOf(p *auth.Principal) string {
	if p == nil {
		return ""
	}
	return p.UID
}
