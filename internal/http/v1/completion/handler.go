package completion

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/linkagehub/marketplace-api/internal/api"
	"github.com/linkagehub/marketplace-api/internal/platform/auth"
	"github.com/linkagehub/marketplace-api/internal/platform/timeutil"
	completionsvc "github.com/linkagehub/marketplace-api/internal/service/completion"
	profilesvc "github.com/linkagehub/marketplace-api/internal/service/profile"
)

// StatusOutput for GET /profile/completion
type StatusOutput struct {
	Body api.Envelope[Status]
}

// Register registers the completion status endpoint.
func Register(humaAPI huma.API, checker *Checker) {
	huma.Register(humaAPI, huma.Operation{
		OperationID: "get-profile-completion",
		Method:      http.MethodGet,
		Path:        "/profile/completion",
		Summary:     "Get profile completion status",
		Description: "Returns the authenticated user's profile completion percentage, the fields still missing and suggestions for completing them.",
		Tags:        []string{"Profile"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *struct{}) (*StatusOutput, error) {
		p := auth.PrincipalFromContext(ctx)

		assessment, err := checker.Assess(ctx, p)
		if err != nil {
			// Users without a profile document get an advisory zero
			// score rather than an error.
			if errors.Is(err, ErrNoAssociation) || errors.Is(err, profilesvc.ErrNotFound) {
				return &StatusOutput{
					Body: api.Success(Status{
						Percentage:  0,
						Suggestions: completionsvc.SetupSuggestions(),
					}),
				}, nil
			}
			return nil, huma.Error500InternalServerError("failed to load profile completion")
		}

		return &StatusOutput{
			Body: api.Success(Status{
				Percentage:    assessment.Percentage,
				UserType:      assessment.UserType,
				IsComplete:    assessment.Complete(checker.Threshold()),
				MissingFields: &assessment.Missing,
				Suggestions:   assessment.Suggestions,
				Profile: &StatusProfile{
					ID:          assessment.Profile.ID,
					LastUpdated: timeutil.NewTime(assessment.Profile.UpdatedAt),
				},
			}),
		}, nil
	})
}
