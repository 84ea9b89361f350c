// Package saved exposes the saved-VA endpoints for E-Systems business
// accounts.
package saved

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/linkagehub/marketplace-api/internal/api"
	"github.com/linkagehub/marketplace-api/internal/http/v1/completion"
	"github.com/linkagehub/marketplace-api/internal/platform/auth"
	"github.com/linkagehub/marketplace-api/internal/platform/pagination"
	savedsvc "github.com/linkagehub/marketplace-api/internal/service/saved"
)

var bearerSecurity = []map[string][]string{
	{"bearerAuth": {}},
}

// Register registers the saved-VA endpoints. The save operation sits
// behind the profile-completion gate; the list operation carries the
// completion warning headers.
func Register(humaAPI huma.API, svc *savedsvc.Service) {
	huma.Register(humaAPI, huma.Operation{
		OperationID:   "save-va",
		Method:        http.MethodPost,
		Path:          "/saved",
		Summary:       "Save a VA",
		Description:   "Adds a VA to the business's saved list. Saving an already saved VA returns the existing entry unchanged.",
		Tags:          []string{"Saved VAs"},
		DefaultStatus: http.StatusCreated,
		Security:      bearerSecurity,
		Metadata: map[string]any{
			completion.MetadataGate: true,
		},
	}, func(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
		p := auth.PrincipalFromContext(ctx)

		result, err := svc.Save(ctx, p, input.Body.VAID, input.Body.Notes, input.Body.Context)
		if err != nil {
			return nil, mapServiceError(err)
		}

		out := &SaveOutput{Status: http.StatusCreated}
		if result.Created {
			out.Body = api.SuccessMessage(toEntry(result.Entry), "VA saved successfully")
		} else {
			out.Status = http.StatusOK
			out.Body = api.SuccessMessage(toEntry(result.Entry), "VA already saved")
		}
		return out, nil
	})

	huma.Register(humaAPI, huma.Operation{
		OperationID: "list-saved-vas",
		Method:      http.MethodGet,
		Path:        "/saved",
		Summary:     "List saved VAs",
		Description: "Returns the business's saved VAs with filtering, sorting and pagination. Filters apply to the fetched page.",
		Tags:        []string{"Saved VAs"},
		Security:    bearerSecurity,
		Metadata: map[string]any{
			completion.MetadataWarning: true,
		},
	}, func(ctx context.Context, input *ListInput) (*ListOutput, error) {
		p := auth.PrincipalFromContext(ctx)

		result, err := svc.List(ctx, p, listParams(input))
		if err != nil {
			return nil, mapServiceError(err)
		}

		items := make([]SavedVA, len(result.Items))
		for i, item := range result.Items {
			items[i] = toSavedVA(item)
		}
		return &ListOutput{
			Body: api.SuccessPage(items, api.NewPage(result.Page, result.Limit, result.Total)),
		}, nil
	})

	huma.Register(humaAPI, huma.Operation{
		OperationID: "count-saved-vas",
		Method:      http.MethodGet,
		Path:        "/saved/count",
		Summary:     "Count saved VAs",
		Description: "Returns the number of VAs the business has saved. Reports zero instead of failing for accounts without saved-list access.",
		Tags:        []string{"Saved VAs"},
		Security:    bearerSecurity,
	}, func(ctx context.Context, _ *struct{}) (*CountOutput, error) {
		p := auth.PrincipalFromContext(ctx)

		count, err := svc.Count(ctx, p)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &CountOutput{
			Body: api.Success(CountData{Count: count, DisplayCount: displayCount(count)}),
		}, nil
	})

	huma.Register(humaAPI, huma.Operation{
		OperationID: "saved-va-exists",
		Method:      http.MethodGet,
		Path:        "/saved/exists/{vaId}",
		Summary:     "Check whether a VA is saved",
		Description: "Reports whether the business has saved the VA. Reports false instead of failing for accounts without saved-list access.",
		Tags:        []string{"Saved VAs"},
		Security:    bearerSecurity,
	}, func(ctx context.Context, input *ExistsInput) (*ExistsOutput, error) {
		p := auth.PrincipalFromContext(ctx)

		saved, err := svc.IsSaved(ctx, p, input.VAID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ExistsOutput{
			Body: api.Success(ExistsData{Saved: saved}),
		}, nil
	})

	huma.Register(humaAPI, huma.Operation{
		OperationID: "unsave-va",
		Method:      http.MethodDelete,
		Path:        "/saved/{vaId}",
		Summary:     "Remove a saved VA",
		Description: "Removes a VA from the business's saved list.",
		Tags:        []string{"Saved VAs"},
		Security:    bearerSecurity,
	}, func(ctx context.Context, input *UnsaveInput) (*UnsaveOutput, error) {
		p := auth.PrincipalFromContext(ctx)

		if err := svc.Unsave(ctx, p, input.VAID, input.Context); err != nil {
			return nil, mapServiceError(err)
		}
		out := &UnsaveOutput{}
		out.Body.Success = true
		out.Body.Message = "VA removed from saved list"
		return out, nil
	})
}

func listParams(input *ListInput) savedsvc.ListParams {
	return savedsvc.ListParams{
		Page:         input.PageOrDefault(),
		Limit:        input.LimitOrDefault(),
		SortBy:       input.SortBy,
		Search:       input.Search,
		Status:       input.Status,
		Industries:   input.Industry,
		Skills:       splitCSV(input.Skills),
		RateMin:      pagination.ParseFloat(input.RateMin, 0),
		RateMax:      pagination.ParseFloat(input.RateMax, 0),
		Availability: input.Availability,
		Timezone:     input.Timezone,
	}
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, savedsvc.ErrForbidden):
		return huma.Error403Forbidden("saved VAs are not available for this account")
	case errors.Is(err, savedsvc.ErrVANotFound):
		return huma.Error404NotFound("VA not found")
	case errors.Is(err, savedsvc.ErrBusinessNotFound):
		return huma.Error404NotFound("business profile not found")
	case errors.Is(err, savedsvc.ErrNotSaved):
		return huma.Error404NotFound("VA not found in saved list")
	case errors.Is(err, savedsvc.ErrLimitExceeded):
		return huma.Error409Conflict("saved VAs limit reached")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}
