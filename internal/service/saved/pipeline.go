package saved

import (
	"context"
	"errors"
	"math"
	"slices"
	"strings"

	"github.com/linkagehub/marketplace-api/internal/platform/auth"
	"github.com/linkagehub/marketplace-api/internal/service/analytics"
	"github.com/linkagehub/marketplace-api/internal/service/business"
	"github.com/linkagehub/marketplace-api/internal/service/va"
)

// Sort orders for the saved list.
const (
	SortSavedDate  = "saved_date"
	SortName       = "name"
	SortExperience = "experience"
	SortLastActive = "last_active"
)

// Status filter values.
const (
	StatusFilterAll      = "all"
	StatusFilterActive   = "active"
	StatusFilterInactive = "inactive"
)

// Pagination defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 20
)

// ListParams carries the saved-list query. Unknown sort and status values
// fall back to their defaults rather than erroring.
type ListParams struct {
	Page         int
	Limit        int
	SortBy       string
	Search       string
	Status       string
	Industries   []string
	Skills       []string
	RateMin      float64
	RateMax      float64 // <= 0 means unbounded
	Availability string
	Timezone     string
}

func (p ListParams) normalized() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	switch p.SortBy {
	case SortName, SortExperience, SortLastActive, SortSavedDate:
	default:
		p.SortBy = SortSavedDate
	}
	switch p.Status {
	case StatusFilterActive, StatusFilterInactive:
	default:
		p.Status = StatusFilterAll
	}
	if p.RateMin < 0 {
		p.RateMin = 0
	}
	if p.RateMax <= 0 {
		p.RateMax = math.Inf(1)
	}
	return p
}

// activeFilters names the filters the caller actually set, for analytics.
func (p ListParams) activeFilters() []string {
	filters := []string{}
	if strings.TrimSpace(p.Search) != "" {
		filters = append(filters, "search")
	}
	if p.Status != StatusFilterAll {
		filters = append(filters, "status")
	}
	if len(p.Industries) > 0 {
		filters = append(filters, "industry")
	}
	if len(p.Skills) > 0 {
		filters = append(filters, "skills")
	}
	if p.RateMin > 0 {
		filters = append(filters, "rateMin")
	}
	if !math.IsInf(p.RateMax, 1) {
		filters = append(filters, "rateMax")
	}
	if p.Availability != "" {
		filters = append(filters, "availability")
	}
	if p.Timezone != "" {
		filters = append(filters, "timezone")
	}
	return filters
}

// Item is a saved entry joined with its VA's display fields. VA is nil
// when the VA document no longer exists; such items stay listed but are
// marked unavailable, as are deactivated and suspended VAs.
type Item struct {
	Entry       Entry
	VA          *va.VA
	Unavailable bool
}

// ListResult is one page of the saved list. Total counts the
// post-filtered subset of the fetched page, not the full saved set, so
// totals are approximate whenever filters are active.
type ListResult struct {
	Items []Item
	Page  int
	Limit int
	Total int
}

// List runs the saved-list pipeline: brand gate, page fetch ordered by
// save date, VA join, page-local sort, availability marking and
// post-filtering. Filters apply to the fetched page only.
func (s *Service) List(ctx context.Context, p *auth.Principal, params ListParams) (*ListResult, error) {
	if !s.gate(p) {
		return nil, ErrForbidden
	}

	biz, err := s.businesses.ByUser(ctx, p.UID)
	if err != nil {
		if errors.Is(err, business.ErrNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}

	params = params.normalized()
	offset := (params.Page - 1) * params.Limit

	entries, totalSaved, err := s.store.ListByBusiness(ctx, biz.ID, offset, params.Limit)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		item := Item{Entry: entry}
		if v, err := s.vas.Get(ctx, entry.VAID); err == nil {
			item.VA = v
			item.Unavailable = v.Unavailable()
		} else if errors.Is(err, va.ErrNotFound) {
			item.Unavailable = true
		} else {
			return nil, err
		}
		items = append(items, item)
	}

	sortItems(items, params.SortBy)
	items = filterItems(items, params)

	s.tracker.Track(ctx, analytics.Event{
		UserID: p.UID,
		Name:   analytics.EventSavedListViewed,
		Properties: map[string]any{
			"business_id":     biz.ID,
			"brand":           s.brand,
			"total_saved":     totalSaved,
			"page":            params.Page,
			"filters_applied": params.activeFilters(),
		},
	})

	return &ListResult{
		Items: items,
		Page:  params.Page,
		Limit: params.Limit,
		Total: len(items),
	}, nil
}

// sortItems reorders the fetched page. The store already returns entries
// by save date descending, so SortSavedDate is a no-op.
func sortItems(items []Item, sortBy string) {
	switch sortBy {
	case SortName:
		slices.SortStableFunc(items, func(a, b Item) int {
			return strings.Compare(sortName(a.VA), sortName(b.VA))
		})
	case SortExperience:
		slices.SortStableFunc(items, func(a, b Item) int {
			return sortYears(b.VA) - sortYears(a.VA)
		})
	case SortLastActive:
		slices.SortStableFunc(items, func(a, b Item) int {
			av, bv := a.VA, b.VA
			switch {
			case av == nil && bv == nil:
				return 0
			case av == nil:
				return 1
			case bv == nil:
				return -1
			}
			return bv.LastActive.Compare(av.LastActive)
		})
	}
}

func sortName(v *va.VA) string {
	if v == nil {
		return "￿" // missing VAs sort last
	}
	return strings.ToLower(strings.TrimSpace(v.FirstName + " " + v.LastName))
}

func sortYears(v *va.VA) int {
	if v == nil {
		return -1
	}
	return v.YearsOfExperience
}

func filterItems(items []Item, params ListParams) []Item {
	out := items
	if search := strings.ToLower(strings.TrimSpace(params.Search)); search != "" {
		out = keep(out, func(item Item) bool {
			return item.VA != nil && strings.Contains(searchableText(item.VA), search)
		})
	}
	switch params.Status {
	case StatusFilterActive:
		out = keep(out, func(item Item) bool {
			return item.VA != nil && item.VA.Status == va.StatusActive && !item.Unavailable
		})
	case StatusFilterInactive:
		out = keep(out, func(item Item) bool {
			return item.VA == nil || item.VA.Status != va.StatusActive || item.Unavailable
		})
	}
	if len(params.Industries) > 0 {
		out = keep(out, func(item Item) bool {
			return item.VA != nil && slices.Contains(params.Industries, item.VA.Industry)
		})
	}
	if len(params.Skills) > 0 {
		out = keep(out, func(item Item) bool {
			if item.VA == nil {
				return false
			}
			for _, skill := range params.Skills {
				if slices.Contains(item.VA.Skills, skill) {
					return true
				}
			}
			return false
		})
	}
	if params.RateMin > 0 || !math.IsInf(params.RateMax, 1) {
		out = keep(out, func(item Item) bool {
			return item.VA != nil &&
				item.VA.HourlyRate >= params.RateMin &&
				item.VA.HourlyRate <= params.RateMax
		})
	}
	if params.Availability != "" {
		out = keep(out, func(item Item) bool {
			return item.VA != nil && item.VA.Availability == params.Availability
		})
	}
	if params.Timezone != "" {
		out = keep(out, func(item Item) bool {
			return item.VA != nil && item.VA.Timezone == params.Timezone
		})
	}
	return out
}

func keep(items []Item, pred func(Item) bool) []Item {
	out := items[:0:0]
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// searchableText concatenates the fields free-text search matches against.
func searchableText(v *va.VA) string {
	parts := []string{v.FirstName, v.LastName, v.Hero, v.Title}
	parts = append(parts, v.Skills...)
	parts = append(parts, v.Specialties...)
	parts = append(parts, v.Bio)
	return strings.ToLower(strings.Join(parts, " "))
}
