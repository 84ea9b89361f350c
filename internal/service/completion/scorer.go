package completion

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/linkagehub/marketplace-api/internal/fieldpath"
)

// Scorer computes weighted completion percentages over profile documents.
// Field specifications and weights are injected so deployments can tune
// them and tests can use fixture schemas.
type Scorer struct {
	specs   map[string]FieldSpec
	weights Weights
}

// NewScorer creates a scorer from per-user-type field specs and category weights.
func NewScorer(specs map[string]FieldSpec, weights Weights) *Scorer {
	return &Scorer{specs: specs, weights: weights}
}

// NewDefaultScorer creates a scorer with the production specs and weights.
func NewDefaultScorer() *Scorer {
	return NewScorer(DefaultSpecs(), DefaultWeights())
}

// Percentage computes the weighted completion percentage (0-100) for a
// profile document. Unknown user types score 0. Categories that are empty
// for the user type are excluded from both the achieved and the maximum
// score rather than penalized.
func (s *Scorer) Percentage(fields map[string]any, userType string) int {
	spec, ok := s.specs[userType]
	if !ok {
		return 0
	}
	listSet := pathSet(spec.ListFields)

	var totalScore, maxScore float64
	score := func(paths []string, weight int) {
		if len(paths) == 0 {
			return
		}
		completed := 0
		for _, path := range paths {
			if fieldComplete(fields, path, listSet) {
				completed++
			}
		}
		totalScore += float64(completed) / float64(len(paths)) * float64(weight)
		maxScore += float64(weight)
	}

	score(spec.Basic, s.weights.Basic)
	score(spec.Location, s.weights.Location)
	switch userType {
	case UserTypeBusiness:
		score(spec.Company, s.weights.Company)
	case UserTypeVA:
		score(spec.Professional, s.weights.Company)
	}
	score(spec.Optional, s.weights.Optional)

	if maxScore == 0 {
		return 0
	}
	return int(math.Round(totalScore / maxScore * 100))
}

// Missing groups incomplete required field paths by category. Optional
// fields are not reported. The company and professional groups are both
// always present; only the one matching the user type can be non-empty.
type Missing struct {
	Basic        []string `json:"basic"        doc:"Incomplete basic fields"`
	Location     []string `json:"location"     doc:"Incomplete location fields"`
	Company      []string `json:"company"      doc:"Incomplete company fields (business profiles)"`
	Professional []string `json:"professional" doc:"Incomplete professional fields (VA profiles)"`
}

// Empty reports whether no required field is missing.
func (m Missing) Empty() bool {
	return len(m.Basic) == 0 && len(m.Location) == 0 && len(m.Company) == 0 && len(m.Professional) == 0
}

// Missing reports the required fields that fail the same completeness
// predicate Percentage uses, grouped by category.
func (s *Scorer) Missing(fields map[string]any, userType string) Missing {
	missing := Missing{
		Basic:        []string{},
		Location:     []string{},
		Company:      []string{},
		Professional: []string{},
	}
	spec, ok := s.specs[userType]
	if !ok {
		return missing
	}
	listSet := pathSet(spec.ListFields)

	collect := func(paths []string) []string {
		out := []string{}
		for _, path := range paths {
			if !fieldComplete(fields, path, listSet) {
				out = append(out, path)
			}
		}
		return out
	}

	missing.Basic = collect(spec.Basic)
	missing.Location = collect(spec.Location)
	switch userType {
	case UserTypeBusiness:
		missing.Company = collect(spec.Company)
	case UserTypeVA:
		missing.Professional = collect(spec.Professional)
	}
	return missing
}

func pathSet(paths []string) map[string]bool {
	if len(paths) == 0 {
		return nil
	}
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		set[p] = true
	}
	return set
}

// fieldComplete decides whether a single field counts toward completion.
// List-valued fields require a non-empty list; everything else must be
// truthy with a non-empty trimmed string form.
func fieldComplete(fields map[string]any, path string, listSet map[string]bool) bool {
	value, ok := fieldpath.Resolve(fields, path)
	if !ok || value == nil {
		return false
	}
	if listSet[path] {
		n, isList := listLen(value)
		return isList && n > 0
	}
	return truthy(value)
}

func listLen(value any) (int, bool) {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return 0, false
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len(), true
	default:
		return 0, false
	}
}

func truthy(value any) bool {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v) != ""
	case bool:
		return v
	case time.Time:
		return !v.IsZero()
	}
	if n, isList := listLen(value); isList {
		return n > 0
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Map, reflect.Struct:
		return true
	}
	return strings.TrimSpace(fmt.Sprint(value)) != ""
}
