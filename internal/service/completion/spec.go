// Package completion scores marketplace profiles against per-user-type
// field specifications and produces completion reports and suggestions.
package completion

// User types with distinct field specifications.
const (
	UserTypeBusiness = "business"
	UserTypeVA       = "va"
)

// FieldSpec declares which profile field paths belong to which scoring
// category for one user type. Paths may be dotted for nested fields
// ("location.city"). ListFields names paths that only count as complete
// when they resolve to a non-empty list.
type FieldSpec struct {
	Basic        []string
	Location     []string
	Company      []string // business profiles only
	Professional []string // VA profiles only
	Optional     []string
	ListFields   []string
}

// Weights maps scoring categories to their percentage weight. The Company
// weight also covers the Professional category for VA profiles. Categories
// absent for a user type are excluded from scoring, not penalized.
type Weights struct {
	Basic    int
	Location int
	Company  int
	Optional int
}

// DefaultWeights returns the production category weights.
func DefaultWeights() Weights {
	return Weights{
		Basic:    40,
		Location: 20,
		Company:  20,
		Optional: 20,
	}
}

// DefaultSpecs returns the production field specifications for business
// and VA profiles.
func DefaultSpecs() map[string]FieldSpec {
	return map[string]FieldSpec{
		UserTypeBusiness: {
			Basic:    []string{"contactName", "company", "bio", "email", "phone"},
			Location: []string{"city", "state", "country"},
			Company:  []string{"industry", "companySize"},
			Optional: []string{
				"website", "contactRole", "streetAddress", "postalCode",
				"foundedYear", "employeeCount", "specialties", "companyCulture",
				"benefits", "workEnvironment", "headquartersLocation",
				"linkedin", "facebook", "twitter", "instagram", "youtube",
				"certifications", "awards", "avatar",
			},
		},
		UserTypeVA: {
			Basic:        []string{"name", "email", "phone", "bio"},
			Location:     []string{"location.city", "location.state", "location.country"},
			Professional: []string{"hourlyRate", "skills", "experience"},
			Optional: []string{
				"languages", "certifications", "portfolio", "availability",
				"timezone", "workingHours", "avatar", "resume",
				"linkedin", "website", "education",
			},
			ListFields: []string{"skills", "experience"},
		},
	}
}
