package completion

import "strings"

// Suggestion priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
)

// Suggestion tells a user which category of their profile to complete next.
type Suggestion struct {
	Priority string   `json:"priority" doc:"Suggestion priority"            example:"high"`
	Category string   `json:"category" doc:"Profile category label"         example:"Basic Information"`
	Message  string   `json:"message"  doc:"Actionable completion guidance"`
	Fields   []string `json:"fields"   doc:"Field paths to fill in"`
}

// SetupSuggestions is the advisory returned to users who have no profile
// document yet, instead of an error.
func SetupSuggestions() []Suggestion {
	return []Suggestion{{
		Priority: PriorityHigh,
		Category: "Profile Setup",
		Message:  "Please complete your profile setup",
		Fields:   []string{},
	}}
}

// Suggestions derives completion suggestions from a missing-fields report.
// Order is fixed: basic, location, then company or professional depending
// on user type.
func Suggestions(missing Missing, userType string) []Suggestion {
	suggestions := []Suggestion{}

	if len(missing.Basic) > 0 {
		suggestions = append(suggestions, Suggestion{
			Priority: PriorityHigh,
			Category: "Basic Information",
			Message:  "Complete basic information: " + strings.Join(missing.Basic, ", "),
			Fields:   missing.Basic,
		})
	}

	if len(missing.Location) > 0 {
		suggestions = append(suggestions, Suggestion{
			Priority: PriorityHigh,
			Category: "Location",
			Message:  "Add your location details to help others find you",
			Fields:   missing.Location,
		})
	}

	if userType == UserTypeBusiness && len(missing.Company) > 0 {
		suggestions = append(suggestions, Suggestion{
			Priority: PriorityMedium,
			Category: "Company Information",
			Message:  "Provide company details to build trust",
			Fields:   missing.Company,
		})
	}

	if userType == UserTypeVA && len(missing.Professional) > 0 {
		suggestions = append(suggestions, Suggestion{
			Priority: PriorityMedium,
			Category: "Professional Information",
			Message:  "Add your professional details to attract clients",
			Fields:   missing.Professional,
		})
	}

	return suggestions
}
