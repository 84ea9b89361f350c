package saved

import "github.com/linkagehub/marketplace-api/internal/platform/pagination"

// SaveInput for POST /saved
type SaveInput struct {
	Body struct {
		VAID    string `json:"vaId"              minLength:"1" required:"true" doc:"VA to save"             example:"va-123"`
		Notes   string `json:"notes,omitempty"   maxLength:"500"               doc:"Private notes"          example:"Strong bookkeeping background"`
		Context string `json:"context,omitempty" maxLength:"50"                doc:"Where the save happened" example:"search_results"`
	}
}

// ListInput for GET /saved. Numeric and enum-like parameters arrive as
// strings and fall back to defaults when malformed, so stale bookmarked
// URLs never 4xx.
type ListInput struct {
	pagination.Params
	SortBy       string   `query:"sortBy"       doc:"Sort order: saved_date, name, experience or last_active" example:"saved_date"`
	Search       string   `query:"search"       doc:"Free-text search over VA fields" example:"bookkeeping"`
	Status       string   `query:"status"       doc:"Status filter: all, active or inactive" example:"active"`
	Industry     []string `query:"industry"     doc:"Industry filter, any-match"`
	Skills       string   `query:"skills"       doc:"Comma-separated skills, any-match" example:"quickbooks,payroll"`
	RateMin      string   `query:"rateMin"      doc:"Minimum hourly rate"             example:"10"`
	RateMax      string   `query:"rateMax"      doc:"Maximum hourly rate"             example:"50"`
	Availability string   `query:"availability" doc:"Availability filter"             example:"full_time"`
	Timezone     string   `query:"timezone"     doc:"Timezone filter"                 example:"Asia/Manila"`
}

// ExistsInput for GET /saved/exists/{vaId}
type ExistsInput struct {
	VAID string `path:"vaId" doc:"VA to check" example:"va-123"`
}

// UnsaveInput for DELETE /saved/{vaId}
type UnsaveInput struct {
	VAID    string `path:"vaId"     doc:"VA to remove"            example:"va-123"`
	Context string `query:"context" doc:"Where the unsave happened" example:"saved_list"`
}
