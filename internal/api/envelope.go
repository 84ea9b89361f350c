package api

// Envelope is the response wrapper shared by every endpoint.
// success: true on 2xx responses, false otherwise.
// data: the primary response payload (omitted for errors and empty responses).
// pagination: page metadata, present only on list responses.
// error: populated only on failures.
type Envelope[T any] struct {
	Success    bool       `json:"success"              doc:"Whether the request succeeded"`
	Message    string     `json:"message,omitempty"    doc:"Optional human-readable status message"`
	Data       *T         `json:"data,omitempty"       doc:"Response payload"`
	Pagination *Page      `json:"pagination,omitempty" doc:"Page metadata for list responses"`
	Error      *ErrorBody `json:"error,omitempty"      doc:"Error details, present on failures"`
}

// Page describes offset pagination metadata for list responses.
type Page struct {
	Page  int `json:"page"  doc:"Current page number (1-based)" example:"1"`
	Limit int `json:"limit" doc:"Items per page"                example:"20"`
	Total int `json:"total" doc:"Total item count"              example:"42"`
	Pages int `json:"pages" doc:"Total page count"              example:"3"`
}

// NewPage computes page metadata from a page/limit pair and a total count.
func NewPage(page, limit, total int) *Page {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return &Page{Page: page, Limit: limit, Total: total, Pages: pages}
}

// ErrorBody describes an error in a predictable structured format.
type ErrorBody struct {
	Code    string       `json:"code"              doc:"Machine-readable error code"  example:"NOT_FOUND"`
	Message string       `json:"message"           doc:"Human-readable error message" example:"resource not found"`
	Details []FieldIssue `json:"details,omitempty" doc:"Field-level error details"`
}

// FieldIssue gives field-level or contextual error information.
type FieldIssue struct {
	Field string `json:"field,omitempty" doc:"Field the issue refers to"`
	Issue string `json:"issue"           doc:"Description of the issue"`
}

// Success constructs a success envelope.
func Success[T any](data T) Envelope[T] {
	d := data
	return Envelope[T]{Success: true, Data: &d}
}

// SuccessMessage constructs a success envelope with a status message.
func SuccessMessage[T any](data T, message string) Envelope[T] {
	env := Success(data)
	env.Message = message
	return env
}

// SuccessPage constructs a success envelope carrying pagination metadata.
func SuccessPage[T any](data T, page *Page) Envelope[T] {
	d := data
	return Envelope[T]{Success: true, Data: &d, Pagination: page}
}

// Failure constructs an error envelope with no data.
func Failure[T any](code, msg string, details []FieldIssue) Envelope[T] {
	var clonedDetails []FieldIssue
	if len(details) > 0 {
		clonedDetails = make([]FieldIssue, len(details))
		copy(clonedDetails, details)
	}
	return Envelope[T]{
		Success: false,
		Error: &ErrorBody{
			Code:    code,
			Message: msg,
			Details: clonedDetails,
		},
	}
}
