package saved

import "github.com/linkagehub/marketplace-api/internal/api"

// SaveOutput for POST /saved. Status is 201 for a new entry and 200 when
// the VA was already saved.
type SaveOutput struct {
	Status int
	Body   api.Envelope[SavedVA]
}

// ListOutput for GET /saved
type ListOutput struct {
	Body api.Envelope[[]SavedVA]
}

// CountOutput for GET /saved/count
type CountOutput struct {
	Body api.Envelope[CountData]
}

// ExistsOutput for GET /saved/exists/{vaId}
type ExistsOutput struct {
	Body api.Envelope[ExistsData]
}

// UnsaveOutput for DELETE /saved/{vaId}
type UnsaveOutput struct {
	Body api.Envelope[struct{}]
}
