// Package health exposes the unauthenticated health probe.
package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/linkagehub/marketplace-api/internal/api"
)

// Data is the health probe payload.
type Data struct {
	Status  string `json:"status"  doc:"Service status"  example:"ok"`
	Version string `json:"version" doc:"Running version" example:"1.2.3"`
}

// Output for GET /health
type Output struct {
	Body api.Envelope[Data]
}

// Register wires the health endpoint. No auth: load balancers probe it.
func Register(humaAPI huma.API, version string) {
	huma.Get(humaAPI, "/health", func(_ context.Context, _ *struct{}) (*Output, error) {
		return &Output{
			Body: api.Success(Data{Status: "ok", Version: version}),
		}, nil
	})
}
