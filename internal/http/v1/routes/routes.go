// Package routes wires the v1 API surface.
package routes

import (
	"github.com/danielgtaylor/huma/v2"

	completionhandler "github.com/linkagehub/marketplace-api/internal/http/v1/completion"
	"github.com/linkagehub/marketplace-api/internal/http/v1/health"
	savedhandler "github.com/linkagehub/marketplace-api/internal/http/v1/saved"
	"github.com/linkagehub/marketplace-api/internal/platform/auth"
	savedsvc "github.com/linkagehub/marketplace-api/internal/service/saved"
)

// Deps carries everything the route tree needs.
type Deps struct {
	Verifier auth.Verifier
	Checker  *completionhandler.Checker
	Saved    *savedsvc.Service
	Version  string
}

// Register wires all HTTP routes into the provided API router. Middleware
// order matters: auth resolves the principal before the completion gate
// and warning middleware read it.
func Register(api huma.API, deps Deps) {
	api.UseMiddleware(auth.NewAuthMiddleware(api, deps.Verifier))
	api.UseMiddleware(completionhandler.NewGateMiddleware(deps.Checker))
	api.UseMiddleware(completionhandler.NewWarningMiddleware(deps.Checker))

	health.Register(api, deps.Version)
	completionhandler.Register(api, deps.Checker)
	savedhandler.Register(api, deps.Saved)
}
