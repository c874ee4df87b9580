package modkit

import (
	phttp "prospector/internal/platform/net/http"
)

// Module is the shared surface for modules that mount routes and expose
// ports. Kept tiny so modules stay decoupled
type Module interface {
	// MountRoutes registers HTTP routes on the router seam
	MountRoutes(r phttp.Router)
	// Ports exposes the module port set for cross wiring
	Ports() any

	// Name identifies the module in the registry
	Name() string
}

// Builder constructs a Module from shared deps and options. Modules expose
// New(deps Deps, opts ...Option) Module following this shape
type Builder func(Deps, ...Option) Module
