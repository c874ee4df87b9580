// Package module holds the minimal modkit module contract
package module

import (
	phttp "prospector/internal/platform/net/http"
)

// Module mirrors the modkit contract. Living here avoids import knots when
// a module also exports its own ports type
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
