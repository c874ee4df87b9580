// Package module implements the prospects service module
package module

import (
	"prospector/internal/modkit"
	"prospector/internal/modkit/httpkit"
	"prospector/internal/modkit/repokit"
	discdom "prospector/internal/services/discovery/domain"
	"prospector/internal/services/prospects/repo"
	"prospector/internal/services/prospects/service"
)

// Ports exposed by the prospects module
type Ports struct {
	Sink discdom.SinkPort
}

// Module implements the prospects service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new prospects module
func New(deps modkit.Deps) *Module {
	storage := repokit.MustBind(repo.NewPG(), deps.PG)

	m := &Module{deps: deps}
	m.ports = Ports{Sink: service.New(storage)}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "prospects" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}
