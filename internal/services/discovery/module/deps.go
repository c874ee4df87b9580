package module

import (
	"prospector/internal/modkit"
	mmodule "prospector/internal/modkit/module"
	"prospector/internal/services/discovery/domain"
)

// WithSinkFrom lets callers pass the prospects module without exposing
// MustPortsOf in main
func WithSinkFrom(prospects mmodule.Module) modkit.Option {
	return modkit.WithPorts(domain.Ports{
		Sink: mmodule.MustPortsOf[domain.SinkPort](prospects),
	})
}
