// Package module implements the discovery service module
package module

import (
	"context"

	"prospector/internal/adapters/scrape"
	"prospector/internal/adapters/search"
	"prospector/internal/core/intentpack"
	"prospector/internal/modkit"
	"prospector/internal/modkit/httpkit"
	"prospector/internal/modkit/repokit"
	"prospector/internal/services/discovery/channels"
	"prospector/internal/services/discovery/domain"
	"prospector/internal/services/discovery/repo"
	"prospector/internal/services/discovery/service"
)

// Ports exposed by the discovery module
type Ports struct {
	Runner  domain.RunnerPort
	Reader  domain.RunsReaderPort
	Intents *intentpack.Pack
}

// Module implements the discovery service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new discovery module. The persistence sink is injected
// via WithPorts(discovery/domain.Ports)
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("discovery"),
	}, opts...)...)

	ports, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("discovery module: expected WithPorts(discovery/domain.Ports)")
	}
	if ports.Sink == nil {
		panic("discovery module: Ports missing Sink")
	}

	cfg := FromConfig(deps.Cfg)

	searcher := search.New(search.FromConfig(deps.Cfg))
	fetcher := scrape.New(scrape.FromConfig(deps.Cfg))

	se := channels.NewSearchEngine(searcherShim{searcher}, fetcher)
	chs := []channels.Channel{
		se,
		channels.NewKeyword(se),
		channels.NewProfile(cfg.ProfileEnabled),
		channels.NewSocial(cfg.SocialEnabled),
	}

	storage := repokit.MustBind(repo.NewPG(), deps.PG)
	pack := intentpack.MustLoad()

	runner := service.NewRunner(
		service.Config{
			Enabled:         cfg.Enabled,
			ResultsPerQuery: cfg.ResultsPerQuery,
			Scrape:          cfg.Scrape,
			DefaultChannels: cfg.Channels,
			DefaultBudget:   cfg.Budget,
			ManualLimits:    cfg.ManualLimits,
			DailyLimits:     cfg.DailyLimits,
			TestLimits:      cfg.TestLimits,
		},
		pack,
		storage,
		ports.Sink,
		chs,
	)

	m := &Module{deps: deps}
	m.ports = Ports{
		Runner:  runner,
		Reader:  storage,
		Intents: pack,
	}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "discovery" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}

// searcherShim adapts the search client to the domain port
type searcherShim struct{ c *search.Client }

func (s searcherShim) Enabled() bool { return s.c.Enabled() }

func (s searcherShim) Search(ctx context.Context, query string, count int) ([]domain.SearchResult, error) {
	hits, err := s.c.Search(ctx, query, count)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SearchResult, len(hits))
	for i, h := range hits {
		out[i] = domain.SearchResult{Title: h.Title, URL: h.URL, Snippet: h.Snippet}
	}
	return out, nil
}
