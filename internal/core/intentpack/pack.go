// Package intentpack loads the embedded intent catalog and resolves intents
// against caller overrides into a concrete discovery configuration.
// Global negative keywords are appended to every intent's excludes at load
package intentpack

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed intents.json
var embedded []byte

// Geography biases scoring toward an intent's home market
type Geography struct {
	PrimaryCountry  string   `json:"primary_country"`
	PriorityRegions []string `json:"priority_regions"`
	BoostFraction   float64  `json:"boost_fraction"`
}

// Limits caps one run's volume and wall clock
type Limits struct {
	MaxCompanies      int `json:"max_companies"`
	MaxLeads          int `json:"max_leads"`
	MaxQueries        int `json:"max_queries"`
	TimeBudgetSeconds int `json:"time_budget_seconds"`
}

// Intent is an immutable discovery template from the catalog
type Intent struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Category        string     `json:"category"`
	Active          bool       `json:"active"`
	Countries       []string   `json:"countries"`
	Queries         []string   `json:"queries"`
	IncludeKeywords []string   `json:"include_keywords"`
	BusinessTypes   []string   `json:"business_types,omitempty"`
	ExcludeKeywords []string   `json:"exclude_keywords"`
	Channels        []string   `json:"channels"`
	Limits          Limits     `json:"limits"`
	Threshold       int        `json:"threshold,omitempty"`
	Geography       *Geography `json:"geography,omitempty"`
}

type rawPack struct {
	Version                int      `json:"version"`
	GlobalNegativeKeywords []string `json:"global_negative_keywords"`
	Intents                []Intent `json:"intents"`
}

// Pack is the compiled catalog. Iteration order is the catalog file order
type Pack struct {
	Version int

	byID  map[string]int
	order []Intent
}

// Load parses and compiles the embedded catalog
func Load() (*Pack, error) {
	var rp rawPack
	if err := json.Unmarshal(embedded, &rp); err != nil {
		return nil, fmt.Errorf("intentpack: parse intents.json: %w", err)
	}

	p := &Pack{
		Version: rp.Version,
		byID:    make(map[string]int, len(rp.Intents)),
		order:   make([]Intent, 0, len(rp.Intents)),
	}
	for _, in := range rp.Intents {
		if in.ID == "" {
			return nil, fmt.Errorf("intentpack: intent with empty id")
		}
		if _, dup := p.byID[in.ID]; dup {
			return nil, fmt.Errorf("intentpack: duplicate intent id %q", in.ID)
		}
		// the global noise list applies to every intent unconditionally
		in.ExcludeKeywords = append(append([]string(nil), in.ExcludeKeywords...), rp.GlobalNegativeKeywords...)
		p.byID[in.ID] = len(p.order)
		p.order = append(p.order, in)
	}
	return p, nil
}

// MustLoad panics on a broken embedded catalog; for wiring paths only
func MustLoad() *Pack {
	p, err := Load()
	if err != nil {
		panic(err)
	}
	return p
}

// Get returns the intent with the given id
func (p *Pack) Get(id string) (Intent, bool) {
	i, ok := p.byID[id]
	if !ok {
		return Intent{}, false
	}
	return p.order[i], true
}

// List returns all intents in catalog order
func (p *Pack) List() []Intent {
	return append([]Intent(nil), p.order...)
}
