// Package domain holds DTOs for the discovery runs API
package domain

import (
	"time"

	discdom "prospector/internal/services/discovery/domain"
)

// InvokeRequest starts one discovery run
type InvokeRequest struct {
	IntentID string `json:"intent_id" validate:"required,min=1,max=64"`
	Mode     string `json:"mode,omitempty" validate:"omitempty,oneof=manual daily test"`
	DryRun   bool   `json:"dry_run,omitempty"`

	// overrides; empty means "use the intent"
	Countries []string `json:"countries,omitempty" validate:"omitempty,max=10,dive,country_code"`
	Keywords  []string `json:"keywords,omitempty" validate:"omitempty,max=20,dive,min=1,max=100"`
	Channels  []string `json:"channels,omitempty" validate:"omitempty,max=4,dive,oneof=search_engine keyword profile social"`
	Queries   []string `json:"queries,omitempty" validate:"omitempty,max=20,dive,min=1,max=200"`

	MaxCompanies  int `json:"max_companies,omitempty" validate:"omitempty,min=1,max=500"`
	MaxLeads      int `json:"max_leads,omitempty" validate:"omitempty,min=1,max=500"`
	MaxQueries    int `json:"max_queries,omitempty" validate:"omitempty,min=1,max=50"`
	BudgetSeconds int `json:"budget_seconds,omitempty" validate:"omitempty,min=5,max=3600"`
}

// ToRunRequest maps the DTO onto the discovery run request
func (in InvokeRequest) ToRunRequest(trigger string) discdom.RunRequest {
	return discdom.RunRequest{
		DryRun:    in.DryRun,
		Mode:      discdom.RunMode(in.Mode),
		Trigger:   trigger,
		IntentID:  in.IntentID,
		Countries: in.Countries,
		Keywords:  in.Keywords,
		Channels:  in.Channels,
		Queries:   in.Queries,
		Limits: discdom.LimitOverrides{
			MaxCompanies: in.MaxCompanies,
			MaxLeads:     in.MaxLeads,
			MaxQueries:   in.MaxQueries,
		},
		Budget: time.Duration(in.BudgetSeconds) * time.Second,
	}
}

// Ports carries the discovery ports the runs API mounts over
type Ports struct {
	Runner discdom.RunnerPort
	Reader discdom.RunsReaderPort
}
