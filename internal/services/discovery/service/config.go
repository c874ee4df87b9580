package service

import (
	"time"

	"prospector/internal/core/intentpack"
	"prospector/internal/services/discovery/domain"
)

// Config for the discovery runner
type Config struct {
	// Enabled is the kill switch. When false every run request is refused
	// before any record is written
	Enabled bool

	// ResultsPerQuery bounds the hits requested per search query
	ResultsPerQuery int

	// Scrape turns on the fetch+score path for channels that support it
	Scrape bool

	// DefaultChannels apply when neither the request nor the intent names
	// any
	DefaultChannels []string

	// DefaultBudget applies when neither the request, the intent, nor the
	// mode base sets a time budget
	DefaultBudget time.Duration

	// Per-mode base limits; the precedence is
	// request override > intent > mode base > hard default
	ManualLimits intentpack.Limits
	DailyLimits  intentpack.Limits
	TestLimits   intentpack.Limits
}

// BaseLimits returns the mode's base limit policy
func (c Config) BaseLimits(mode domain.RunMode) intentpack.Limits {
	switch mode {
	case domain.ModeDaily:
		return c.DailyLimits
	case domain.ModeTest:
		return c.TestLimits
	default:
		return c.ManualLimits
	}
}
