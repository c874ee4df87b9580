package module

import (
	"time"

	"prospector/internal/core/intentpack"
	"prospector/internal/platform/config"
)

// Options holds configuration settings for the discovery module
type Options struct {
	// Enabled is the kill switch for all discovery runs
	Enabled bool

	Scrape          bool
	ResultsPerQuery int
	Channels        []string
	Budget          time.Duration

	ManualLimits intentpack.Limits
	DailyLimits  intentpack.Limits
	TestLimits   intentpack.Limits

	ProfileEnabled bool
	SocialEnabled  bool
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	df := cfg.Prefix("CORE_DISCOVERY_")
	return Options{
		Enabled:         df.MayBool("ENABLED", true),
		Scrape:          df.MayBool("SCRAPE", true),
		ResultsPerQuery: df.MayInt("RESULTS_PER_QUERY", 10),
		Channels:        df.MayCSV("CHANNELS", []string{"search_engine", "keyword"}),
		Budget:          df.MayDuration("BUDGET", 2*time.Minute),
		ManualLimits: intentpack.Limits{
			MaxCompanies: df.MayInt("MANUAL_MAX_COMPANIES", 10),
			MaxLeads:     df.MayInt("MANUAL_MAX_LEADS", 10),
			MaxQueries:   df.MayInt("MANUAL_MAX_QUERIES", 3),
		},
		DailyLimits: intentpack.Limits{
			MaxCompanies: df.MayInt("DAILY_MAX_COMPANIES", 30),
			MaxLeads:     df.MayInt("DAILY_MAX_LEADS", 30),
			MaxQueries:   df.MayInt("DAILY_MAX_QUERIES", 5),
		},
		TestLimits: intentpack.Limits{
			MaxCompanies: df.MayInt("TEST_MAX_COMPANIES", 3),
			MaxLeads:     df.MayInt("TEST_MAX_LEADS", 3),
			MaxQueries:   df.MayInt("TEST_MAX_QUERIES", 1),
		},
		ProfileEnabled: df.MayBool("PROFILE_ENABLED", false),
		SocialEnabled:  df.MayBool("SOCIAL_ENABLED", false),
	}
}
