package search

import (
	"time"

	"prospector/internal/platform/config"
)

// Config for the search API client
type Config struct {
	// APIKey authenticates against the search API; empty disables the
	// client entirely
	APIKey string

	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// FromConfig extracts Config from the given config.Conf
func FromConfig(cfg config.Conf) Config {
	sc := cfg.Prefix("SERVICE_SEARCH_")
	return Config{
		APIKey:     sc.MayString("API_KEY", ""),
		BaseURL:    sc.MayString("BASE_URL", "https://google.serper.dev"),
		Timeout:    sc.MayDuration("TIMEOUT", 15*time.Second),
		MaxRetries: sc.MayInt("MAX_RETRIES", 2),
	}
}
