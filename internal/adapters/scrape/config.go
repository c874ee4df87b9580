package scrape

import (
	"time"

	"prospector/internal/platform/config"
)

// Config for the page fetcher
type Config struct {
	Timeout   time.Duration
	MaxBody   int64
	UserAgent string
}

// FromConfig extracts Config from the given config.Conf
func FromConfig(cfg config.Conf) Config {
	sc := cfg.Prefix("CORE_SCRAPE_")
	return Config{
		Timeout:   sc.MayDuration("TIMEOUT", 10*time.Second),
		MaxBody:   int64(sc.MayInt("MAX_BODY", 2<<20)),
		UserAgent: sc.MayString("USER_AGENT", "Mozilla/5.0 (compatible; ProspectorBot/1.0)"),
	}
}
