// Package channels implements the pluggable candidate sources a discovery
// run draws from
package channels

import (
	"context"

	"prospector/internal/core/relevance"
	"prospector/internal/core/webnorm"
	"prospector/internal/services/discovery/domain"
)

// Channel kinds
const (
	KindSearchEngine = "search_engine"
	KindKeyword      = "keyword"
	KindProfile      = "profile"
	KindSocial       = "social"
)

// Input carries the resolved per-channel work for one run
type Input struct {
	// Queries are the search criteria; the keyword channel treats them
	// as raw keywords
	Queries []string

	// ResultsPerQuery bounds the hits requested per query
	ResultsPerQuery int

	// Scrape turns on the fetch+score path when Analysis is set
	Scrape   bool
	Analysis *relevance.Config
}

// Output is one channel's contribution. Err is non-empty on a hard
// configuration or availability failure; Results may still carry the
// candidates gathered before the failure
type Output struct {
	Results []domain.Candidate
	OK      bool
	Err     string
}

// Channel is a named source of candidates. Discover must not panic and
// must honor ctx between units of work, never mid-fetch
type Channel interface {
	Kind() string
	Enabled() bool
	Discover(ctx context.Context, in Input) Output
}

// excludedDomains hosts known to never be a company's own site: social
// networks, job boards, marketplaces, reference sites
var excludedDomains = []string{
	"facebook.com",
	"instagram.com",
	"twitter.com",
	"x.com",
	"linkedin.com",
	"youtube.com",
	"tiktok.com",
	"pinterest.com",
	"wikipedia.org",
	"wiktionary.org",
	"indeed.com",
	"glassdoor.com",
	"pnet.co.za",
	"careers24.com",
	"careerjunction.co.za",
	"gumtree.co.za",
	"olx.co.za",
	"amazon.com",
	"takealot.com",
	"ebay.com",
	"tripadvisor.com",
	"yelp.com",
	"yellowpages.co.za",
	"crunchbase.com",
	"medium.com",
	"reddit.com",
	"quora.com",
}

// excludedHost reports whether a result URL points at a known non-company
// domain
func excludedHost(rawURL string) bool {
	host := webnorm.Host(rawURL)
	if host == "" {
		return false
	}
	for _, d := range excludedDomains {
		if webnorm.HostMatches(host, d) {
			return true
		}
	}
	return false
}
