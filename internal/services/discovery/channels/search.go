package channels

import (
	"context"
	"strings"
	"sync"
	"time"

	"prospector/internal/core/relevance"
	"prospector/internal/core/webnorm"
	"prospector/internal/platform/logger"
	"prospector/internal/services/discovery/domain"
)

// defaultFetchParallel bounds the per-query content-fetch fan-out. Small on
// purpose: courtesy to target sites and search quota
const defaultFetchParallel = 3

// SearchEngine queries the external search API and converts hits into
// company candidates, optionally scraping and scoring each one
type SearchEngine struct {
	searcher      domain.SearcherPort
	fetcher       domain.FetcherPort
	fetchParallel int
	log           *logger.Logger
}

// NewSearchEngine builds the search-engine channel. fetcher may be nil when
// the scrape path is never used
func NewSearchEngine(searcher domain.SearcherPort, fetcher domain.FetcherPort) *SearchEngine {
	return &SearchEngine{
		searcher:      searcher,
		fetcher:       fetcher,
		fetchParallel: defaultFetchParallel,
		log:           logger.Named("channel.search"),
	}
}

// Kind satisfies Channel
func (s *SearchEngine) Kind() string { return KindSearchEngine }

// Enabled reports whether search API credentials are configured
func (s *SearchEngine) Enabled() bool {
	return s.searcher != nil && s.searcher.Enabled()
}

// Discover runs each query in order against the search API. A search
// failure mid-run returns the candidates gathered so far alongside the
// error; results preserve query-submission order
func (s *SearchEngine) Discover(ctx context.Context, in Input) Output {
	if !s.Enabled() {
		return Output{OK: false, Err: "search api credentials not configured"}
	}

	count := in.ResultsPerQuery
	if count <= 0 {
		count = 10
	}

	var acc []domain.Candidate
	for _, q := range in.Queries {
		// cancellation is checked between queries, never mid-fetch
		if err := ctx.Err(); err != nil {
			return Output{Results: s.selfDedupe(acc), OK: false, Err: err.Error()}
		}

		hits, err := s.searcher.Search(ctx, q, count)
		if err != nil {
			s.log.Warn().Str("query", q).Err(err).Msg("search query failed")
			return Output{Results: s.selfDedupe(acc), OK: false, Err: err.Error()}
		}

		kept := hits[:0:0]
		for _, h := range hits {
			if excludedHost(h.URL) {
				continue
			}
			kept = append(kept, h)
		}

		if in.Scrape && in.Analysis != nil && s.fetcher != nil {
			acc = append(acc, s.scrapeAndScore(ctx, q, kept, *in.Analysis)...)
		} else {
			for i, h := range kept {
				acc = append(acc, quickCandidate(q, i, h))
			}
		}
	}
	return Output{Results: s.selfDedupe(acc), OK: true}
}

// scrapeAndScore fetches the surviving URLs with a bounded fan-out and
// keeps only candidates whose relevance verdict passes. Output order
// follows input order via indexed slots
func (s *SearchEngine) scrapeAndScore(
	ctx context.Context,
	query string,
	hits []domain.SearchResult,
	cfg relevance.Config,
) []domain.Candidate {
	slots := make([]*domain.Candidate, len(hits))

	sem := make(chan struct{}, s.fetchParallel)
	var wg sync.WaitGroup
	for i, h := range hits {
		wg.Add(1)
		go func(i int, h domain.SearchResult) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			content := s.fetcher.Fetch(ctx, h.URL)
			score := relevance.Analyze(content, cfg)
			if !score.Relevant {
				return
			}
			c := scoredCandidate(query, i, h, content, score)
			slots[i] = &c
		}(i, h)
	}
	wg.Wait()

	out := make([]domain.Candidate, 0, len(hits))
	for _, c := range slots {
		if c != nil {
			out = append(out, *c)
		}
	}
	return out
}

// selfDedupe drops duplicate websites (exact, case-insensitive) within this
// channel's own output, keeping the first occurrence
func (s *SearchEngine) selfDedupe(xs []domain.Candidate) []domain.Candidate {
	seen := make(map[string]struct{}, len(xs))
	out := make([]domain.Candidate, 0, len(xs))
	for _, c := range xs {
		key := ""
		if c.Company != nil {
			key = strings.ToLower(strings.TrimSpace(c.Company.Website))
		}
		if key != "" {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}
		out = append(out, c)
	}
	return out
}

func scoredCandidate(
	query string,
	pos int,
	h domain.SearchResult,
	content relevance.Content,
	score relevance.Score,
) domain.Candidate {
	name := strings.TrimSpace(content.CompanyName)
	if name == "" {
		name = CompanyNameFromResult(h.Title, h.Snippet)
	}
	if name == "" {
		name = webnorm.Host(h.URL)
	}

	return domain.Candidate{
		Type: domain.TypeCompany,
		Company: &domain.Company{
			Name:        name,
			Website:     h.URL,
			Industry:    score.Industry,
			Email:       content.Contact.Email,
			Phone:       content.Contact.Phone,
			Services:    content.Services,
			SocialLinks: content.SocialLinks,
		},
		Meta: domain.Meta{
			Source:       KindSearchEngine,
			DiscoveredAt: time.Now().UTC(),
			Query:        query,
			Search:       &domain.SearchMeta{Title: h.Title, URL: h.URL, Snippet: h.Snippet, Position: pos},
			Scrape:       &domain.ScrapeMeta{FetchedURL: h.URL, FetchOK: content.OK, FetchError: content.Err},
			Scoring: &domain.ScoringMeta{
				Score:      score.Total,
				Relevant:   score.Relevant,
				Threshold:  score.Threshold,
				Confidence: string(score.Confidence),
				Industry:   score.Industry,
				Reasons:    score.Reasons,
			},
		},
	}
}

// quickCandidate is the lightweight no-scrape conversion of a search hit
func quickCandidate(query string, pos int, h domain.SearchResult) domain.Candidate {
	name := CompanyNameFromResult(h.Title, h.Snippet)
	if name == "" {
		name = webnorm.Host(h.URL)
	}
	return domain.Candidate{
		Type:    domain.TypeCompany,
		Company: &domain.Company{Name: name, Website: h.URL},
		Meta: domain.Meta{
			Source:       KindSearchEngine,
			DiscoveredAt: time.Now().UTC(),
			Query:        query,
			Search:       &domain.SearchMeta{Title: h.Title, URL: h.URL, Snippet: h.Snippet, Position: pos},
		},
	}
}

// businessSuffixes are trailing legal-form tokens stripped from extracted
// company names
var businessSuffixes = []string{
	"(pty) ltd",
	"pty ltd",
	"pty. ltd.",
	"ltd.",
	"ltd",
	"inc.",
	"inc",
	"llc",
	"cc",
	"plc",
}

// CompanyNameFromResult best-effort extracts a company name from a search
// result title, falling back to the first snippet sentence
func CompanyNameFromResult(title, snippet string) string {
	name := title
	// titles commonly read "Company Name - Tagline" or "Company | Tagline"
	for _, sep := range []string{" - ", " | ", " – ", " — ", " :: "} {
		if i := strings.Index(name, sep); i > 0 {
			name = name[:i]
		}
	}
	name = strings.TrimSpace(name)

	lower := strings.ToLower(name)
	for _, suf := range businessSuffixes {
		if strings.HasSuffix(lower, suf) {
			name = strings.TrimSpace(name[:len(name)-len(suf)])
			name = strings.TrimRight(name, ",.")
			name = strings.TrimSpace(name)
			break
		}
	}

	if name != "" {
		return name
	}

	// fall back to the first snippet sentence
	s := strings.TrimSpace(snippet)
	if s == "" {
		return ""
	}
	if i := strings.IndexAny(s, ".!?"); i > 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
