package channels

import (
	"context"

	"prospector/internal/services/discovery/domain"
)

// Keyword expands raw keyword terms into search queries by delegating to
// the search-engine channel, then relabels provenance so downstream
// consumers see the keyword channel as the source
type Keyword struct {
	search *SearchEngine
}

// NewKeyword builds the keyword channel on top of a search-engine channel
func NewKeyword(search *SearchEngine) *Keyword {
	return &Keyword{search: search}
}

// Kind satisfies Channel
func (k *Keyword) Kind() string { return KindKeyword }

// Enabled requires the underlying search-engine channel
func (k *Keyword) Enabled() bool {
	return k.search != nil && k.search.Enabled()
}

// Discover treats the input queries as raw keywords, one search query per
// keyword. Each candidate's original provenance is preserved under
// Meta.Upstream before the source is rewritten
func (k *Keyword) Discover(ctx context.Context, in Input) Output {
	if !k.Enabled() {
		return Output{OK: false, Err: "keyword channel requires the search engine channel; search api credentials not configured"}
	}

	out := k.search.Discover(ctx, in)
	for i := range out.Results {
		m := &out.Results[i].Meta
		m.Upstream = &domain.UpstreamMeta{Source: m.Source, Query: m.Query}
		m.Source = KindKeyword
	}
	return out
}
