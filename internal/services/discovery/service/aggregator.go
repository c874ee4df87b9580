// Package service implements the guarded discovery runner and the
// aggregation step between channels and the persistence sink
package service

import (
	"context"
	"fmt"

	"prospector/internal/core/webnorm"
	"prospector/internal/platform/logger"
	"prospector/internal/services/discovery/channels"
	"prospector/internal/services/discovery/domain"
	"prospector/internal/services/discovery/guardrails"
)

// ChannelRun pairs a channel with its shaped input for one run
type ChannelRun struct {
	Ch channels.Channel
	In channels.Input
}

// Collected is the aggregation result across all channels of one run
type Collected struct {
	// Candidates is the deduplicated, order-preserving union
	Candidates []domain.Candidate

	// RawCount is the candidate count before cross-channel dedupe
	RawCount int

	Channels map[string]domain.ChannelStats

	// Stopped is set when the time budget ran out before all channels
	// executed
	Stopped    bool
	StopReason string
}

// Aggregator runs channels sequentially and merges their output. A channel
// failure or panic is recorded against that channel and never aborts the
// remaining ones
type Aggregator struct {
	log *logger.Logger
}

// NewAggregator constructs an aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{log: logger.Named("discovery.aggregator")}
}

// Collect executes the channel runs in order, honoring the budget between
// channels. Channel order determines candidate order, and within a channel
// the channel's own order is preserved
func (a *Aggregator) Collect(ctx context.Context, budget guardrails.Budget, runs []ChannelRun) Collected {
	out := Collected{Channels: make(map[string]domain.ChannelStats, len(runs))}

	var all []domain.Candidate
	for _, cr := range runs {
		if budget.Expired() {
			out.Stopped = true
			out.StopReason = "time budget exhausted"
			break
		}
		kind := cr.Ch.Kind()
		res := a.safeDiscover(ctx, cr)

		st := domain.ChannelStats{Results: len(res.Results)}
		if !res.OK {
			st.Error = res.Err
			a.log.Warn().Str("channel", kind).Str("error", res.Err).Msg("channel reported an error")
		}
		out.Channels[kind] = st
		all = append(all, res.Results...)
	}

	out.RawCount = len(all)
	out.Candidates = Dedupe(all)
	return out
}

// safeDiscover converts a channel panic into a failed output
func (a *Aggregator) safeDiscover(ctx context.Context, cr ChannelRun) (out channels.Output) {
	defer func() {
		if p := recover(); p != nil {
			a.log.Error().Str("channel", cr.Ch.Kind()).Msg("channel panicked")
			out = channels.Output{OK: false, Err: fmt.Sprintf("channel panic: %v", p)}
		}
	}()
	return cr.Ch.Discover(ctx, cr.In)
}

// Dedupe removes exact-match duplicates across channels, keeping the first
// occurrence. Keys are type-prefixed so a company and a contact sharing a
// name never collide
func Dedupe(xs []domain.Candidate) []domain.Candidate {
	seen := make(map[string]struct{}, len(xs))
	out := make([]domain.Candidate, 0, len(xs))
	for _, c := range xs {
		key := dedupeKey(c)
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

// dedupeKey builds the exact-match identity for a candidate; "" means the
// candidate has no usable identity and is always kept
func dedupeKey(c domain.Candidate) string {
	switch c.Type {
	case domain.TypeCompany:
		if c.Company == nil {
			return ""
		}
		return companyKey(c.Company)
	case domain.TypeContact:
		if c.Contact == nil {
			return ""
		}
		return contactKey(c.Contact)
	case domain.TypeLead:
		if c.Lead == nil {
			return ""
		}
		if c.Lead.Contact != nil {
			if k := contactKey(c.Lead.Contact); k != "" {
				return "lead:" + k
			}
		}
		if c.Lead.Company != nil {
			if k := companyKey(c.Lead.Company); k != "" {
				return "lead:" + k
			}
		}
		return ""
	default:
		return ""
	}
}

func companyKey(co *domain.Company) string {
	if w := webnorm.Website(co.Website); w != "" {
		return "company:web:" + w
	}
	if n := webnorm.Name(co.Name); n != "" {
		return "company:name:" + n
	}
	return ""
}

func contactKey(ct *domain.Contact) string {
	if e := webnorm.Email(ct.Email); e != "" {
		return "contact:email:" + e
	}
	if n := webnorm.Name(ct.Name); n != "" {
		return "contact:name:" + n
	}
	return ""
}
