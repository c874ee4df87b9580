package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"prospector/internal/core/intentpack"
	"prospector/internal/core/relevance"
	perr "prospector/internal/platform/errors"
	"prospector/internal/platform/logger"
	pnet "prospector/internal/platform/net"
	"prospector/internal/services/discovery/channels"
	"prospector/internal/services/discovery/domain"
	"prospector/internal/services/discovery/guardrails"
)

// Runner executes guarded discovery runs. Implements domain.RunnerPort
type Runner struct {
	cfg   Config
	pack  *intentpack.Pack
	runs  domain.RunsStorage
	sink  domain.SinkPort
	chans map[string]channels.Channel
	agg   *Aggregator
	log   *logger.Logger
}

// NewRunner constructs the runner. chans are indexed by kind; a resolved
// channel kind with no registered implementation is skipped at run time
func NewRunner(
	cfg Config,
	pack *intentpack.Pack,
	runs domain.RunsStorage,
	sink domain.SinkPort,
	chans []channels.Channel,
) *Runner {
	byKind := make(map[string]channels.Channel, len(chans))
	for _, ch := range chans {
		byKind[ch.Kind()] = ch
	}
	return &Runner{
		cfg:   cfg,
		pack:  pack,
		runs:  runs,
		sink:  sink,
		chans: byKind,
		agg:   NewAggregator(),
		log:   logger.Named("discovery.runner"),
	}
}

// Run executes one guarded discovery run end to end. Refusals (kill switch,
// unknown or inactive intent) return an error before any record exists;
// anything after the run record is created finishes with a terminal status
func (r *Runner) Run(ctx context.Context, req domain.RunRequest) (report domain.RunReport, err error) {
	if !r.cfg.Enabled {
		return domain.RunReport{}, perr.Forbiddenf("discovery runs are disabled")
	}

	intent, ok := r.pack.Get(req.IntentID)
	if !ok {
		return domain.RunReport{}, perr.NotFoundf("unknown intent %q", req.IntentID)
	}
	if !intent.Active {
		return domain.RunReport{}, perr.InvalidArgf("intent %q is inactive", req.IntentID)
	}

	mode := req.Mode
	if mode == "" {
		mode = domain.ModeManual
	}
	resolved := r.resolve(intent, req, mode)

	run := domain.Run{
		ID:         uuid.NewString(),
		Status:     domain.RunPending,
		DryRun:     req.DryRun,
		Mode:       mode,
		Trigger:    req.Trigger,
		IntentID:   intent.ID,
		IntentName: intent.Name,
		CreatedAt:  time.Now().UTC(),
	}

	// dry runs swap only the sink; the run record is still written so every
	// invocation stays auditable
	sink := r.sink
	if req.DryRun {
		sink = dryRunSink{}
	}
	runs := r.runs

	if err := runs.Create(ctx, run); err != nil {
		return domain.RunReport{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "create run record")
	}

	ctx = pnet.WithRequest(ctx, pnet.RequestID(ctx), run.ID)
	log := r.log.With().Str("run_id", run.ID).Str("intent", intent.ID).Logger()
	log.Info().
		Bool("dry_run", req.DryRun).
		Str("mode", string(mode)).
		Int("queries", len(resolved.Queries)).
		Msg("discovery run starting")

	started := time.Now().UTC()
	stats := domain.RunStats{
		Channels: map[string]domain.ChannelStats{},
		Limits:   resolved.Limits,
		Config:   &resolved,
	}
	status := domain.RunCompleted

	// single finalize point; a panic anywhere below lands here
	defer func() {
		if p := recover(); p != nil {
			status = domain.RunFailed
			stats.Errors = append(stats.Errors, fmt.Sprintf("panic: %v", p))
			err = perr.Internalf("discovery run panicked: %v", p)
		}
		stats.DurationMS = time.Since(started).Milliseconds()
		finished := time.Now().UTC()
		// the run context may be dead; the record must still finish
		if err := runs.Finish(context.WithoutCancel(ctx), run.ID, status, finished, stats); err != nil {
			log.Error().Err(err).Msg("finish run record failed")
		}
		log.Info().
			Str("status", string(status)).
			Int64("duration_ms", stats.DurationMS).
			Int("candidates", stats.TotalAfterDedupe).
			Msg("discovery run finished")
		report = domain.RunReport{RunID: run.ID, Status: status, DryRun: req.DryRun, Stats: stats}
	}()

	// the finalize defer is live from here on, so a record that cannot move
	// to running still ends in a terminal state
	if err := runs.MarkRunning(ctx, run.ID, started); err != nil {
		status = domain.RunFailed
		stats.Errors = append(stats.Errors, fmt.Sprintf("mark running: %v", err))
		return report, perr.Wrap(err, perr.ErrorCodeUnavailable, "mark run running")
	}

	budget := guardrails.NewBudget(time.Duration(resolved.Limits.TimeBudgetSeconds) * time.Second)
	runCtx, cancel := budget.Context(ctx)
	defer cancel()

	col := r.agg.Collect(runCtx, budget, r.channelRuns(resolved))
	stats.Channels = col.Channels
	stats.TotalBeforeDedupe = col.RawCount
	stats.TotalAfterDedupe = len(col.Candidates)
	if col.Stopped {
		stats.StoppedEarly = true
		stats.StopReason = col.StopReason
	}
	for kind, st := range col.Channels {
		if st.Error != "" {
			stats.Errors = append(stats.Errors, fmt.Sprintf("channel %s: %s", kind, st.Error))
		}
	}

	// caller cancellation wins over every other verdict
	if ctx.Err() != nil {
		status = domain.RunCancelled
		return report, nil
	}
	if budget.Expired() && !stats.StoppedEarly {
		stats.StoppedEarly = true
		stats.StopReason = "time budget exhausted"
	}

	rep := sink.Persist(context.WithoutCancel(ctx), col.Candidates)
	mergeSinkReport(&stats, rep)

	observeLimits(&stats, resolved.Limits)

	status = verdict(stats, rep)
	return report, nil
}

// resolve merges the intent with the request's overrides under the mode's
// base limits
func (r *Runner) resolve(intent intentpack.Intent, req domain.RunRequest, mode domain.RunMode) intentpack.Resolved {
	o := intentpack.Overrides{
		Countries:     req.Countries,
		Queries:       req.Queries,
		ExtraKeywords: req.Keywords,
		Channels:      req.Channels,
		Limits: intentpack.Limits{
			MaxCompanies: req.Limits.MaxCompanies,
			MaxLeads:     req.Limits.MaxLeads,
			MaxQueries:   req.Limits.MaxQueries,
		},
	}
	if req.Budget > 0 {
		o.Limits.TimeBudgetSeconds = int(req.Budget / time.Second)
	}

	base := r.cfg.BaseLimits(mode)
	if base.TimeBudgetSeconds == 0 && r.cfg.DefaultBudget > 0 {
		base.TimeBudgetSeconds = int(r.cfg.DefaultBudget / time.Second)
	}
	resolved := intentpack.Resolve(intent, o, base)
	if len(resolved.Channels) == 0 {
		resolved.Channels = append([]string(nil), r.cfg.DefaultChannels...)
	}
	return resolved
}

// channelRuns shapes per-channel input from the resolved configuration.
// The keyword channel receives the include keywords as its queries; every
// other channel receives the expanded query list
func (r *Runner) channelRuns(resolved intentpack.Resolved) []ChannelRun {
	analysis := &relevance.Config{
		PositiveKeywords: resolved.IncludeKeywords,
		NegativeKeywords: resolved.ExcludeKeywords,
		BusinessTypes:    resolved.BusinessTypes,
		Threshold:        resolved.Threshold,
	}
	if resolved.Geography != nil {
		analysis.PriorityRegions = resolved.Geography.PriorityRegions
	}

	out := make([]ChannelRun, 0, len(resolved.Channels))
	for _, kind := range resolved.Channels {
		ch, ok := r.chans[kind]
		if !ok {
			// unknown kinds are skipped, not failed
			r.log.Warn().Str("kind", kind).Msg("no channel registered for kind")
			continue
		}
		queries := resolved.Queries
		if kind == channels.KindKeyword {
			queries = resolved.IncludeKeywords
			if len(queries) > resolved.Limits.MaxQueries {
				queries = queries[:resolved.Limits.MaxQueries]
			}
		}
		out = append(out, ChannelRun{
			Ch: ch,
			In: channels.Input{
				Queries:         queries,
				ResultsPerQuery: r.cfg.ResultsPerQuery,
				Scrape:          r.cfg.Scrape,
				Analysis:        analysis,
			},
		})
	}
	return out
}

// mergeSinkReport folds the sink's counters and errors into the run stats
func mergeSinkReport(stats *domain.RunStats, rep domain.SinkReport) {
	stats.CompaniesCreated = rep.CompaniesCreated
	stats.CompaniesSkipped = rep.CompaniesSkipped
	stats.ContactsCreated = rep.ContactsCreated
	stats.ContactsSkipped = rep.ContactsSkipped
	stats.LeadsCreated = rep.LeadsCreated
	stats.LeadsSkipped = rep.LeadsSkipped
	for _, e := range rep.Errors {
		stats.Errors = append(stats.Errors, fmt.Sprintf("persist %s: %s", e.ResultType, e.Err))
	}
}

// observeLimits records, after the fact, whether the run created as many
// records as its caps allow. Skipped duplicates do not count against a cap.
// Limits are observed rather than enforced mid-run
func observeLimits(stats *domain.RunStats, limits intentpack.Limits) {
	if stats.StopReason != "" {
		return
	}
	switch {
	case limits.MaxCompanies > 0 && stats.CompaniesCreated >= limits.MaxCompanies:
		stats.StoppedEarly = true
		stats.StopReason = "company limit reached"
	case limits.MaxLeads > 0 && stats.LeadsCreated >= limits.MaxLeads:
		stats.StoppedEarly = true
		stats.StopReason = "lead limit reached"
	}
}

// verdict picks the terminal status for a run that was neither cancelled
// nor panicked. Only the primary search source escalates the status; errors
// from other channels are recorded in stats but the run still completes
func verdict(stats domain.RunStats, rep domain.SinkReport) domain.RunStatus {
	if !rep.Success {
		return domain.RunCompletedWithErrors
	}
	// the keyword channel rides on the search source, so its failures count
	for _, kind := range []string{channels.KindSearchEngine, channels.KindKeyword} {
		if st, ok := stats.Channels[kind]; ok && st.Error != "" {
			return domain.RunCompletedWithErrors
		}
	}
	return domain.RunCompleted
}
