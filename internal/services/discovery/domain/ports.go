package domain

import (
	"context"
	"time"

	"prospector/internal/core/relevance"
)

// SearchResult is one hit from the external search API
type SearchResult struct {
	Title   string
	URL     string
	Snippet string
}

// SearcherPort is the external search API seam. Enabled is false when
// credentials are absent
type SearcherPort interface {
	Enabled() bool
	Search(ctx context.Context, query string, count int) ([]SearchResult, error)
}

// FetcherPort retrieves a URL and extracts structured signals. It never
// returns a Go error; failures are reported inside the Content
type FetcherPort interface {
	Fetch(ctx context.Context, url string) relevance.Content
}

// SinkError is a per-candidate persistence failure
type SinkError struct {
	ResultType ResultType `json:"result_type"`
	Err        string     `json:"error"`
}

// SinkReport is what the persistence sink hands back for one batch
type SinkReport struct {
	CompaniesCreated int         `json:"companies_created"`
	CompaniesSkipped int         `json:"companies_skipped"`
	ContactsCreated  int         `json:"contacts_created"`
	ContactsSkipped  int         `json:"contacts_skipped"`
	LeadsCreated     int         `json:"leads_created"`
	LeadsSkipped     int         `json:"leads_skipped"`
	Errors           []SinkError `json:"errors,omitempty"`
	Success          bool        `json:"success"`
}

// SinkPort durably stores candidates. Implementations must be idempotent
// per record and process company -> contact -> lead so cross-references
// resolve within one batch
type SinkPort interface {
	Persist(ctx context.Context, candidates []Candidate) SinkReport
}

// RunsStorage persists discovery runs
type RunsStorage interface {
	Create(ctx context.Context, run Run) error
	MarkRunning(ctx context.Context, id string, at time.Time) error
	Finish(ctx context.Context, id string, status RunStatus, at time.Time, stats RunStats) error
	Get(ctx context.Context, id string) (Run, error)
	Recent(ctx context.Context, limit int) ([]Run, error)
}

// RunRequest invokes one guarded discovery run
type RunRequest struct {
	DryRun    bool
	Mode      RunMode
	Trigger   string
	IntentID  string
	Countries []string
	Keywords  []string
	Channels  []string
	Queries   []string
	Limits    LimitOverrides
	Budget    time.Duration
}

// LimitOverrides carries caller limit overrides; zero means "not set"
type LimitOverrides struct {
	MaxCompanies int
	MaxLeads     int
	MaxQueries   int
}

// RunReport is the invocation result surface
type RunReport struct {
	RunID  string    `json:"run_id"`
	Status RunStatus `json:"status"`
	DryRun bool      `json:"dry_run"`
	Stats  RunStats  `json:"stats"`
}

// RunnerPort executes guarded discovery runs
type RunnerPort interface {
	Run(ctx context.Context, req RunRequest) (RunReport, error)
}

// RunsReaderPort exposes run lookups to the API surface
type RunsReaderPort interface {
	Get(ctx context.Context, id string) (Run, error)
	Recent(ctx context.Context, limit int) ([]Run, error)
}

// Ports carries the cross-module dependencies the discovery module expects
// via WithPorts
type Ports struct {
	Sink SinkPort
}
