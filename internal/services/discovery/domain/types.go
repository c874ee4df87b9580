// Package domain defines the candidate union, discovery metadata, and run
// types for the discovery service
package domain

import (
	"time"

	"prospector/internal/core/intentpack"
)

// ResultType discriminates the candidate union
type ResultType string

// Candidate variants
const (
	TypeCompany ResultType = "company"
	TypeContact ResultType = "contact"
	TypeLead    ResultType = "lead"
)

// Company is an unpersisted company candidate
type Company struct {
	Name             string
	Website          string
	Industry         string
	Country          string
	Email            string
	Phone            string
	Services         []string
	IndustriesServed []string
	Locations        []string
	SocialLinks      map[string]string
}

// Contact is an unpersisted person candidate
type Contact struct {
	Name        string
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Role        string
	ProfileURL  string
	CompanyName string
}

// Lead wraps an optional company and/or contact into one opportunity
type Lead struct {
	Company *Company
	Contact *Contact
}

// Candidate is the tagged union the pipeline produces. Exactly one of
// Company, Contact, Lead is set, selected by Type; consumers switch
// exhaustively on Type
type Candidate struct {
	Type    ResultType
	Company *Company
	Contact *Contact
	Lead    *Lead
	Meta    Meta
}

// SearchMeta records the search result a candidate came from
type SearchMeta struct {
	Title    string `json:"title,omitempty"`
	URL      string `json:"url,omitempty"`
	Snippet  string `json:"snippet,omitempty"`
	Position int    `json:"position"`
}

// ScrapeMeta records the fetch that backed a candidate
type ScrapeMeta struct {
	FetchedURL string `json:"fetched_url"`
	FetchOK    bool   `json:"fetch_ok"`
	FetchError string `json:"fetch_error,omitempty"`
}

// ScoringMeta records the relevance verdict attached to a candidate
type ScoringMeta struct {
	Score      int      `json:"score"`
	Relevant   bool     `json:"relevant"`
	Threshold  int      `json:"threshold"`
	Confidence string   `json:"confidence"`
	Industry   string   `json:"industry,omitempty"`
	Reasons    []string `json:"reasons,omitempty"`
}

// UpstreamMeta preserves the original provenance when a channel relabels
// candidates it obtained through another channel
type UpstreamMeta struct {
	Source string `json:"source"`
	Query  string `json:"query,omitempty"`
}

// Meta is the discovery-metadata block every candidate carries. The typed
// sub-blocks replace an open-ended map; Extra is the escape hatch for
// channel-specific strings that fit none of them
type Meta struct {
	Source       string            `json:"source"`
	DiscoveredAt time.Time         `json:"discovered_at"`
	Query        string            `json:"query,omitempty"`
	Search       *SearchMeta       `json:"search,omitempty"`
	Scrape       *ScrapeMeta       `json:"scrape,omitempty"`
	Scoring      *ScoringMeta      `json:"scoring,omitempty"`
	Upstream     *UpstreamMeta     `json:"upstream,omitempty"`
	Extra        map[string]string `json:"extra,omitempty"`
}

// RunStatus is the run lifecycle state
type RunStatus string

// Run lifecycle states. Transitions are monotonic:
// pending -> running -> one terminal
const (
	RunPending             RunStatus = "pending"
	RunRunning             RunStatus = "running"
	RunCompleted           RunStatus = "completed"
	RunCompletedWithErrors RunStatus = "completed_with_errors"
	RunFailed              RunStatus = "failed"
	RunCancelled           RunStatus = "cancelled"
)

// Terminal reports whether s is a terminal status
func (s RunStatus) Terminal() bool {
	switch s {
	case RunCompleted, RunCompletedWithErrors, RunFailed, RunCancelled:
		return true
	case RunPending, RunRunning:
		return false
	default:
		return false
	}
}

// RunMode selects the base limit policy
type RunMode string

// Run modes
const (
	ModeDaily  RunMode = "daily"
	ModeManual RunMode = "manual"
	ModeTest   RunMode = "test"
)

// ChannelStats is one channel's contribution to a run
type ChannelStats struct {
	Results int    `json:"results"`
	Error   string `json:"error,omitempty"`
}

// RunStats is the statistics block a run finishes with. It is owned and
// mutated exclusively by the runner's control flow
type RunStats struct {
	Channels          map[string]ChannelStats `json:"channels,omitempty"`
	TotalBeforeDedupe int                     `json:"total_before_dedupe"`
	TotalAfterDedupe  int                     `json:"total_after_dedupe"`
	CompaniesCreated  int                     `json:"companies_created"`
	CompaniesSkipped  int                     `json:"companies_skipped"`
	ContactsCreated   int                     `json:"contacts_created"`
	ContactsSkipped   int                     `json:"contacts_skipped"`
	LeadsCreated      int                     `json:"leads_created"`
	LeadsSkipped      int                     `json:"leads_skipped"`
	Errors            []string                `json:"errors,omitempty"`
	DurationMS        int64                   `json:"duration_ms"`
	StoppedEarly      bool                    `json:"stopped_early"`
	StopReason        string                  `json:"stop_reason,omitempty"`
	Limits            intentpack.Limits       `json:"limits"`
	Config            *intentpack.Resolved    `json:"config,omitempty"`
}

// Run is the unit of execution and audit record
type Run struct {
	ID         string     `json:"id"`
	Status     RunStatus  `json:"status"`
	DryRun     bool       `json:"dry_run"`
	Mode       RunMode    `json:"mode"`
	Trigger    string     `json:"trigger,omitempty"`
	IntentID   string     `json:"intent_id"`
	IntentName string     `json:"intent_name,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Stats      RunStats   `json:"stats"`
}
