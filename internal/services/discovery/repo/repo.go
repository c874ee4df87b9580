// Package repo provides the discovery runs repository implementation
package repo

import (
	"context"
	"encoding/json"
	"time"

	"prospector/internal/modkit/repokit"
	perr "prospector/internal/platform/errors"
	"prospector/internal/platform/store"
	"prospector/internal/services/discovery/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the discovery runs repository
type Storage interface {
	domain.RunsStorage
}

const runColumns = `
	id::text, status, dry_run, mode, trigger, intent_id, intent_name,
	created_at, started_at, finished_at, stats`

// Create implements domain.RunsStorage
func (s *pg) Create(ctx context.Context, run domain.Run) error {
	stats, err := json.Marshal(run.Stats)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "marshal run stats")
	}
	_, err = s.q.Exec(ctx, `
		INSERT INTO discovery_runs
			(id, status, dry_run, mode, trigger, intent_id, intent_name, created_at, stats)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		run.ID, string(run.Status), run.DryRun, string(run.Mode), run.Trigger,
		run.IntentID, run.IntentName, run.CreatedAt, stats,
	)
	if err != nil {
		return perr.FromPostgres(err, "insert discovery run")
	}
	return nil
}

// MarkRunning implements domain.RunsStorage
func (s *pg) MarkRunning(ctx context.Context, id string, at time.Time) error {
	err := store.ExecOne(ctx, s.q, `
		UPDATE discovery_runs
		SET status = $2, started_at = $3
		WHERE id = $1 AND status = $4`,
		id, string(domain.RunRunning), at, string(domain.RunPending),
	)
	if err != nil {
		return perr.FromPostgresf(err, "mark run %s running", id)
	}
	return nil
}

// Finish implements domain.RunsStorage. Only a non-terminal run may finish,
// so a replayed Finish is a no-op error rather than a status flip
func (s *pg) Finish(ctx context.Context, id string, status domain.RunStatus, at time.Time, stats domain.RunStats) error {
	blob, err := json.Marshal(stats)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "marshal run stats")
	}
	err = store.ExecOne(ctx, s.q, `
		UPDATE discovery_runs
		SET status = $2, finished_at = $3, stats = $4
		WHERE id = $1 AND status IN ($5, $6)`,
		id, string(status), at, blob,
		string(domain.RunPending), string(domain.RunRunning),
	)
	if err != nil {
		return perr.FromPostgresf(err, "finish run %s", id)
	}
	return nil
}

// Get implements domain.RunsStorage
func (s *pg) Get(ctx context.Context, id string) (domain.Run, error) {
	row := s.q.QueryRow(ctx, `
		SELECT`+runColumns+`
		FROM discovery_runs
		WHERE id = $1`,
		id,
	)
	run, err := scanRun(row)
	if err != nil {
		return domain.Run{}, perr.FromPostgresf(err, "get run %s", id)
	}
	return run, nil
}

// Recent implements domain.RunsStorage; newest first
func (s *pg) Recent(ctx context.Context, limit int) ([]domain.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.q.Query(ctx, `
		SELECT`+runColumns+`
		FROM discovery_runs
		ORDER BY created_at DESC, id DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, perr.FromPostgres(err, "list recent runs")
	}
	defer rows.Close()

	out := make([]domain.Run, 0, limit)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, perr.FromPostgres(err, "scan run row")
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

// scanner covers both store.Row and store.Rows
type scanner interface{ Scan(dest ...any) error }

func scanRun(r scanner) (domain.Run, error) {
	var (
		run    domain.Run
		status string
		mode   string
		stats  []byte
	)
	if err := r.Scan(
		&run.ID, &status, &run.DryRun, &mode, &run.Trigger,
		&run.IntentID, &run.IntentName,
		&run.CreatedAt, &run.StartedAt, &run.FinishedAt, &stats,
	); err != nil {
		return domain.Run{}, err
	}
	run.Status = domain.RunStatus(status)
	run.Mode = domain.RunMode(mode)
	if len(stats) > 0 {
		if err := json.Unmarshal(stats, &run.Stats); err != nil {
			return domain.Run{}, perr.Wrap(err, perr.ErrorCodeUnknown, "decode run stats")
		}
	}
	return run, nil
}
