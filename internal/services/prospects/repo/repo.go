// Package repo provides the prospects repository implementation
package repo

import (
	"context"
	"encoding/json"

	"prospector/internal/modkit/repokit"
	perr "prospector/internal/platform/errors"
	"prospector/internal/services/prospects/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the prospects repository
type Storage interface {
	domain.Storage
}

// UpsertCompany implements domain.Storage. Conflicts on dedupe_key leave
// the stored row untouched and report Created false
func (s *pg) UpsertCompany(ctx context.Context, rec domain.CompanyRecord) (domain.UpsertResult, error) {
	social, err := marshalMap(rec.SocialLinks)
	if err != nil {
		return domain.UpsertResult{}, err
	}
	meta, err := json.Marshal(rec.Meta)
	if err != nil {
		return domain.UpsertResult{}, perr.Wrap(err, perr.ErrorCodeJSON, "marshal company meta")
	}

	return s.upsert(ctx, `
		INSERT INTO companies
			(name, website, dedupe_key, industry, country, email, phone, services, social_links, discovery_meta)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (dedupe_key) DO NOTHING
		RETURNING id::text`,
		`SELECT id::text FROM companies WHERE dedupe_key = $1`,
		rec.DedupeKey,
		rec.Name, rec.Website, rec.DedupeKey, rec.Industry, rec.Country,
		rec.Email, rec.Phone, rec.Services, social, meta,
	)
}

// UpsertContact implements domain.Storage
func (s *pg) UpsertContact(ctx context.Context, rec domain.ContactRecord) (domain.UpsertResult, error) {
	meta, err := json.Marshal(rec.Meta)
	if err != nil {
		return domain.UpsertResult{}, perr.Wrap(err, perr.ErrorCodeJSON, "marshal contact meta")
	}

	return s.upsert(ctx, `
		INSERT INTO contacts
			(name, first_name, last_name, email, phone, role, profile_url, company_id, dedupe_key, discovery_meta)
		VALUES ($1,$2,$3,$4,$5,$6,$7,NULLIF($8,'')::uuid,$9,$10)
		ON CONFLICT (dedupe_key) DO NOTHING
		RETURNING id::text`,
		`SELECT id::text FROM contacts WHERE dedupe_key = $1`,
		rec.DedupeKey,
		rec.Name, rec.FirstName, rec.LastName, rec.Email, rec.Phone,
		rec.Role, rec.ProfileURL, rec.CompanyID, rec.DedupeKey, meta,
	)
}

// UpsertLead implements domain.Storage
func (s *pg) UpsertLead(ctx context.Context, rec domain.LeadRecord) (domain.UpsertResult, error) {
	meta, err := json.Marshal(rec.Meta)
	if err != nil {
		return domain.UpsertResult{}, perr.Wrap(err, perr.ErrorCodeJSON, "marshal lead meta")
	}

	status := rec.Status
	if status == "" {
		status = "new"
	}
	return s.upsert(ctx, `
		INSERT INTO leads
			(company_id, contact_id, dedupe_key, source, status, discovery_meta)
		VALUES (NULLIF($1,'')::uuid, NULLIF($2,'')::uuid, $3, $4, $5, $6)
		ON CONFLICT (dedupe_key) DO NOTHING
		RETURNING id::text`,
		`SELECT id::text FROM leads WHERE dedupe_key = $1`,
		rec.DedupeKey,
		rec.CompanyID, rec.ContactID, rec.DedupeKey, rec.Source, status, meta,
	)
}

// FindCompanyID implements domain.Storage
func (s *pg) FindCompanyID(ctx context.Context, dedupeKey string) (string, error) {
	return s.findID(ctx, `SELECT id::text FROM companies WHERE dedupe_key = $1`, dedupeKey)
}

// FindContactID implements domain.Storage
func (s *pg) FindContactID(ctx context.Context, dedupeKey string) (string, error) {
	return s.findID(ctx, `SELECT id::text FROM contacts WHERE dedupe_key = $1`, dedupeKey)
}

// upsert runs the conflict-tolerant insert; when the insert returned no row
// the existing id is fetched by key
func (s *pg) upsert(ctx context.Context, insertSQL, selectSQL, dedupeKey string, args ...any) (domain.UpsertResult, error) {
	rows, err := s.q.Query(ctx, insertSQL, args...)
	if err != nil {
		return domain.UpsertResult{}, perr.FromPostgres(err, "upsert record")
	}
	var id string
	inserted := rows.Next()
	if inserted {
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return domain.UpsertResult{}, perr.FromPostgres(err, "scan upsert id")
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return domain.UpsertResult{}, perr.FromPostgres(err, "upsert record")
	}
	if inserted {
		return domain.UpsertResult{ID: id, Created: true}, nil
	}

	id, err = s.findID(ctx, selectSQL, dedupeKey)
	if err != nil {
		return domain.UpsertResult{}, err
	}
	return domain.UpsertResult{ID: id, Created: false}, nil
}

func (s *pg) findID(ctx context.Context, sql, dedupeKey string) (string, error) {
	rows, err := s.q.Query(ctx, sql, dedupeKey)
	if err != nil {
		return "", perr.FromPostgres(err, "find record id")
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", perr.FromPostgres(err, "find record id")
		}
		return "", perr.ErrNotFound
	}
	var id string
	if err := rows.Scan(&id); err != nil {
		return "", perr.FromPostgres(err, "scan record id")
	}
	return id, rows.Err()
}

func marshalMap(m map[string]string) ([]byte, error) {
	if len(m) == 0 {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "marshal social links")
	}
	return b, nil
}
