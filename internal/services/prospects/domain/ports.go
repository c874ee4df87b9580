package domain

import "context"

// UpsertResult reports what an idempotent write did
type UpsertResult struct {
	ID      string
	Created bool
}

// Storage is the prospects repository seam. Upserts are idempotent on the
// record's dedupe key: an existing key returns the stored id with
// Created false
type Storage interface {
	UpsertCompany(ctx context.Context, rec CompanyRecord) (UpsertResult, error)
	UpsertContact(ctx context.Context, rec ContactRecord) (UpsertResult, error)
	UpsertLead(ctx context.Context, rec LeadRecord) (UpsertResult, error)

	FindCompanyID(ctx context.Context, dedupeKey string) (string, error)
	FindContactID(ctx context.Context, dedupeKey string) (string, error)
}
