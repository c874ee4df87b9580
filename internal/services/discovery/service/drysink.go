package service

import (
	"context"

	"prospector/internal/services/discovery/domain"
)

// dryRunSink counts every candidate as skipped and writes nothing. Dry runs
// exercise the whole pipeline against it
type dryRunSink struct{}

func (dryRunSink) Persist(_ context.Context, candidates []domain.Candidate) domain.SinkReport {
	rep := domain.SinkReport{Success: true}
	for _, c := range candidates {
		switch c.Type {
		case domain.TypeCompany:
			rep.CompaniesSkipped++
		case domain.TypeContact:
			rep.ContactsSkipped++
		case domain.TypeLead:
			rep.LeadsSkipped++
		}
	}
	return rep
}
