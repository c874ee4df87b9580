package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	perr "prospector/internal/platform/errors"
	discdom "prospector/internal/services/discovery/domain"
	"prospector/internal/services/prospects/domain"
)

// fakeStorage keeps records in maps keyed by dedupe key
type fakeStorage struct {
	companies map[string]string
	contacts  map[string]string
	leads     map[string]string
	next      int

	companyRecs []domain.CompanyRecord
	contactRecs []domain.ContactRecord
	leadRecs    []domain.LeadRecord

	failCompanies bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		companies: map[string]string{},
		contacts:  map[string]string{},
		leads:     map[string]string{},
	}
}

func (f *fakeStorage) id() string {
	f.next++
	return fmt.Sprintf("id-%d", f.next)
}

func (f *fakeStorage) UpsertCompany(_ context.Context, rec domain.CompanyRecord) (domain.UpsertResult, error) {
	if f.failCompanies {
		return domain.UpsertResult{}, errors.New("db down")
	}
	if id, ok := f.companies[rec.DedupeKey]; ok {
		return domain.UpsertResult{ID: id}, nil
	}
	id := f.id()
	f.companies[rec.DedupeKey] = id
	f.companyRecs = append(f.companyRecs, rec)
	return domain.UpsertResult{ID: id, Created: true}, nil
}

func (f *fakeStorage) UpsertContact(_ context.Context, rec domain.ContactRecord) (domain.UpsertResult, error) {
	if id, ok := f.contacts[rec.DedupeKey]; ok {
		return domain.UpsertResult{ID: id}, nil
	}
	id := f.id()
	f.contacts[rec.DedupeKey] = id
	f.contactRecs = append(f.contactRecs, rec)
	return domain.UpsertResult{ID: id, Created: true}, nil
}

func (f *fakeStorage) UpsertLead(_ context.Context, rec domain.LeadRecord) (domain.UpsertResult, error) {
	if id, ok := f.leads[rec.DedupeKey]; ok {
		return domain.UpsertResult{ID: id}, nil
	}
	id := f.id()
	f.leads[rec.DedupeKey] = id
	f.leadRecs = append(f.leadRecs, rec)
	return domain.UpsertResult{ID: id, Created: true}, nil
}

func (f *fakeStorage) FindCompanyID(_ context.Context, key string) (string, error) {
	if id, ok := f.companies[key]; ok {
		return id, nil
	}
	return "", perr.ErrNotFound
}

func (f *fakeStorage) FindContactID(_ context.Context, key string) (string, error) {
	if id, ok := f.contacts[key]; ok {
		return id, nil
	}
	return "", perr.ErrNotFound
}

func companyCand(name, website string) discdom.Candidate {
	return discdom.Candidate{
		Type:    discdom.TypeCompany,
		Company: &discdom.Company{Name: name, Website: website},
	}
}

func contactCand(name, email, companyName string) discdom.Candidate {
	return discdom.Candidate{
		Type:    discdom.TypeContact,
		Contact: &discdom.Contact{Name: name, Email: email, CompanyName: companyName},
	}
}

func TestPersist_CreatedVersusSkipped(t *testing.T) {
	t.Parallel()

	fs := newFakeStorage()
	sink := New(fs)

	rep := sink.Persist(context.Background(), []discdom.Candidate{
		companyCand("Acme", "https://acme.co.za"),
		companyCand("Acme mirror", "http://www.acme.co.za/"),
		companyCand("Bolt", "https://bolt.co.za"),
	})

	if !rep.Success {
		t.Fatalf("report not successful: %+v", rep)
	}
	if rep.CompaniesCreated != 2 || rep.CompaniesSkipped != 1 {
		t.Fatalf("created=%d skipped=%d", rep.CompaniesCreated, rep.CompaniesSkipped)
	}
	if len(fs.companyRecs) != 2 {
		t.Fatalf("stored %d company records", len(fs.companyRecs))
	}
}

func TestPersist_ContactLinksToBatchCompany(t *testing.T) {
	t.Parallel()

	fs := newFakeStorage()
	sink := New(fs)

	// candidate order is contact first; the sink must still process the
	// company before the contact
	rep := sink.Persist(context.Background(), []discdom.Candidate{
		contactCand("Jane Doe", "jane@acme.co.za", "Acme"),
		companyCand("Acme", "https://acme.co.za"),
	})

	if rep.CompaniesCreated != 1 || rep.ContactsCreated != 1 {
		t.Fatalf("unexpected counters: %+v", rep)
	}
	if len(fs.contactRecs) != 1 {
		t.Fatalf("stored %d contacts", len(fs.contactRecs))
	}
	if fs.contactRecs[0].CompanyID == "" {
		t.Fatal("contact must link to the company persisted in the same batch")
	}
}

func TestPersist_LeadUpsertsNestedRecords(t *testing.T) {
	t.Parallel()

	fs := newFakeStorage()
	sink := New(fs)

	rep := sink.Persist(context.Background(), []discdom.Candidate{
		{
			Type: discdom.TypeLead,
			Lead: &discdom.Lead{
				Company: &discdom.Company{Name: "Acme", Website: "https://acme.co.za"},
				Contact: &discdom.Contact{Name: "Jane", Email: "jane@acme.co.za"},
			},
			Meta: discdom.Meta{Source: "search_engine"},
		},
	})

	if rep.CompaniesCreated != 1 || rep.ContactsCreated != 1 || rep.LeadsCreated != 1 {
		t.Fatalf("unexpected counters: %+v", rep)
	}
	if len(fs.leadRecs) != 1 {
		t.Fatalf("stored %d leads", len(fs.leadRecs))
	}
	lead := fs.leadRecs[0]
	if lead.CompanyID == "" || lead.ContactID == "" {
		t.Fatalf("lead refs not resolved: %+v", lead)
	}
	if lead.Source != "search_engine" {
		t.Fatalf("lead source = %q", lead.Source)
	}
}

func TestPersist_LeadWithoutAnyReferenceIsAnError(t *testing.T) {
	t.Parallel()

	sink := New(newFakeStorage())
	rep := sink.Persist(context.Background(), []discdom.Candidate{
		{Type: discdom.TypeLead, Lead: &discdom.Lead{}},
		companyCand("Bolt", "https://bolt.co.za"),
	})

	if len(rep.Errors) != 1 || rep.Errors[0].ResultType != discdom.TypeLead {
		t.Fatalf("expected one lead error: %+v", rep.Errors)
	}
	if rep.CompaniesCreated != 1 {
		t.Fatal("a bad lead must not block other candidates")
	}
	if !rep.Success {
		t.Fatal("per-candidate errors must not fail the report")
	}
}

func TestPersist_StorageErrorContinuesBatch(t *testing.T) {
	t.Parallel()

	fs := newFakeStorage()
	fs.failCompanies = true
	sink := New(fs)

	rep := sink.Persist(context.Background(), []discdom.Candidate{
		companyCand("Acme", "https://acme.co.za"),
		contactCand("Jane", "jane@x.co", ""),
	})

	if rep.CompaniesCreated != 0 || len(rep.Errors) != 1 {
		t.Fatalf("unexpected report: %+v", rep)
	}
	if rep.ContactsCreated != 1 {
		t.Fatal("contact pass must run despite company failures")
	}
}

func TestPersist_IdentitylessCompanyIsAnError(t *testing.T) {
	t.Parallel()

	sink := New(newFakeStorage())
	rep := sink.Persist(context.Background(), []discdom.Candidate{
		{Type: discdom.TypeCompany, Company: &discdom.Company{}},
	})
	if len(rep.Errors) != 1 || rep.CompaniesCreated != 0 {
		t.Fatalf("unexpected report: %+v", rep)
	}
}
