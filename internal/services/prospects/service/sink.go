// Package service implements the prospects persistence sink
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"prospector/internal/core/webnorm"
	perr "prospector/internal/platform/errors"
	"prospector/internal/platform/logger"
	discdom "prospector/internal/services/discovery/domain"
	"prospector/internal/services/prospects/domain"
)

// Sink persists discovery candidates. Implements the discovery service's
// SinkPort: idempotent per record, processed company -> contact -> lead so
// cross-references resolve within one batch
type Sink struct {
	storage domain.Storage
	log     *logger.Logger
}

// New constructs a sink over the prospects storage
func New(storage domain.Storage) *Sink {
	return &Sink{storage: storage, log: logger.Named("prospects.sink")}
}

// batch tracks in-flight identity resolution for one Persist call
type batch struct {
	rep           discdom.SinkReport
	companyByKey  map[string]string
	companyByName map[string]string
	contactByKey  map[string]string
}

// Persist implements SinkPort. Per-candidate failures are recorded and the
// batch continues; only a panic fails the whole report
func (s *Sink) Persist(ctx context.Context, candidates []discdom.Candidate) (rep discdom.SinkReport) {
	b := &batch{
		rep:           discdom.SinkReport{Success: true},
		companyByKey:  map[string]string{},
		companyByName: map[string]string{},
		contactByKey:  map[string]string{},
	}
	defer func() {
		if p := recover(); p != nil {
			s.log.Error().Msg("sink panicked")
			b.rep.Success = false
			b.rep.Errors = append(b.rep.Errors, discdom.SinkError{Err: fmt.Sprintf("panic: %v", p)})
		}
		rep = b.rep
	}()

	// companies first so contacts and leads can reference them
	for _, c := range candidates {
		if c.Type == discdom.TypeCompany {
			s.persistCompany(ctx, b, c)
		}
	}
	for _, c := range candidates {
		if c.Type == discdom.TypeContact {
			s.persistContact(ctx, b, c)
		}
	}
	for _, c := range candidates {
		if c.Type == discdom.TypeLead {
			s.persistLead(ctx, b, c)
		}
	}
	return b.rep
}

func (s *Sink) persistCompany(ctx context.Context, b *batch, c discdom.Candidate) {
	if c.Company == nil {
		b.fail(discdom.TypeCompany, "company candidate without a company")
		return
	}
	_, created, err := s.upsertCompany(ctx, b, c.Company, c.Meta)
	if err != nil {
		b.fail(discdom.TypeCompany, err.Error())
		return
	}
	if created {
		b.rep.CompaniesCreated++
	} else {
		b.rep.CompaniesSkipped++
	}
}

func (s *Sink) persistContact(ctx context.Context, b *batch, c discdom.Candidate) {
	if c.Contact == nil {
		b.fail(discdom.TypeContact, "contact candidate without a contact")
		return
	}
	_, created, err := s.upsertContact(ctx, b, c.Contact, c.Meta)
	if err != nil {
		b.fail(discdom.TypeContact, err.Error())
		return
	}
	if created {
		b.rep.ContactsCreated++
	} else {
		b.rep.ContactsSkipped++
	}
}

func (s *Sink) persistLead(ctx context.Context, b *batch, c discdom.Candidate) {
	if c.Lead == nil {
		b.fail(discdom.TypeLead, "lead candidate without a lead")
		return
	}

	var companyID, contactID string
	if c.Lead.Company != nil {
		id, created, err := s.upsertCompany(ctx, b, c.Lead.Company, c.Meta)
		if err != nil {
			b.fail(discdom.TypeLead, err.Error())
			return
		}
		companyID = id
		if created {
			b.rep.CompaniesCreated++
		} else {
			b.rep.CompaniesSkipped++
		}
	}
	if c.Lead.Contact != nil {
		id, created, err := s.upsertContact(ctx, b, c.Lead.Contact, c.Meta)
		if err != nil {
			b.fail(discdom.TypeLead, err.Error())
			return
		}
		contactID = id
		if created {
			b.rep.ContactsCreated++
		} else {
			b.rep.ContactsSkipped++
		}
	}
	if companyID == "" && contactID == "" {
		b.fail(discdom.TypeLead, "lead references neither a company nor a contact")
		return
	}

	key := domain.LeadDedupeKey(c.Lead.Company, c.Lead.Contact)
	if key == "" {
		b.fail(discdom.TypeLead, "lead has no usable identity")
		return
	}
	res, err := s.storage.UpsertLead(ctx, domain.LeadRecord{
		CompanyID: companyID,
		ContactID: contactID,
		DedupeKey: key,
		Source:    c.Meta.Source,
		Meta:      c.Meta,
	})
	if err != nil {
		b.fail(discdom.TypeLead, err.Error())
		return
	}
	if res.Created {
		b.rep.LeadsCreated++
	} else {
		b.rep.LeadsSkipped++
	}
}

func (s *Sink) upsertCompany(
	ctx context.Context,
	b *batch,
	co *discdom.Company,
	meta discdom.Meta,
) (string, bool, error) {
	key := domain.CompanyDedupeKey(co.Name, co.Website)
	if key == "" {
		return "", false, errors.New("company has neither website nor name")
	}
	if id, ok := b.companyByKey[key]; ok {
		return id, false, nil
	}

	res, err := s.storage.UpsertCompany(ctx, domain.CompanyRecord{
		Name:        strings.TrimSpace(co.Name),
		Website:     co.Website,
		DedupeKey:   key,
		Industry:    co.Industry,
		Country:     co.Country,
		Email:       co.Email,
		Phone:       co.Phone,
		Services:    co.Services,
		SocialLinks: co.SocialLinks,
		Meta:        meta,
	})
	if err != nil {
		return "", false, err
	}
	b.companyByKey[key] = res.ID
	if n := webnorm.Name(co.Name); n != "" {
		b.companyByName[n] = res.ID
	}
	return res.ID, res.Created, nil
}

func (s *Sink) upsertContact(
	ctx context.Context,
	b *batch,
	ct *discdom.Contact,
	meta discdom.Meta,
) (string, bool, error) {
	name := contactName(ct)
	key := domain.ContactDedupeKey(name, ct.Email)
	if key == "" {
		return "", false, errors.New("contact has neither email nor name")
	}
	if id, ok := b.contactByKey[key]; ok {
		return id, false, nil
	}

	res, err := s.storage.UpsertContact(ctx, domain.ContactRecord{
		Name:       name,
		FirstName:  ct.FirstName,
		LastName:   ct.LastName,
		Email:      ct.Email,
		Phone:      ct.Phone,
		Role:       ct.Role,
		ProfileURL: ct.ProfileURL,
		CompanyID:  s.resolveCompany(ctx, b, ct.CompanyName),
		DedupeKey:  key,
		Meta:       meta,
	})
	if err != nil {
		return "", false, err
	}
	b.contactByKey[key] = res.ID
	return res.ID, res.Created, nil
}

// resolveCompany links a contact to a company by display name, first within
// the batch, then in storage. An unresolvable name leaves the contact
// unlinked rather than failing it
func (s *Sink) resolveCompany(ctx context.Context, b *batch, companyName string) string {
	n := webnorm.Name(companyName)
	if n == "" {
		return ""
	}
	if id, ok := b.companyByName[n]; ok {
		return id
	}
	id, err := s.storage.FindCompanyID(ctx, "name:"+n)
	if err != nil {
		if !errors.Is(err, perr.ErrNotFound) {
			s.log.Warn().Str("company", companyName).Err(err).Msg("company lookup failed")
		}
		return ""
	}
	b.companyByName[n] = id
	return id
}

func contactName(ct *discdom.Contact) string {
	if n := strings.TrimSpace(ct.Name); n != "" {
		return n
	}
	return strings.TrimSpace(strings.TrimSpace(ct.FirstName) + " " + strings.TrimSpace(ct.LastName))
}

func (b *batch) fail(t discdom.ResultType, msg string) {
	b.rep.Errors = append(b.rep.Errors, discdom.SinkError{ResultType: t, Err: msg})
}
