// Package domain defines the persisted prospect records and their
// exact-match identities
package domain

import (
	"time"

	"prospector/internal/core/webnorm"
	discdom "prospector/internal/services/discovery/domain"
)

// CompanyRecord is a stored company
type CompanyRecord struct {
	ID          string
	Name        string
	Website     string
	DedupeKey   string
	Industry    string
	Country     string
	Email       string
	Phone       string
	Services    []string
	SocialLinks map[string]string
	Meta        discdom.Meta
	CreatedAt   time.Time
}

// ContactRecord is a stored person, optionally linked to a company
type ContactRecord struct {
	ID         string
	Name       string
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Role       string
	ProfileURL string
	CompanyID  string
	DedupeKey  string
	Meta       discdom.Meta
	CreatedAt  time.Time
}

// LeadRecord is a stored opportunity referencing a company and/or contact
type LeadRecord struct {
	ID        string
	CompanyID string
	ContactID string
	DedupeKey string
	Source    string
	Status    string
	Meta      discdom.Meta
	CreatedAt time.Time
}

// CompanyDedupeKey is the exact-match identity of a company: its
// canonicalized website, else its folded name. "" means no identity
func CompanyDedupeKey(name, website string) string {
	if w := webnorm.Website(website); w != "" {
		return "web:" + w
	}
	if n := webnorm.Name(name); n != "" {
		return "name:" + n
	}
	return ""
}

// ContactDedupeKey is the exact-match identity of a contact: email first,
// else folded name
func ContactDedupeKey(name, email string) string {
	if e := webnorm.Email(email); e != "" {
		return "email:" + e
	}
	if n := webnorm.Name(name); n != "" {
		return "name:" + n
	}
	return ""
}

// LeadDedupeKey derives a lead's identity from its strongest reference:
// the contact's email, else the company's website, else ""
func LeadDedupeKey(company *discdom.Company, contact *discdom.Contact) string {
	if contact != nil {
		if e := webnorm.Email(contact.Email); e != "" {
			return "email:" + e
		}
	}
	if company != nil {
		if w := webnorm.Website(company.Website); w != "" {
			return "web:" + w
		}
	}
	return ""
}
