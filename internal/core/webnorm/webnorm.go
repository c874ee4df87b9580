// Package webnorm normalizes websites, names, and emails into the exact-match
// keys the deduplication and persistence layers compare on
package webnorm

import (
	"net/url"
	"strings"

	"golang.org/x/text/cases"
)

var fold = cases.Fold()

// Website canonicalizes a website string for exact-match comparison.
// It lowercases, trims whitespace, strips an http/https scheme, a single
// leading "www.", and any trailing slashes. Paths and subdomains are kept,
// so two URLs differing only by scheme or trailing slash collapse to the
// same key while distinct pages do not
func Website(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")
	s = strings.TrimRight(s, "/")
	return s
}

// Host extracts the lowercased host from a URL-ish string, without any
// leading "www." prefix. Returns "" when nothing host-shaped is present
func Host(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return ""
	}
	h := strings.ToLower(u.Host)
	if i := strings.IndexByte(h, ':'); i >= 0 {
		h = h[:i]
	}
	return strings.TrimPrefix(h, "www.")
}

// HostMatches reports whether host equals domain or is a subdomain of it
func HostMatches(host, domain string) bool {
	if host == "" || domain == "" {
		return false
	}
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// Name folds a display name for exact-match comparison.
// Unicode case folding plus whitespace collapsing, so "Acme  Corp" and
// "ACME corp" compare equal
func Name(raw string) string {
	s := fold.String(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(s), " ")
}

// Email lowercases and trims an email address
func Email(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
