// Package strings carries the string and slice helpers the repos share
package strings

import std "strings"

// IfEmpty substitutes def when in has no elements
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// Contains reports whether s contains sub
func Contains(s, sub string) bool { return std.Contains(s, sub) }

// HasSuffix reports whether s ends in suf
func HasSuffix(s, suf string) bool { return std.HasSuffix(s, suf) }

// MustString panics when s is blank. name labels the panic so the missing
// value is obvious
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes a mount path like /runs or /prospects to a single
// leading slash with no trailing slash, panicking on blank input
func MustPrefix(s string) string {
	s = std.TrimSpace(s)
	s = "/" + std.Trim(s, " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// EmptyToNil collapses all-whitespace strings to ""
func EmptyToNil(s string) string {
	if std.TrimSpace(s) == "" {
		return ""
	}
	return s
}

// Ptr returns &s, or nil when s is empty
func Ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// SQLNull maps blank strings to nil so query args write NULL instead of ""
func SQLNull(s string) any {
	if std.TrimSpace(s) == "" {
		return nil
	}
	return s
}

// SQLNullPtr is SQLNull for *string args
func SQLNullPtr(ps *string) any {
	if ps == nil || std.TrimSpace(*ps) == "" {
		return nil
	}
	return *ps
}

// Deref unwraps ps, reading nil as ""
func Deref(ps *string) string {
	if ps == nil {
		return ""
	}
	return *ps
}
