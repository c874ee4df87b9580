// Package relevance scores fetched website content against an intent's
// keyword, business-type, and geography configuration. The scorer is pure:
// no I/O, deterministic for identical inputs
package relevance

import (
	"fmt"
	"strings"
)

// DefaultThreshold is the pass mark when an intent does not set its own
const DefaultThreshold = 40

// Confidence grades how much real content backed a score, independent of
// the score itself
type Confidence string

// Confidence tiers
const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Contact holds the contact signals extracted from a page
type Contact struct {
	Email   string
	Phone   string
	Address string
}

// Content is the fetched-page input to the scorer. Produced by the scrape
// adapter; OK=false with Err set is the degrade path for unreachable sites
type Content struct {
	OK          bool
	URL         string
	Title       string
	Description string
	CompanyName string
	Text        string
	Contact     Contact
	SocialLinks map[string]string
	Services    []string
	Err         string
}

// Config carries the per-intent analysis inputs
type Config struct {
	PositiveKeywords []string
	NegativeKeywords []string
	BusinessTypes    []string
	PriorityRegions  []string
	Threshold        int // 0 means DefaultThreshold
}

// Breakdown itemizes the capped sub-scores
type Breakdown struct {
	Keyword        int `json:"keyword"`
	Service        int `json:"service"`
	BusinessType   int `json:"business_type"`
	ContentQuality int `json:"content_quality"`
	Geography      int `json:"geography"`
}

// Score is the scorer verdict for one page
type Score struct {
	Total      int        `json:"total"`
	Relevant   bool       `json:"relevant"`
	Threshold  int        `json:"threshold"`
	Breakdown  Breakdown  `json:"breakdown"`
	Reasons    []string   `json:"reasons"`
	Industry   string     `json:"industry,omitempty"`
	Confidence Confidence `json:"confidence"`
}

// sub-score caps
const (
	capKeyword        = 30
	capService        = 25
	capBusinessType   = 30
	capContentQuality = 15
	capGeography      = 15
)

// genericServicePhrases are service-language markers worth +3 each
var genericServicePhrases = []string{
	"we offer",
	"our services",
	"we provide",
	"we specialise",
	"we specialize",
	"our solutions",
	"we help",
}

// businessTypeNouns are matched against the page title only, first match wins
var businessTypeNouns = []string{
	"agency",
	"studio",
	"consultancy",
	"consulting",
	"firm",
	"group",
}

var aboutPhrases = []string{"about us", "who we are", "our story", "our team"}

// Analyze scores content against cfg. A failed or empty fetch scores exactly
// zero with low confidence and the fetch error as the sole reason
func Analyze(c Content, cfg Config) Score {
	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	body := strings.ToLower(c.Text)
	title := strings.ToLower(c.Title)
	desc := strings.ToLower(c.Description)
	all := title + "\n" + desc + "\n" + body

	if !c.OK || strings.TrimSpace(all) == "" {
		reason := c.Err
		if reason == "" {
			reason = "no content fetched"
		}
		return Score{
			Total:      0,
			Relevant:   false,
			Threshold:  threshold,
			Reasons:    []string{reason},
			Confidence: ConfidenceLow,
		}
	}

	var bd Breakdown
	var reasons []string

	bd.Keyword, reasons = keywordScore(all, cfg, reasons)
	bd.Service, reasons = serviceScore(all, c.Services, cfg, reasons)
	bd.BusinessType, reasons = businessTypeScore(title, all, cfg, reasons)
	bd.ContentQuality, reasons = contentQualityScore(c, desc, body, reasons)
	if len(cfg.PriorityRegions) > 0 {
		bd.Geography, reasons = geographyScore(all, cfg.PriorityRegions, reasons)
	}

	total := bd.Keyword + bd.Service + bd.BusinessType + bd.ContentQuality + bd.Geography
	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}

	return Score{
		Total:      total,
		Relevant:   total >= threshold,
		Threshold:  threshold,
		Breakdown:  bd,
		Reasons:    reasons,
		Industry:   DetectIndustry(all),
		Confidence: confidenceOf(desc, body),
	}
}

// keywordScore awards +5 per distinct matched positive keyword (capped) and
// subtracts 10 per matched negative keyword. The sub-score may go negative;
// only the final total is clamped
func keywordScore(all string, cfg Config, reasons []string) (int, []string) {
	score := 0
	var matched []string
	for _, kw := range distinctLower(cfg.PositiveKeywords) {
		if kw != "" && strings.Contains(all, kw) {
			matched = append(matched, kw)
		}
	}
	score = len(matched) * 5
	if score > capKeyword {
		score = capKeyword
	}
	if len(matched) > 0 {
		reasons = append(reasons, "matched keywords: "+strings.Join(matched, ", "))
	}

	var negs []string
	for _, kw := range distinctLower(cfg.NegativeKeywords) {
		if kw != "" && strings.Contains(all, kw) {
			negs = append(negs, kw)
		}
	}
	if len(negs) > 0 {
		score -= len(negs) * 10
		reasons = append(reasons, "negative keywords present: "+strings.Join(negs, ", "))
	}
	return score, reasons
}

func serviceScore(all string, services []string, cfg Config, reasons []string) (int, []string) {
	score := 0
	hits := 0
	for _, p := range genericServicePhrases {
		if strings.Contains(all, p) {
			hits++
		}
	}
	if hits > 0 {
		score += hits * 3
		reasons = append(reasons, fmt.Sprintf("service language present (%d phrases)", hits))
	}

	svcText := strings.ToLower(strings.Join(services, "\n"))
	for _, bt := range distinctLower(cfg.BusinessTypes) {
		if bt == "" {
			continue
		}
		if strings.Contains(svcText, bt) || strings.Contains(all, bt) {
			score += 5
			reasons = append(reasons, "offers target service: "+bt)
		}
	}
	if score > capService {
		score = capService
	}
	return score, reasons
}

func businessTypeScore(title, all string, cfg Config, reasons []string) (int, []string) {
	score := 0

	// title only, first match wins; body mentions are too noisy
	for _, noun := range businessTypeNouns {
		if strings.Contains(title, noun) {
			score += 10
			reasons = append(reasons, "business type in title: "+noun)
			break
		}
	}

	for _, bt := range distinctLower(cfg.BusinessTypes) {
		if bt != "" && strings.Contains(all, bt) {
			score += 5
			reasons = append(reasons, "matches target business type: "+bt)
		}
	}

	for _, p := range aboutPhrases {
		if strings.Contains(all, p) {
			score += 3
			reasons = append(reasons, "has an about section")
			break
		}
	}

	if score > capBusinessType {
		score = capBusinessType
	}
	return score, reasons
}

func contentQualityScore(c Content, desc, body string, reasons []string) (int, []string) {
	score := 0
	if strings.TrimSpace(c.CompanyName) != "" {
		score += 3
		reasons = append(reasons, "company name detected")
	}
	if len(desc) > 50 {
		score += 3
	}

	contact := 0
	if c.Contact.Email != "" {
		contact += 2
	}
	if c.Contact.Phone != "" {
		contact++
	}
	if c.Contact.Address != "" {
		contact++
	}
	if contact > 4 {
		contact = 4
	}
	if contact > 0 {
		score += contact
		reasons = append(reasons, "contact details present")
	}

	social := len(c.SocialLinks)
	if social > 3 {
		social = 3
	}
	score += social
	if _, ok := c.SocialLinks["linkedin"]; ok {
		score += 2
		reasons = append(reasons, "professional network profile linked")
	}

	if len(body) > 2000 {
		score += 2
	}
	if score > capContentQuality {
		score = capContentQuality
	}
	return score, reasons
}

func geographyScore(all string, regions []string, reasons []string) (int, []string) {
	score := 0
	for _, r := range distinctLower(regions) {
		if r != "" && strings.Contains(all, r) {
			score += 5
			reasons = append(reasons, "priority region: "+r)
		}
	}
	if score > capGeography {
		score = capGeography
	}
	return score, reasons
}

// confidenceOf derives confidence purely from content volume, never from
// the score
func confidenceOf(desc, body string) Confidence {
	switch {
	case len(body) > 2000 && len(desc) > 0:
		return ConfidenceHigh
	case len(body) > 500 || len(desc) > 0:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// distinctLower lowercases, trims, and dedupes a keyword list preserving
// first-seen order
func distinctLower(xs []string) []string {
	seen := make(map[string]struct{}, len(xs))
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		k := strings.ToLower(strings.TrimSpace(x))
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
