// Package scrape implements the website content fetcher and extractor
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"prospector/internal/core/relevance"
	"prospector/internal/core/webnorm"
	"prospector/internal/platform/logger"
)

// maxTextLen bounds the visible text handed to the scorer
const maxTextLen = 20000

// Fetcher retrieves pages and extracts the signals the relevance scorer
// reads. Fetch never returns a Go error; every failure is reported inside
// the Content so one dead site cannot abort a batch
type Fetcher struct {
	cfg  Config
	http *http.Client
	log  *logger.Logger
}

// New constructs a fetcher
func New(cfg Config) *Fetcher {
	return &Fetcher{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  logger.Named("adapter.scrape"),
	}
}

// Fetch retrieves url and extracts structured content
func (f *Fetcher) Fetch(ctx context.Context, url string) relevance.Content {
	c := relevance.Content{URL: url}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.Err = fmt.Sprintf("bad url: %v", err)
		return c
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.http.Do(req)
	if err != nil {
		c.Err = fmt.Sprintf("fetch failed: %v", err)
		return c
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.Err = fmt.Sprintf("status %d", resp.StatusCode)
		return c
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, f.cfg.MaxBody))
	if err != nil {
		c.Err = fmt.Sprintf("parse failed: %v", err)
		return c
	}

	f.extract(doc, &c)
	c.OK = true
	return c
}

func (f *Fetcher) extract(doc *goquery.Document, c *relevance.Content) {
	c.Title = clean(doc.Find("title").First().Text())
	c.Description = metaContent(doc, `meta[name="description"]`)
	if c.Description == "" {
		c.Description = metaContent(doc, `meta[property="og:description"]`)
	}
	c.CompanyName = metaContent(doc, `meta[property="og:site_name"]`)

	// drop non-content nodes before flattening to text
	doc.Find("script, style, noscript, iframe, svg").Remove()
	text := clean(doc.Find("body").Text())
	if len(text) > maxTextLen {
		text = text[:maxTextLen]
	}
	c.Text = text

	c.Contact.Email = firstEmail(doc, text)
	c.Contact.Phone = firstPhone(doc, text)
	c.Contact.Address = clean(doc.Find("address").First().Text())

	c.SocialLinks = socialLinks(doc)
	c.Services = services(doc)
}

func metaContent(doc *goquery.Document, selector string) string {
	v, _ := doc.Find(selector).First().Attr("content")
	return clean(v)
}

var emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// firstEmail prefers an explicit mailto link over a body-text match
func firstEmail(doc *goquery.Document, text string) string {
	var email string
	doc.Find(`a[href^="mailto:"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		addr := strings.TrimPrefix(href, "mailto:")
		if i := strings.IndexByte(addr, '?'); i >= 0 {
			addr = addr[:i]
		}
		if emailRe.MatchString(addr) {
			email = webnorm.Email(addr)
			return false
		}
		return true
	})
	if email != "" {
		return email
	}
	return webnorm.Email(emailRe.FindString(text))
}

var phoneRe = regexp.MustCompile(`(\+?\d[\d\s().\-]{7,}\d)`)

func firstPhone(doc *goquery.Document, text string) string {
	var phone string
	doc.Find(`a[href^="tel:"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		phone = clean(strings.TrimPrefix(href, "tel:"))
		return phone == ""
	})
	if phone != "" {
		return phone
	}
	return clean(phoneRe.FindString(text))
}

// socialPlatforms maps a link host to the platform label used in metadata
var socialPlatforms = map[string]string{
	"facebook.com":  "facebook",
	"instagram.com": "instagram",
	"linkedin.com":  "linkedin",
	"twitter.com":   "twitter",
	"x.com":         "twitter",
	"youtube.com":   "youtube",
	"tiktok.com":    "tiktok",
}

func socialLinks(doc *goquery.Document) map[string]string {
	out := map[string]string{}
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		host := webnorm.Host(href)
		if host == "" {
			return
		}
		for domain, platform := range socialPlatforms {
			if webnorm.HostMatches(host, domain) {
				if _, dup := out[platform]; !dup {
					out[platform] = href
				}
				return
			}
		}
	})
	if len(out) == 0 {
		return nil
	}
	return out
}

// services harvests short link and heading texts from service-ish sections
// of the page; best effort, capped
func services(doc *goquery.Document) []string {
	const maxServices = 12

	seen := map[string]struct{}{}
	var out []string
	add := func(raw string) {
		s := clean(raw)
		if s == "" || len(s) > 60 {
			return
		}
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}

	doc.Find(`[class*="service"] a, [class*="service"] h2, [class*="service"] h3, [class*="service"] li`).
		Each(func(_ int, s *goquery.Selection) {
			if s.Children().Length() == 0 {
				add(s.Text())
			}
		})
	doc.Find("nav a").Each(func(_ int, s *goquery.Selection) {
		add(s.Text())
	})

	if len(out) > maxServices {
		out = out[:maxServices]
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
