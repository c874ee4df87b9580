package relevance

import "strings"

// industryEntry pairs an industry label with its marker keywords. The slice
// is ordered; ties on hit count go to the earlier entry
type industryEntry struct {
	Label    string
	Keywords []string
}

var industryTable = []industryEntry{
	{"technology", []string{"software", "saas", "app development", "it services", "cloud", "digital platform"}},
	{"marketing", []string{"marketing", "advertising", "branding", "seo", "social media management", "campaign"}},
	{"education", []string{"school", "college", "university", "curriculum", "learners", "tuition", "training courses"}},
	{"construction", []string{"construction", "building contractor", "renovation", "civil engineering", "architecture"}},
	{"healthcare", []string{"clinic", "medical", "healthcare", "dental", "practice", "patients"}},
	{"finance", []string{"accounting", "bookkeeping", "financial services", "insurance", "tax", "audit"}},
	{"legal", []string{"attorneys", "law firm", "legal services", "litigation", "conveyancing"}},
	{"hospitality", []string{"hotel", "guest house", "restaurant", "catering", "lodge", "accommodation"}},
	{"logistics", []string{"logistics", "freight", "courier", "transport services", "warehousing", "supply chain"}},
	{"manufacturing", []string{"manufacturing", "factory", "fabrication", "industrial", "production plant"}},
	{"retail", []string{"retail", "store", "shop", "merchandise", "wholesale"}},
	{"mining", []string{"mining", "minerals", "drilling", "quarry"}},
	{"agriculture", []string{"farming", "agriculture", "agribusiness", "crops", "livestock"}},
}

// DetectIndustry counts keyword hits per industry over the given lowercased
// text and returns the label with the most hits. Ties break to the
// first-declared industry; no hits returns ""
func DetectIndustry(text string) string {
	best := ""
	bestHits := 0
	for _, e := range industryTable {
		hits := 0
		for _, kw := range e.Keywords {
			if strings.Contains(text, kw) {
				hits++
			}
		}
		if hits > bestHits {
			best = e.Label
			bestHits = hits
		}
	}
	return best
}
