package intentpack

import "strings"

// CountryPlaceholder is the token in seed queries that expands per target
// country
const CountryPlaceholder = "{country}"

// hard defaults, used only when neither override, intent, nor mode base
// supplies a value
const (
	defaultMaxCompanies = 10
	defaultMaxLeads     = 10
	defaultMaxQueries   = 3
	defaultBudgetSecs   = 120
)

// Overrides layers caller-supplied values on top of an intent. Zero values
// mean "not overridden"; ExtraKeywords are additive, never replacing
type Overrides struct {
	Countries     []string
	Queries       []string
	ExtraKeywords []string
	Channels      []string
	Limits        Limits
	Threshold     int
}

// Resolved is the concrete configuration one run executes under. Building
// it twice from identical inputs yields identical output
type Resolved struct {
	IntentID        string     `json:"intent_id"`
	IntentName      string     `json:"intent_name"`
	Countries       []string   `json:"countries"`
	Queries         []string   `json:"queries"`
	IncludeKeywords []string   `json:"include_keywords"`
	BusinessTypes   []string   `json:"business_types,omitempty"`
	ExcludeKeywords []string   `json:"exclude_keywords"`
	Channels        []string   `json:"channels"`
	Limits          Limits     `json:"limits"`
	Threshold       int        `json:"threshold"`
	Geography       *Geography `json:"geography,omitempty"`
}

// Resolve merges an intent with overrides under the precedence
// override > intent > base > hard default, substitutes the country
// placeholder, and caps the query list. Pure and deterministic
func Resolve(in Intent, o Overrides, base Limits) Resolved {
	countries := pick(o.Countries, in.Countries)

	seeds := pick(o.Queries, in.Queries)
	queries := expandQueries(seeds, countries)

	limits := resolveLimits(o.Limits, in.Limits, base)
	// an explicit query list additionally caps the query count by its
	// own length
	if len(o.Queries) > 0 && len(o.Queries) < limits.MaxQueries {
		limits.MaxQueries = len(o.Queries)
	}
	if len(queries) > limits.MaxQueries {
		queries = queries[:limits.MaxQueries]
	}

	threshold := firstPositive(o.Threshold, in.Threshold)

	return Resolved{
		IntentID:        in.ID,
		IntentName:      in.Name,
		Countries:       append([]string(nil), countries...),
		Queries:         queries,
		IncludeKeywords: concat(in.IncludeKeywords, o.ExtraKeywords),
		BusinessTypes:   append([]string(nil), in.BusinessTypes...),
		ExcludeKeywords: append([]string(nil), in.ExcludeKeywords...),
		Channels:        append([]string(nil), pick(o.Channels, in.Channels)...),
		Limits:          limits,
		Threshold:       threshold,
		Geography:       in.Geography,
	}
}

// ExpandQueries is exported for tests and the CLI's plan output
func ExpandQueries(seeds, countries []string) []string {
	return expandQueries(seeds, countries)
}

// expandQueries emits one query per target country for each seed containing
// the placeholder; seeds without it are emitted once regardless of country
// count
func expandQueries(seeds, countries []string) []string {
	out := make([]string, 0, len(seeds))
	for _, q := range seeds {
		if !strings.Contains(q, CountryPlaceholder) {
			out = append(out, q)
			continue
		}
		if len(countries) == 0 {
			out = append(out, strings.TrimSpace(strings.ReplaceAll(q, CountryPlaceholder, "")))
			continue
		}
		for _, code := range countries {
			out = append(out, strings.ReplaceAll(q, CountryPlaceholder, CountryName(code)))
		}
	}
	return out
}

func resolveLimits(override, intent, base Limits) Limits {
	return Limits{
		MaxCompanies:      firstPositive(override.MaxCompanies, intent.MaxCompanies, base.MaxCompanies, defaultMaxCompanies),
		MaxLeads:          firstPositive(override.MaxLeads, intent.MaxLeads, base.MaxLeads, defaultMaxLeads),
		MaxQueries:        firstPositive(override.MaxQueries, intent.MaxQueries, base.MaxQueries, defaultMaxQueries),
		TimeBudgetSeconds: firstPositive(override.TimeBudgetSeconds, intent.TimeBudgetSeconds, base.TimeBudgetSeconds, defaultBudgetSecs),
	}
}

func firstPositive(xs ...int) int {
	for _, x := range xs {
		if x > 0 {
			return x
		}
	}
	return 0
}

// pick returns override when non-empty, else fallback
func pick(override, fallback []string) []string {
	if len(override) > 0 {
		return override
	}
	return fallback
}

func concat(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}
