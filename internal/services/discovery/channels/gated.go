package channels

import "context"

// Gated is a stub for sources that need platform access we may not have
// (profile and social monitoring). When unconfigured it reports disabled
// and returns an empty successful output; a disabled gated channel never
// fails a run
type Gated struct {
	kind       string
	configured bool
}

// NewProfile builds the profile-monitoring channel stub
func NewProfile(configured bool) *Gated { return &Gated{kind: KindProfile, configured: configured} }

// NewSocial builds the social-monitoring channel stub
func NewSocial(configured bool) *Gated { return &Gated{kind: KindSocial, configured: configured} }

// Kind satisfies Channel
func (g *Gated) Kind() string { return g.kind }

// Enabled reports whether platform access is configured
func (g *Gated) Enabled() bool { return g.configured }

// Discover returns empty results with OK true
func (g *Gated) Discover(context.Context, Input) Output {
	return Output{OK: true}
}
