package cache

import (
	"time"

	"github.com/diskforge/diskforge/pkg/disk"
)

// Keyer generates cache keys for the rendering pipeline stages.
type Keyer interface {
	// PlanKey identifies a computed drawing plan.
	PlanKey(spec disk.Spec, opts PlanKeyOpts) string

	// ArtifactKey identifies a rendered artifact derived from a plan.
	ArtifactKey(planHash string, opts ArtifactKeyOpts) string

	// GuideKey identifies a generated guide document.
	GuideKey(spec disk.Spec, opts GuideKeyOpts) string
}

// PlanKeyOpts are the plan inputs beyond the spec itself.
type PlanKeyOpts struct {
	Kind  string
	Scale float64
}

// ArtifactKeyOpts are the rendering inputs beyond the plan.
type ArtifactKeyOpts struct {
	Format string
	Style  string
}

// GuideKeyOpts are the guide inputs beyond the spec. Timestamp is the
// pinned generation time; runs that leave it zero share one key, so
// their cached "Generated on" line can lag by up to the guide TTL.
type GuideKeyOpts struct {
	Format    string
	Timestamp time.Time
}

// DefaultKeyer is the standard key generator. Keys hash the full spec
// plus options, so any geometry change invalidates downstream entries.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

func (k *DefaultKeyer) PlanKey(spec disk.Spec, opts PlanKeyOpts) string {
	return hashKey("plan", spec, opts)
}

func (k *DefaultKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", planHash, opts)
}

func (k *DefaultKeyer) GuideKey(spec disk.Spec, opts GuideKeyOpts) string {
	return hashKey("guide", spec, opts)
}

// ScopedKeyer wraps a Keyer with a prefix so multiple contexts can
// share one cache backend without key collisions. The preview server
// uses this when several instances point at the same Redis.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) PlanKey(spec disk.Spec, opts PlanKeyOpts) string {
	return k.prefix + k.inner.PlanKey(spec, opts)
}

func (k *ScopedKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(planHash, opts)
}

func (k *ScopedKeyer) GuideKey(spec disk.Spec, opts GuideKeyOpts) string {
	return k.prefix + k.inner.GuideKey(spec, opts)
}
