// Package pipeline provides the core generation pipeline for diskforge.
//
// This package implements the complete plan → render → guide pipeline
// used by both the CLI and the preview server. Centralizing it keeps
// caching and defaults consistent across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Plan: compute the drawing plan (slot geometry, annotations)
//  2. Render: generate diagram artifacts (SVG, PNG, PDF, JSON)
//  3. Guide: generate instruction documents (Markdown, text, print)
//
// Each stage can be run independently or as part of the complete
// pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Spec:    spec,
//	    Kind:    plan.KindTemplate,
//	    Formats: []string{"svg", "png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/diskforge/diskforge/pkg/disk"
	"github.com/diskforge/diskforge/pkg/errors"
	"github.com/diskforge/diskforge/pkg/plan"
	"github.com/diskforge/diskforge/pkg/render/styles"
)

// Format constants for diagram outputs.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Guide format constants.
const (
	GuideMarkdown = "md"
	GuideText     = "txt"
	GuidePrint    = "print"
)

// ValidFormats is the set of supported diagram formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidGuideFormats is the set of supported guide formats.
var ValidGuideFormats = map[string]bool{
	GuideMarkdown: true,
	GuideText:     true,
	GuidePrint:    true,
}

// Cache TTLs per stage. Plans are cheap to recompute but artifacts can
// involve external conversion, so both get a generous window.
const (
	TTLPlan     = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
	TTLGuide    = 24 * time.Hour
)

// DefaultScale is the default template scale factor.
const DefaultScale = 1.0

// DefaultStyle is the default visual style.
const DefaultStyle = styles.StylePrint

// ValidateFormat checks that a diagram format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateGuideFormat checks that a guide format is valid.
func ValidateGuideFormat(format string) error {
	if !ValidGuideFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid guide format: %q (must be one of: md, txt, print)", format)
	}
	return nil
}

// Options contains all configuration for the generation pipeline.
// This struct supports JSON serialization for preview server requests.
type Options struct {
	// Plan options
	Spec  disk.Spec `json:"spec"`
	Kind  string    `json:"kind,omitempty"`
	Scale float64   `json:"scale,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Style   string   `json:"style,omitempty"`

	// Guide options
	GuideFormats []string `json:"guide_formats,omitempty"`

	// Refresh bypasses cache reads (results are still written back).
	Refresh bool `json:"refresh,omitempty"`

	// Timestamp fixes the guide generation time. Zero means now.
	Timestamp time.Time `json:"timestamp,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.Spec.Validate(); err != nil {
		return err
	}
	if o.Kind == "" {
		o.Kind = string(plan.KindTemplate)
	}
	if _, err := plan.ParseKind(o.Kind); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidSpec, "scale must be positive, got %g", o.Scale)
	}
	if len(o.Formats) == 0 && len(o.GuideFormats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for _, f := range o.Formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	for _, f := range o.GuideFormats {
		if err := ValidateGuideFormat(f); err != nil {
			return err
		}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if _, err := styles.ByName(o.Style); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this execution.
	RunID string

	// Plan is the computed drawing plan (nil when only guides ran).
	Plan *plan.Plan

	// PlanHash is the content hash of the marshaled plan.
	PlanHash string

	// Artifacts contains rendered diagrams keyed by format.
	Artifacts map[string][]byte

	// Guides contains generated documents keyed by guide format.
	Guides map[string][]byte

	// Failed records per-format render errors. These are non-fatal:
	// remaining formats still render.
	Failed map[string]error

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PlanTime   time.Duration
	RenderTime time.Duration
	GuideTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PlanHit   bool // Whether the plan came from cache
	RenderHit bool // Whether all artifacts came from cache
	GuideHit  bool // Whether all guides came from cache
}
