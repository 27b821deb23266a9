package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/diskforge/diskforge/pkg/cache"
	"github.com/diskforge/diskforge/pkg/disk"
	"github.com/diskforge/diskforge/pkg/errors"
	"github.com/diskforge/diskforge/pkg/guide"
	"github.com/diskforge/diskforge/pkg/observability"
	"github.com/diskforge/diskforge/pkg/plan"
	"github.com/diskforge/diskforge/pkg/render/sink"
	"github.com/diskforge/diskforge/pkg/render/styles"
)

// Runner encapsulates pipeline execution with caching.
// Both the CLI and the preview server use this to avoid duplicating
// caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete plan → render → guide pipeline with
// caching. Render failures for individual formats are recorded in
// Result.Failed and do not abort the run; plan construction errors do.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
		Guides:    make(map[string][]byte),
		Failed:    make(map[string]error),
	}

	if len(opts.Formats) > 0 {
		planStart := time.Now()
		p, planHit, err := r.PlanWithCacheInfo(ctx, opts)
		if err != nil {
			return nil, err
		}
		result.Plan = p
		result.Stats.PlanTime = time.Since(planStart)
		result.CacheInfo.PlanHit = planHit

		planData, err := plan.Marshal(p)
		if err != nil {
			return nil, err
		}
		result.PlanHash = cache.Hash(planData)

		logger.Info("computed plan",
			"kind", opts.Kind,
			"slots", opts.Spec.SlotCount,
			"cached", planHit,
			"duration", result.Stats.PlanTime)

		renderStart := time.Now()
		renderHit := true
		for _, format := range opts.Formats {
			data, hit, err := r.renderFormat(ctx, p, result.PlanHash, format, opts)
			if err != nil {
				result.Failed[format] = err
				renderHit = false
				logger.Warn("render failed", "format", format, "err", err)
				continue
			}
			result.Artifacts[format] = data
			renderHit = renderHit && hit
		}
		result.Stats.RenderTime = time.Since(renderStart)
		result.CacheInfo.RenderHit = renderHit && len(opts.Formats) > 0

		logger.Info("rendered artifacts",
			"formats", opts.Formats,
			"failed", len(result.Failed),
			"duration", result.Stats.RenderTime)
	}

	if len(opts.GuideFormats) > 0 {
		guideStart := time.Now()
		guideHit := true
		for _, format := range opts.GuideFormats {
			data, hit, err := r.GuideWithCacheInfo(ctx, format, opts)
			if err != nil {
				return nil, err
			}
			result.Guides[format] = data
			guideHit = guideHit && hit
		}
		result.Stats.GuideTime = time.Since(guideStart)
		result.CacheInfo.GuideHit = guideHit

		logger.Info("generated guides",
			"formats", opts.GuideFormats,
			"duration", result.Stats.GuideTime)
	}

	return result, nil
}

// PlanWithCacheInfo computes the drawing plan with caching and returns
// cache hit info.
func (r *Runner) PlanWithCacheInfo(ctx context.Context, opts Options) (*plan.Plan, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	key := r.Keyer.PlanKey(opts.Spec, cache.PlanKeyOpts{Kind: opts.Kind, Scale: opts.Scale})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if p, err := plan.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "plan")
				return p, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "plan")
	}

	start := time.Now()
	observability.Pipeline().OnPlanStart(ctx, opts.Kind, opts.Spec.SlotCount)

	kind, err := plan.ParseKind(opts.Kind)
	if err != nil {
		return nil, false, err
	}
	planOpts := plan.DefaultOptions()
	planOpts.Scale = opts.Scale
	p, err := plan.Build(kind, opts.Spec, planOpts)
	observability.Pipeline().OnPlanComplete(ctx, opts.Kind, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := plan.Marshal(p); err == nil {
		if err := r.Cache.Set(ctx, key, data, TTLPlan); err == nil {
			observability.Cache().OnCacheSet(ctx, "plan", len(data))
		}
	}
	return p, false, nil
}

// Plan is a convenience wrapper discarding the cache hit info.
func (r *Runner) Plan(ctx context.Context, opts Options) (*plan.Plan, error) {
	p, _, err := r.PlanWithCacheInfo(ctx, opts)
	return p, err
}

// renderFormat renders one artifact format with caching.
func (r *Runner) renderFormat(ctx context.Context, p *plan.Plan, planHash, format string, opts Options) ([]byte, bool, error) {
	key := r.Keyer.ArtifactKey(planHash, cache.ArtifactKeyOpts{Format: format, Style: opts.Style})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Kind, format)
	data, err := renderArtifact(p, format, opts.Style)
	observability.Pipeline().OnRenderComplete(ctx, opts.Kind, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, TTLArtifact); err == nil {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}

// renderArtifact dispatches to the format sink.
func renderArtifact(p *plan.Plan, format, styleName string) ([]byte, error) {
	style, err := styles.ByName(styleName)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatSVG:
		return sink.RenderSVG(p, sink.WithStyle(style)), nil
	case FormatPNG:
		data, err := sink.RenderPNG(p, sink.WithPNGSVGOptions(sink.WithStyle(style)))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "rendering PNG")
		}
		return data, nil
	case FormatPDF:
		data, err := sink.RenderPDF(p, sink.WithPDFSVGOptions(sink.WithStyle(style)))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "rendering PDF")
		}
		return data, nil
	case FormatJSON:
		return sink.RenderJSON(p)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
	}
}

// GuideWithCacheInfo generates one guide format with caching and
// returns cache hit info.
func (r *Runner) GuideWithCacheInfo(ctx context.Context, format string, opts Options) ([]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	if err := ValidateGuideFormat(format); err != nil {
		return nil, false, err
	}

	key := r.Keyer.GuideKey(opts.Spec, cache.GuideKeyOpts{Format: format, Timestamp: opts.Timestamp})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "guide")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "guide")
	}

	start := time.Now()
	observability.Pipeline().OnGuideStart(ctx, format)
	data, err := generateGuide(opts.Spec, format, opts.Timestamp)
	observability.Pipeline().OnGuideComplete(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, TTLGuide); err == nil {
		observability.Cache().OnCacheSet(ctx, "guide", len(data))
	}
	return data, false, nil
}

func generateGuide(spec disk.Spec, format string, ts time.Time) ([]byte, error) {
	var guideOpts []guide.Option
	if !ts.IsZero() {
		guideOpts = append(guideOpts, guide.WithTimestamp(ts))
	}
	doc, err := guide.New(spec, guideOpts...)
	if err != nil {
		return nil, err
	}

	switch format {
	case GuideMarkdown:
		return []byte(doc.Markdown()), nil
	case GuideText:
		return []byte(doc.PlainText()), nil
	case GuidePrint:
		return []byte(doc.PrintReady()), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid guide format: %q", format)
	}
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
