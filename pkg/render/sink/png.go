package sink

import (
	"github.com/diskforge/diskforge/pkg/plan"
	"github.com/diskforge/diskforge/pkg/render"
	"github.com/diskforge/diskforge/pkg/render/raster"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
}

// WithPNGSVGOptions passes options through to the underlying SVG renderer.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor in pixels per millimeter
// (default 4.0, roughly 100dpi).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG renders the plan as PNG. It prefers rsvg-convert for full
// fidelity (styled text, dashes); when librsvg is not installed it falls
// back to the built-in rasterizer.
func RenderPNG(p *plan.Plan, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 4.0}
	for _, opt := range opts {
		opt(&r)
	}
	if render.HaveRSVG() {
		svg := RenderSVG(p, r.svgOpts...)
		return render.ToPNG(svg, r.scale)
	}
	return raster.RenderPNG(p, r.scale)
}
