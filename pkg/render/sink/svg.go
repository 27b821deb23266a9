// Package sink renders drawing plans to output formats.
//
// RenderSVG is the primary sink; PNG and PDF wrap it with format
// conversion, and RenderJSON emits the plan itself for downstream
// tooling or caching.
package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/diskforge/diskforge/pkg/plan"
	"github.com/diskforge/diskforge/pkg/render/styles"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style styles.Style
}

// WithStyle sets the visual style (default print).
func WithStyle(s styles.Style) SVGOption {
	return func(r *svgRenderer) { r.style = s }
}

// RenderSVG renders the plan as an SVG sheet. The viewBox is in
// millimeters, so the physical print size matches the plan frame when
// printed at 100%.
func RenderSVG(p *plan.Plan, opts ...SVGOption) []byte {
	r := svgRenderer{style: styles.Print{}}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0fmm" height="%.0fmm">`+"\n",
		p.FrameWidth, p.FrameHeight, p.FrameWidth, p.FrameHeight)

	r.style.RenderDefs(&buf, p.FrameWidth, p.FrameHeight)

	renderTitle(&buf, p)
	for _, w := range p.Wedges {
		renderWedge(&buf, w)
	}
	for _, c := range p.Circles {
		renderCircle(&buf, c)
	}
	for _, l := range p.Lines {
		renderLine(&buf, l)
	}
	for _, rc := range p.Rects {
		renderRect(&buf, rc)
	}
	for _, lb := range p.Labels {
		renderLabel(&buf, lb)
	}
	renderNotes(&buf, p)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderTitle(buf *bytes.Buffer, p *plan.Plan) {
	fmt.Fprintf(buf, `  <text x="%.1f" y="9" font-size="5" font-weight="bold" text-anchor="middle" class="title">%s</text>`+"\n",
		p.FrameWidth/2, escape(p.Title))
	if p.Subtitle != "" {
		fmt.Fprintf(buf, `  <text x="%.1f" y="15" font-size="3" text-anchor="middle" class="title">%s</text>`+"\n",
			p.FrameWidth/2, escape(p.Subtitle))
	}
}

func renderNotes(buf *bytes.Buffer, p *plan.Plan) {
	if len(p.Notes) == 0 {
		return
	}
	top := p.FrameHeight - float64(len(p.Notes))*6
	for i, note := range p.Notes {
		weight := ""
		if i == 0 {
			weight = ` font-weight="bold"`
		}
		fmt.Fprintf(buf, `  <text x="6" y="%.1f" font-size="3"%s class="note">%s</text>`+"\n",
			top+float64(i)*6, weight, escape(note))
	}
}

func renderCircle(buf *bytes.Buffer, c plan.Circle) {
	dash := ""
	if c.Dashed {
		dash = ` stroke-dasharray="2 1.5"`
	}
	fmt.Fprintf(buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" class="%s"%s/>`+"\n", c.CX, c.CY, c.R, c.Class, dash)
}

func renderLine(buf *bytes.Buffer, l plan.Line) {
	dash := ""
	if l.Dashed {
		dash = ` stroke-dasharray="2 1.5"`
	}
	fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" class="%s"%s/>`+"\n",
		l.X1, l.Y1, l.X2, l.Y2, l.Class, dash)
}

func renderRect(buf *bytes.Buffer, r plan.Rect) {
	fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" class="%s"/>`+"\n",
		r.X, r.Y, r.W, r.H, r.Class)
}

func renderLabel(buf *bytes.Buffer, l plan.Label) {
	anchor := l.Anchor
	if anchor == "" {
		anchor = "middle"
	}
	weight := ""
	if l.Bold {
		weight = ` font-weight="bold"`
	}
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-size="%.1f" text-anchor="%s"%s class="%s">%s</text>`+"\n",
		l.X, l.Y, l.Size, anchor, weight, l.Class, escape(l.Text))
}

// renderWedge writes an annular segment as a single path: out along the
// start radial, counter-clockwise along the outer arc, in along the end
// radial, and back clockwise along the inner arc.
func renderWedge(buf *bytes.Buffer, w plan.Wedge) {
	x1, y1 := polar(w.CX, w.CY, w.StartDeg, w.OuterR)
	x2, y2 := polar(w.CX, w.CY, w.EndDeg, w.OuterR)
	x3, y3 := polar(w.CX, w.CY, w.EndDeg, w.InnerR)
	x4, y4 := polar(w.CX, w.CY, w.StartDeg, w.InnerR)

	largeArc := 0
	if w.EndDeg-w.StartDeg > 180 {
		largeArc = 1
	}

	fmt.Fprintf(buf, `  <path d="M %.2f %.2f A %.2f %.2f 0 %d 0 %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f Z" class="%s"/>`+"\n",
		x1, y1, w.OuterR, w.OuterR, largeArc, x2, y2,
		x3, y3, w.InnerR, w.InnerR, largeArc, x4, y4,
		w.Class)
}

// polar converts a counter-clockwise page angle and radius to absolute
// coordinates. Page y grows downward, so y is negated.
func polar(cx, cy, deg, r float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return cx + r*math.Cos(rad), cy - r*math.Sin(rad)
}

// escape replaces the XML special characters in text content.
func escape(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
