// Package raster renders drawing plans to PNG without external tools.
//
// This is the fallback path used when rsvg-convert is not installed. It
// draws with the print palette only and uses a small bitmap font for
// annotations, which is adequate for on-screen preview; paper output
// should go through the SVG/PDF path.
package raster

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/diskforge/diskforge/pkg/plan"
)

type rgb struct{ r, g, b float64 }

var (
	colorInk    = rgb{0.07, 0.07, 0.07}
	colorAccent = rgb{0.80, 0.20, 0.20}
	colorGuide  = rgb{0.20, 0.40, 0.80}
	colorWarm   = rgb{0.93, 0.60, 0.00}
	colorFaint  = rgb{0.60, 0.60, 0.60}
)

var fillColors = map[string]rgb{
	plan.ClassOpaque: colorInk,
	plan.ClassPhase1: colorAccent,
	plan.ClassPhase2: colorGuide,
	plan.ClassPhase3: colorWarm,
	plan.ClassSensor: colorAccent,
}

var strokeColors = map[string]rgb{
	plan.ClassOutline:   colorInk,
	plan.ClassHole:      colorInk,
	plan.ClassGuide:     colorGuide,
	plan.ClassTick:      colorAccent,
	plan.ClassCrosshair: colorFaint,
}

// RenderPNG rasterizes the plan at the given scale in pixels per
// millimeter and returns encoded PNG bytes.
func RenderPNG(p *plan.Plan, pxPerMM float64) ([]byte, error) {
	if pxPerMM <= 0 {
		pxPerMM = 4
	}
	w := int(math.Ceil(p.FrameWidth * pxPerMM))
	h := int(math.Ceil(p.FrameHeight * pxPerMM))

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.Scale(pxPerMM, pxPerMM)
	dc.SetFontFace(basicfont.Face7x13)

	for _, wd := range p.Wedges {
		drawWedge(dc, wd)
	}
	for _, c := range p.Circles {
		drawCircle(dc, c)
	}
	for _, l := range p.Lines {
		drawLine(dc, l)
	}
	for _, r := range p.Rects {
		setColor(dc, fillColors[r.Class])
		dc.DrawRectangle(r.X, r.Y, r.W, r.H)
		dc.Fill()
	}
	drawText(dc, p, pxPerMM)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setColor(dc *gg.Context, c rgb) {
	dc.SetRGB(c.r, c.g, c.b)
}

func drawCircle(dc *gg.Context, c plan.Circle) {
	setColor(dc, strokeColors[c.Class])
	if c.Dashed {
		dc.SetDash(2, 1.5)
	}
	dc.SetLineWidth(lineWidth(c.Class))
	dc.DrawCircle(c.CX, c.CY, c.R)
	dc.Stroke()
	dc.SetDash()
}

func drawLine(dc *gg.Context, l plan.Line) {
	setColor(dc, strokeColors[l.Class])
	if l.Dashed {
		dc.SetDash(2, 1.5)
	}
	dc.SetLineWidth(lineWidth(l.Class))
	dc.DrawLine(l.X1, l.Y1, l.X2, l.Y2)
	dc.Stroke()
	dc.SetDash()
}

func lineWidth(class string) float64 {
	switch class {
	case plan.ClassOutline, plan.ClassHole:
		return 0.6
	default:
		return 0.25
	}
}

// drawWedge approximates the annular segment with line segments along
// both arcs. Sampling at one-degree steps keeps the outline smooth at
// print resolutions without arc support.
func drawWedge(dc *gg.Context, w plan.Wedge) {
	setColor(dc, fillColors[w.Class])

	steps := int(math.Max(2, math.Ceil(w.EndDeg-w.StartDeg)))
	x, y := polar(w.CX, w.CY, w.StartDeg, w.InnerR)
	dc.MoveTo(x, y)
	for i := 0; i <= steps; i++ {
		deg := w.StartDeg + (w.EndDeg-w.StartDeg)*float64(i)/float64(steps)
		x, y = polar(w.CX, w.CY, deg, w.OuterR)
		dc.LineTo(x, y)
	}
	for i := steps; i >= 0; i-- {
		deg := w.StartDeg + (w.EndDeg-w.StartDeg)*float64(i)/float64(steps)
		x, y = polar(w.CX, w.CY, deg, w.InnerR)
		dc.LineTo(x, y)
	}
	dc.ClosePath()
	dc.Fill()
}

func drawText(dc *gg.Context, p *plan.Plan, pxPerMM float64) {
	// The bitmap font has a fixed pixel size; draw text in pixel space so
	// it stays legible at any plan scale.
	dc.Push()
	dc.Identity()
	setColor(dc, colorInk)

	dc.DrawStringAnchored(p.Title, p.FrameWidth/2*pxPerMM, 9*pxPerMM, 0.5, 0.5)
	if p.Subtitle != "" {
		dc.DrawStringAnchored(p.Subtitle, p.FrameWidth/2*pxPerMM, 15*pxPerMM, 0.5, 0.5)
	}

	for _, l := range p.Labels {
		ax := 0.5
		switch l.Anchor {
		case "start":
			ax = 0
		case "end":
			ax = 1
		}
		dc.DrawStringAnchored(l.Text, l.X*pxPerMM, l.Y*pxPerMM, ax, 0.5)
	}

	top := p.FrameHeight - float64(len(p.Notes))*6
	for i, note := range p.Notes {
		dc.DrawStringAnchored(note, 6*pxPerMM, (top+float64(i)*6)*pxPerMM, 0, 0.5)
	}
	dc.Pop()
}

func polar(cx, cy, deg, r float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return cx + r*math.Cos(rad), cy - r*math.Sin(rad)
}
