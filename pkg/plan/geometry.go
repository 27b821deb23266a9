package plan

import "math"

// frame computes the page frame for a disk drawn at the given scale.
// The drawing area is a square around the disk with room for tick labels,
// a title block above, and a notes block below.
type frame struct {
	width, height float64
	cx, cy        float64 // disk center on the page
	r             float64 // scaled outer disk radius
}

const (
	frameMargin  = 18 // clearance around the disk for ticks and labels
	titleBand    = 24 // vertical space reserved above the disk
	notesPerLine = 6  // vertical space per note line below the disk
)

func newFrame(outerRadiusMM, scale float64, noteLines int) frame {
	r := outerRadiusMM * scale
	side := 2 * (r + frameMargin)
	f := frame{
		width:  side,
		height: side + titleBand + float64(noteLines)*notesPerLine,
		r:      r,
	}
	f.cx = side / 2
	f.cy = titleBand + frameMargin + r
	return f
}

// notesTop returns the y coordinate of the first note line.
func (f frame) notesTop() float64 {
	return f.cy + f.r + frameMargin
}

// polar converts a page-angle (degrees, counter-clockwise) and radius to
// page coordinates relative to the disk center. Page y grows downward, so
// the y component is negated to keep angles counter-clockwise visually.
func (f frame) polar(deg, radius float64) (x, y float64) {
	rad := deg * math.Pi / 180
	return f.cx + radius*math.Cos(rad), f.cy - radius*math.Sin(rad)
}
