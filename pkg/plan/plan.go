package plan

import (
	"encoding/json"
	"fmt"

	"github.com/diskforge/diskforge/pkg/disk"
	"github.com/diskforge/diskforge/pkg/errors"
)

// Kind selects which drawing a plan describes.
type Kind string

const (
	// KindTemplate is the actual-size (or scaled) cutting template.
	KindTemplate Kind = "template"
	// KindCutting is the phase-by-phase cutting sequence diagram.
	KindCutting Kind = "cutting"
	// KindSensor is the sensor placement diagram.
	KindSensor Kind = "sensor"
)

// ValidKinds is the set of supported plan kinds.
var ValidKinds = map[Kind]bool{
	KindTemplate: true,
	KindCutting:  true,
	KindSensor:   true,
}

// ParseKind validates a kind string.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !ValidKinds[k] {
		return "", errors.New(errors.ErrCodeInvalidKind, "invalid plan kind %q (must be 'template', 'cutting', or 'sensor')", s)
	}
	return k, nil
}

// Element classes. Styles map classes to stroke/fill treatments, so the
// same plan renders as a print template or a blueprint without rebuilding.
const (
	ClassOutline   = "outline" // disk outer edge
	ClassHole      = "hole"    // center hole
	ClassGuide     = "guide"   // dashed construction circles
	ClassOpaque    = "opaque"  // filled opaque segment
	ClassPhase1    = "phase1"  // cutting sequence phase markers
	ClassPhase2    = "phase2"
	ClassPhase3    = "phase3"
	ClassTick      = "tick"      // angular tick lines
	ClassCrosshair = "crosshair" // alignment crosshairs
	ClassSensor    = "sensor"    // sensor body markers
	ClassDimension = "dimension" // dimension arrows and text
)

// Circle is a full circle centered at (CX, CY).
type Circle struct {
	CX     float64 `json:"cx"`
	CY     float64 `json:"cy"`
	R      float64 `json:"r"`
	Class  string  `json:"class"`
	Dashed bool    `json:"dashed,omitempty"`
}

// Wedge is an annular segment between InnerR and OuterR spanning
// [StartDeg, EndDeg) counter-clockwise from the +x axis.
type Wedge struct {
	CX       float64 `json:"cx"`
	CY       float64 `json:"cy"`
	InnerR   float64 `json:"inner_r"`
	OuterR   float64 `json:"outer_r"`
	StartDeg float64 `json:"start_deg"`
	EndDeg   float64 `json:"end_deg"`
	Class    string  `json:"class"`
}

// Line is a straight stroke between two points.
type Line struct {
	X1     float64 `json:"x1"`
	Y1     float64 `json:"y1"`
	X2     float64 `json:"x2"`
	Y2     float64 `json:"y2"`
	Class  string  `json:"class"`
	Dashed bool    `json:"dashed,omitempty"`
}

// Rect is an axis-aligned rectangle, used for sensor body markers.
type Rect struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
	Class string  `json:"class"`
}

// Label is a text annotation anchored at (X, Y).
type Label struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Text   string  `json:"text"`
	Size   float64 `json:"size"` // font size in page units
	Class  string  `json:"class"`
	Anchor string  `json:"anchor,omitempty"` // "start", "middle" (default), "end"
	Bold   bool    `json:"bold,omitempty"`
}

// Plan is a complete drawing: frame size, primitives, and annotations.
// Coordinates are millimeters with the origin at the top-left corner and
// y growing downward; angle zero points right and increases
// counter-clockwise on the page.
type Plan struct {
	Kind        Kind      `json:"kind"`
	Spec        disk.Spec `json:"spec"`
	Scale       float64   `json:"scale"` // drawing scale relative to physical size
	FrameWidth  float64   `json:"frame_width"`
	FrameHeight float64   `json:"frame_height"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle,omitempty"`

	Circles []Circle `json:"circles,omitempty"`
	Wedges  []Wedge  `json:"wedges,omitempty"`
	Lines   []Line   `json:"lines,omitempty"`
	Rects   []Rect   `json:"rects,omitempty"`
	Labels  []Label  `json:"labels,omitempty"`

	// Notes are the fabrication-note lines printed beside the drawing.
	Notes []string `json:"notes,omitempty"`
}

// Options control plan construction.
type Options struct {
	// Scale multiplies all disk geometry on the page. Small disks are
	// traditionally drawn oversized and reduced when printing; the
	// template annotates any non-unit scale.
	Scale float64

	// Ticks draws radial tick lines at every slot boundary.
	Ticks bool

	// Crosshair draws center alignment crosshairs.
	Crosshair bool
}

// DefaultOptions are the options used by Build when none are given:
// unit scale with ticks and crosshairs enabled.
func DefaultOptions() Options {
	return Options{Scale: 1, Ticks: true, Crosshair: true}
}

// Build constructs the plan of the given kind from a validated spec.
func Build(kind Kind, spec disk.Spec, opts Options) (*Plan, error) {
	if !ValidKinds[kind] {
		return nil, errors.New(errors.ErrCodeInvalidKind, "invalid plan kind %q", kind)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if opts.Scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidSpec, "scale must be positive, got %v", opts.Scale)
	}

	switch kind {
	case KindTemplate:
		return buildTemplate(spec, opts)
	case KindCutting:
		return buildCutting(spec, opts)
	case KindSensor:
		return buildSensor(spec, opts)
	}
	return nil, errors.New(errors.ErrCodeInternal, "unhandled plan kind %q", kind)
}

// Marshal encodes a plan as indented JSON. The output is stable for
// identical input, so plan bytes double as cache key material.
func Marshal(p *Plan) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}
	return append(data, '\n'), nil
}

// Unmarshal decodes a plan produced by Marshal.
func Unmarshal(data []byte) (*Plan, error) {
	var p Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	return &p, nil
}
