package disk

import (
	"math"

	"github.com/diskforge/diskforge/pkg/errors"
)

// Slot is one angular segment of the disk pattern. Angles are degrees,
// measured counter-clockwise from the 0° reference; each slot covers the
// half-open range [StartDeg, EndDeg). Slots are derived from a Spec and
// never mutated.
type Slot struct {
	Index    int     `json:"index"`
	StartDeg float64 `json:"start_deg"`
	EndDeg   float64 `json:"end_deg"`
	Opaque   bool    `json:"opaque"`
}

// WidthDeg returns the angular span of the slot.
func (s Slot) WidthDeg() float64 {
	return s.EndDeg - s.StartDeg
}

// CenterDeg returns the angular midpoint of the slot.
func (s Slot) CenterDeg() float64 {
	return (s.StartDeg + s.EndDeg) / 2
}

// Resolution describes the linear measurement precision of the assembled
// encoder: how far the water level moves per slot transition.
type Resolution struct {
	MMPerSlot             float64 `json:"mm_per_slot"`
	PulleyCircumferenceMM float64 `json:"pulley_circumference_mm"`
}

// ComputeSlots derives the full ordered slot layout from the spec.
//
// Slot i spans [i*360/n, (i+1)*360/n); even indices are opaque. The
// alternating parity is a fixed convention: the renderer fills exactly the
// opaque segments and the guide's cutting tables assume it, so it must not
// be changed independently.
func ComputeSlots(spec Spec) ([]Slot, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	step := spec.StepDeg()
	slots := make([]Slot, spec.SlotCount)
	for i := range slots {
		start := float64(i) * step
		slots[i] = Slot{
			Index:    i,
			StartDeg: start,
			EndDeg:   start + step,
			Opaque:   i%2 == 0,
		}
	}
	return slots, nil
}

// ComputeResolution derives the measurement resolution from the pulley
// geometry: one pulley revolution moves the line by the pulley
// circumference, divided evenly across the slot transitions.
func ComputeResolution(spec Spec) (Resolution, error) {
	if spec.SlotCount <= 0 {
		return Resolution{}, errors.New(errors.ErrCodeInvalidSpec, "slot count must be positive, got %d", spec.SlotCount)
	}
	if spec.PulleyDiameterMM <= 0 {
		return Resolution{}, errors.New(errors.ErrCodeInvalidSpec, "pulley diameter must be positive, got %.2fmm", spec.PulleyDiameterMM)
	}

	circ := math.Pi * spec.PulleyDiameterMM
	return Resolution{
		MMPerSlot:             circ / float64(spec.SlotCount),
		PulleyCircumferenceMM: circ,
	}, nil
}

// ArcLengthMM returns the arc length of one slot's angular span at the
// given radius. This is the physical spacing a sensor sees at its reading
// radius, and the segment width reported in the fabrication guide.
func ArcLengthMM(spec Spec, radiusMM float64) (float64, error) {
	if spec.SlotCount <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidSpec, "slot count must be positive, got %d", spec.SlotCount)
	}
	if radiusMM <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidSpec, "radius must be positive, got %.2fmm", radiusMM)
	}
	return 2 * math.Pi * radiusMM * spec.StepDeg() / 360, nil
}

// AngularWidthDeg returns the angle subtended by the physical slot width at
// the given radius. Used in the reference chart to cross-check the marked
// slot outlines against the cut width.
func AngularWidthDeg(spec Spec, radiusMM float64) (float64, error) {
	if spec.SlotWidthMM <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidSpec, "slot width must be positive, got %.2fmm", spec.SlotWidthMM)
	}
	if radiusMM <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidSpec, "radius must be positive, got %.2fmm", radiusMM)
	}
	return spec.SlotWidthMM * 360 / (2 * math.Pi * radiusMM), nil
}
