package plan

import (
	"fmt"
	"math"

	"github.com/diskforge/diskforge/pkg/disk"
)

// CutPhases assigns every slot a cutting phase. Cutting in spread phases
// keeps the disk from warping: the opaque slots nearest the quarter
// positions cut first, the ones nearest the eighth positions second, the
// remaining opaque slots third. Transparent slots are never cut and get
// phase 0. Ties resolve to the lower index.
func CutPhases(spec disk.Spec) []int {
	n := spec.SlotCount
	if n <= 0 {
		return nil
	}

	phases := make([]int, n)
	for i := 0; i < n; i += 2 {
		phases[i] = 3
	}

	step := spec.StepDeg()
	assign := func(phase int, targets ...float64) {
		for _, target := range targets {
			best, bestDist := -1, math.MaxFloat64
			for i := 0; i < n; i += 2 {
				center := (float64(i) + 0.5) * step
				d := math.Abs(math.Mod(center-target+540, 360) - 180)
				if d < bestDist {
					best, bestDist = i, d
				}
			}
			if best >= 0 && phases[best] == 3 {
				phases[best] = phase
			}
		}
	}
	assign(1, 0, 90, 180, 270)
	assign(2, 45, 135, 225, 315)

	return phases
}

// CutPhase returns the cutting phase of one slot, or 0 for a transparent
// slot that is not cut.
func CutPhase(spec disk.Spec, index int) int {
	phases := CutPhases(spec)
	if index < 0 || index >= len(phases) {
		return 0
	}
	return phases[index]
}

// buildCutting produces the cutting sequence diagram: every opaque slot
// drawn as a wedge whose class encodes its phase.
func buildCutting(spec disk.Spec, opts Options) (*Plan, error) {
	slots, err := disk.ComputeSlots(spec)
	if err != nil {
		return nil, err
	}

	notes := []string{
		"CUTTING SEQUENCE:",
		"Phase 1: slots nearest the quarter positions (0°, 90°, 180°, 270°)",
		"Phase 2: slots nearest the 45° diagonals",
		"Phase 3: remaining slots, working around the disk",
		"Score lightly first; deepen over 3-4 passes, inner radius outward",
		fmt.Sprintf("Pause every %d slots to let the disk cool", max(spec.SlotCount/4, 4)),
	}

	f := newFrame(spec.DiameterMM/2, opts.Scale, len(notes))
	p := &Plan{
		Kind:        KindCutting,
		Spec:        spec,
		Scale:       opts.Scale,
		FrameWidth:  f.width,
		FrameHeight: f.height,
		Title:       fmt.Sprintf("%.0fmm ENCODER DISK - CUTTING SEQUENCE", spec.DiameterMM),
		Subtitle:    fmt.Sprintf("%d slots to cut in three phases", spec.SlotCount/2),
		Notes:       notes,
	}

	s := opts.Scale
	p.Circles = append(p.Circles,
		Circle{CX: f.cx, CY: f.cy, R: spec.DiameterMM / 2 * s, Class: ClassOutline},
		Circle{CX: f.cx, CY: f.cy, R: spec.CenterHoleMM / 2 * s, Class: ClassHole},
	)

	phaseClass := map[int]string{1: ClassPhase1, 2: ClassPhase2, 3: ClassPhase3}
	phases := CutPhases(spec)
	for _, slot := range slots {
		if !slot.Opaque {
			continue
		}
		p.Wedges = append(p.Wedges, Wedge{
			CX: f.cx, CY: f.cy,
			InnerR:   spec.InnerRadiusMM * s,
			OuterR:   spec.OuterRadiusMM * s,
			StartDeg: slot.StartDeg,
			EndDeg:   slot.EndDeg,
			Class:    phaseClass[phases[slot.Index]],
		})
	}

	return p, nil
}
