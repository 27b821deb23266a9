package plan

import (
	"fmt"

	"github.com/diskforge/diskforge/pkg/disk"
)

// buildTemplate produces the cutting template: the disk outline, center
// hole, slot band guides, one filled wedge per opaque slot, boundary
// ticks, degree labels, and the fabrication notes block.
func buildTemplate(spec disk.Spec, opts Options) (*Plan, error) {
	slots, err := disk.ComputeSlots(spec)
	if err != nil {
		return nil, err
	}
	res, err := disk.ComputeResolution(spec)
	if err != nil {
		return nil, err
	}
	arc, err := disk.ArcLengthMM(spec, spec.SensorRadiusMM())
	if err != nil {
		return nil, err
	}

	notes := []string{
		"FABRICATION NOTES:",
		fmt.Sprintf("Material: %s", spec.Material),
		fmt.Sprintf("Disk diameter: %.1fmm, center hole: %.1fmm", spec.DiameterMM, spec.CenterHoleMM),
		fmt.Sprintf("%d slots, %.1fmm wide, radius %.1f-%.1fmm", spec.SlotCount, spec.SlotWidthMM, spec.InnerRadiusMM, spec.OuterRadiusMM),
		fmt.Sprintf("Segment span: %.2f° (%.2fmm arc at %.1fmm radius)", spec.StepDeg(), arc, spec.SensorRadiusMM()),
		fmt.Sprintf("Resolution: %.3fmm per slot with %.0fmm pulley", res.MMPerSlot, spec.PulleyDiameterMM),
	}
	if opts.Scale != 1 {
		notes = append(notes, fmt.Sprintf("TEMPLATE AT %.0fx SCALE - reduce to %.0f%% when printing", opts.Scale, 100/opts.Scale))
	}

	f := newFrame(spec.DiameterMM/2, opts.Scale, len(notes))
	p := &Plan{
		Kind:        KindTemplate,
		Spec:        spec,
		Scale:       opts.Scale,
		FrameWidth:  f.width,
		FrameHeight: f.height,
		Title:       fmt.Sprintf("%.0fmm ENCODER DISK TEMPLATE", spec.DiameterMM),
		Subtitle: fmt.Sprintf("%d slots (%d opaque, %d transparent), %.1fmm slot width",
			spec.SlotCount, spec.SlotCount/2, spec.SlotCount/2, spec.SlotWidthMM),
		Notes: notes,
	}

	s := opts.Scale
	p.Circles = append(p.Circles,
		Circle{CX: f.cx, CY: f.cy, R: spec.DiameterMM / 2 * s, Class: ClassOutline},
		Circle{CX: f.cx, CY: f.cy, R: spec.CenterHoleMM / 2 * s, Class: ClassHole},
		Circle{CX: f.cx, CY: f.cy, R: spec.InnerRadiusMM * s, Class: ClassGuide, Dashed: true},
		Circle{CX: f.cx, CY: f.cy, R: spec.OuterRadiusMM * s, Class: ClassGuide, Dashed: true},
	)

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
			Class:    ClassOpaque,
		})
	}

	if opts.Crosshair {
		p.Lines = append(p.Lines,
			Line{X1: f.cx - f.r, Y1: f.cy, X2: f.cx + f.r, Y2: f.cy, Class: ClassCrosshair, Dashed: true},
			Line{X1: f.cx, Y1: f.cy - f.r, X2: f.cx, Y2: f.cy + f.r, Class: ClassCrosshair, Dashed: true},
		)
	}

	if opts.Ticks {
		addBoundaryTicks(p, f, spec, s)
	}

	// Diameter callouts under the disk and beside the hole.
	p.Labels = append(p.Labels,
		Label{X: f.cx, Y: f.cy + f.r + 8, Text: fmt.Sprintf("Ø%.1fmm", spec.DiameterMM), Size: 4, Class: ClassDimension, Bold: true},
		Label{X: f.cx, Y: f.cy - spec.CenterHoleMM/2*s - 2, Text: fmt.Sprintf("Ø%.1fmm", spec.CenterHoleMM), Size: 2.5, Class: ClassDimension},
	)

	return p, nil
}

// addBoundaryTicks draws a short radial tick at every slot boundary and a
// degree label at each quarter turn.
func addBoundaryTicks(p *Plan, f frame, spec disk.Spec, scale float64) {
	outer := spec.DiameterMM / 2 * scale
	for i := 0; i < spec.SlotCount; i++ {
		deg := float64(i) * spec.StepDeg()
		x1, y1 := f.polar(deg, outer)
		x2, y2 := f.polar(deg, outer+4)
		p.Lines = append(p.Lines, Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Class: ClassTick})
	}
	for q := 0; q < 4; q++ {
		deg := float64(q) * 90
		x, y := f.polar(deg, outer+9)
		p.Labels = append(p.Labels, Label{X: x, Y: y, Text: fmt.Sprintf("%d°", int(deg)), Size: 3, Class: ClassTick})
	}
}
