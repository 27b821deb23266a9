// Package guide assembles fabrication instruction documents for an
// encoder disk. All content is derived from the disk spec, so the same
// generator serves every preset and custom geometry.
//
// Three renderings share the section content: Markdown for reading
// on-screen, PlainText with the markup stripped, and PrintReady with a
// ruled, numbered-section layout for workshop printouts.
package guide

import (
	"fmt"
	"strings"
	"time"

	"github.com/diskforge/diskforge/pkg/disk"
	"github.com/diskforge/diskforge/pkg/plan"
)

// Document generates fabrication guides for a single disk spec.
type Document struct {
	spec disk.Spec
	res  disk.Resolution
	now  time.Time
}

// Option configures document generation.
type Option func(*Document)

// WithTimestamp fixes the generation timestamp. Used by tests and by
// the cache so identical inputs yield identical bytes.
func WithTimestamp(t time.Time) Option {
	return func(d *Document) { d.now = t }
}

// New validates the spec and prepares a guide generator.
func New(spec disk.Spec, opts ...Option) (*Document, error) {
	res, err := disk.ComputeResolution(spec)
	if err != nil {
		return nil, err
	}
	d := &Document{spec: spec, res: res, now: time.Now()}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Markdown renders the full fabrication guide as Markdown.
func (d *Document) Markdown() string {
	sections := []string{
		d.header(),
		d.specifications(),
		d.resolutionCalc(),
		d.fabricationSteps(),
		d.qualityControl(),
		d.alternatives(),
		d.templateData(),
	}
	return strings.Join(sections, "\n") + "\n"
}

// PlainText renders the guide with Markdown markers stripped.
func (d *Document) PlainText() string {
	return stripMarkdown(d.Markdown())
}

func (d *Document) header() string {
	s := d.spec
	return fmt.Sprintf(`# %.0fmm Encoder Disk Fabrication Guide
Generated on: %s

## Why This Size Works

- %.0fmm slots are easily visible and cuttable by hand
- Hand tools work effectively at this scale
- Mistakes are correctable
- Better heat dissipation during cutting
- Professional appearance when finished`,
		s.DiameterMM, d.now.Format("2006-01-02 15:04:05"),
		s.SlotWidthMM)
}

func (d *Document) specifications() string {
	s := d.spec
	arc, _ := disk.ArcLengthMM(s, s.SensorRadiusMM())
	return fmt.Sprintf(`
## Design Specifications

`+"```"+`
[Disk Specifications]
- Diameter: %.0fmm (%.0fcm)
- Slots: %d
- Slot width: %.1fmm
- Slot length: %.1fmm (from radius %.1fmm to %.1fmm)
- Center hole: %.1fmm
- Material: %s
- Total cutting area: %d slots x %.1fmm x %.1fmm
`+"```"+`

### Angle Calculations:
- Degrees per slot: %s
- Slot spacing: %s center-to-center
- Arc length per slot at %.1fmm radius: %.2fmm`,
		s.DiameterMM, s.DiameterMM/10,
		s.SlotCount,
		s.SlotWidthMM,
		s.SlotLengthMM(), s.InnerRadiusMM, s.OuterRadiusMM,
		s.CenterHoleMM,
		s.Material,
		s.SlotCount, s.SlotWidthMM, s.SlotLengthMM(),
		deg(s.StepDeg()), deg(s.StepDeg()),
		s.SensorRadiusMM(), arc)
}

func (d *Document) resolutionCalc() string {
	s := d.spec
	circCM := d.res.PulleyCircumferenceMM / 10
	return fmt.Sprintf(`
## Resolution Calculation

**With %.0fmm disk and %.0fmm diameter pulley:**
`+"```"+`
Pulley circumference = pi x %.1fcm = %.2fcm
Each revolution = %.2fcm water level change
%d slots per revolution = %.2fcm / %d = %.4fcm per slot
`+"```"+`

**Your resolution: %.3fmm per slot**

Each encoder pulse represents %.3fmm of water level change.`,
		s.DiameterMM, s.PulleyDiameterMM,
		s.PulleyDiameterMM/10, circCM,
		circCM,
		s.SlotCount, circCM, s.SlotCount, circCM/float64(s.SlotCount),
		d.res.MMPerSlot, d.res.MMPerSlot)
}

func (d *Document) fabricationSteps() string {
	s := d.spec
	return fmt.Sprintf(`
## Manual Fabrication Guide for %.0fmm Disk

### Step 1: Template Creation and Planning
`+"```"+`
Required Tools:
- Compass (for %.0fmm circle)
- Protractor (360 degrees marked)
- Permanent marker
- Steel ruler
- Center punch
- Sharp scribe

Process:
1. Draw %.0fmm circle on paper template
2. Mark center point precisely
3. Divide into %d segments: 360 / %d = %s per segment
4. Mark slot positions: %.1fmm wide, %.1fmm long
5. Slots from radius %.1fmm to %.1fmm
`+"```"+`

### Step 2: Marking the Steel Disk
`+"```"+`
Safety First:
- Wear safety glasses
- Secure work surface
- Good lighting essential

Marking Process:
1. Center punch exact center point
2. Drill %.1fmm center hole (use cutting oil)
3. Mount disk on temporary arbor for marking
4. Use protractor to mark every %s
5. Draw radial lines from center to edge
6. Mark slot boundaries at %.1fmm and %.1fmm radius
7. Draw slot outlines: %.2fmm each side of radial line
`+"```"+`

### Step 3: Cutting Process
`+"```"+`
Required Tools:
- Rotary tool with cutting wheels (1-1.5mm thickness)
- Straight edge guide/fence
- Clamps
- Safety equipment (glasses, dust mask)
- Cutting oil

Cutting Technique:
1. Set up straight edge guide for each slot
2. Start with light scoring passes
3. Make 3-4 progressively deeper passes
4. Cut from inner radius (%.1fmm) outward
5. Maintain steady feed rate to avoid overheating
6. Take 5-minute breaks every %d slots
7. Use cutting oil to reduce heat and improve finish
`+"```"+`

### Step 4: Cutting Sequence Strategy
`+"```"+`
Smart Cutting Order (maintains structural integrity):
Phase 1: Cut slots at %s
Phase 2: Cut slots at %s
Phase 3: Cut remaining slots in systematic pattern
Phase 4: Final cleanup and deburring

This prevents:
- Disk warping during cutting
- Loss of reference marks
- Accumulation of cutting stress
`+"```"+`

### Step 5: Finishing Process
`+"```"+`
Deburring:
- Use fine file to remove cutting burrs
- Light sandpaper (320 grit) for smooth edges
- Ensure all slots have clean, sharp edges

Surface Preparation:
- Clean with degreaser
- Light sand with 400 grit if painting
- Wipe clean with tack cloth

Painting (if desired):
- Prime with metal primer
- Apply matte black paint to alternate segments
- Use masking tape for clean lines
- Allow full cure time between coats
`+"```",
		s.DiameterMM,
		s.DiameterMM,
		s.DiameterMM,
		s.SlotCount, s.SlotCount, deg(s.StepDeg()),
		s.SlotWidthMM, s.SlotLengthMM(),
		s.InnerRadiusMM, s.OuterRadiusMM,
		s.CenterHoleMM,
		deg(s.StepDeg()),
		s.InnerRadiusMM, s.OuterRadiusMM,
		s.SlotWidthMM/2,
		s.InnerRadiusMM,
		pauseInterval(s.SlotCount),
		phaseAngles(s, 1), phaseAngles(s, 2))
}

func (d *Document) qualityControl() string {
	s := d.spec
	return fmt.Sprintf(`
## Quality Control Checklist

### Dimensional Checks:
`+"```"+`
[ ] Overall diameter: %.0fmm +/- 0.5mm
[ ] Center hole: %.1fmm +/- 0.1mm
[ ] All %d slots present and accounted for
[ ] Slot width: %.1fmm +/- 0.2mm
[ ] Slot length: %.1fmm +/- 0.5mm
[ ] Slot spacing: %s +/- 0.5 degrees between centers
`+"```"+`

### Functional Checks:
`+"```"+`
[ ] Disk runs true on shaft (no wobble > 0.1mm)
[ ] Opaque segments block light completely
[ ] Transparent segments allow clear light passage
[ ] No burrs or sharp edges that could damage sensors
[ ] Surface finish appropriate for sensor detection
[ ] Center hole fits bearing/shaft properly
`+"```"+`

### Optical Performance:
`+"```"+`
[ ] Clean transitions between opaque and transparent
[ ] No partial blockages in slot areas
[ ] Consistent opacity in painted areas
[ ] No scratches in critical sensor areas
[ ] Paint adhesion good (no flaking)
`+"```",
		s.DiameterMM, s.CenterHoleMM, s.SlotCount,
		s.SlotWidthMM, s.SlotLengthMM(), deg(s.StepDeg()))
}

func (d *Document) alternatives() string {
	s := d.spec
	return fmt.Sprintf(`
## Alternative Fabrication Methods

### Method 1: Laser/Waterjet Cutting (Professional)
`+"```"+`
Advantages:
- Perfect precision
- Clean edges
- Fast production
- Repeatable results

Files needed:
- DXF file with exact dimensions
- Material specification: %s
`+"```"+`

### Method 2: Segment Painting (Easier DIY)
`+"```"+`
If cutting %d slots seems daunting:

1. Cut blank %.0fmm disk with %.1fmm center hole
2. Sand surface lightly for paint adhesion
3. Create vinyl stencil with slot pattern
4. Paint entire disk matte black
5. Remove stencil while paint is slightly tacky
6. Touch up as needed
7. Clear coat for protection

This requires only basic metalworking - no precision slot cutting
`+"```"+`

### Method 3: Hybrid Approach
`+"```"+`
1. Professional center hole and outer diameter
2. DIY slot cutting using template
3. Professional finishing if desired

Combines cost savings with precision where it matters most
`+"```",
		s.Material, s.SlotCount, s.DiameterMM, s.CenterHoleMM)
}

func (d *Document) templateData() string {
	s := d.spec
	arcWidth, _ := disk.ArcLengthMM(s, s.SensorRadiusMM())
	angWidth, _ := disk.AngularWidthDeg(s, s.SensorRadiusMM())

	var b strings.Builder
	b.WriteString("\n## Template Data and Measurements\n\n")
	b.WriteString("### Slot Position Table:\n```\n")
	b.WriteString(slotTable(s, 2))
	b.WriteString("```\n\n")

	fmt.Fprintf(&b, `### Critical Measurements:
`+"```"+`
Center coordinates: (0, 0)
Slot inner radius: %.1fmm
Slot outer radius: %.1fmm
Slot arc length: %.2fmm at center radius
Angular width: %.2f degrees at center radius
`+"```"+`

### Time Estimates:
`+"```"+`
Design and layout: 30-45 minutes
Marking the disk: 20-30 minutes
Cutting %d slots: 2-3 hours (with breaks)
Deburring and finishing: 30-45 minutes
Painting (if applicable): 1 hour + drying time
Total project time: 4-6 hours over 1-2 days
`+"```"+`

### Material Requirements:
`+"```"+`
- %s disk, %.0fmm diameter
- Cutting wheels: 10-15 pieces (spares for breakage)
- Primer: 50ml
- Paint: 100ml matte black
- Sandpaper: 320 and 400 grit
- Cutting oil: 100ml
`+"```"+`

### Sensor Placement Guide:
`+"```"+`
For %.0fmm disk with sensors:
- Place sensors at radius %.1fmm (center of slot area)
- Maintain 1-2mm gap from disk surface
- Primary sensor: choose any convenient position
- Quadrature sensor: place 90 degrees from the primary
- Ensure both sensors are at same radius for timing accuracy
`+"```",
		s.InnerRadiusMM, s.OuterRadiusMM, arcWidth, angWidth,
		s.SlotCount,
		s.Material, s.DiameterMM,
		s.DiameterMM, s.SensorRadiusMM())
	return b.String()
}

// slotTable lays out "Slot NN: angle" entries in the given number of
// columns, filling down each column first.
func slotTable(s disk.Spec, cols int) string {
	entries := make([]string, s.SlotCount)
	for i := range entries {
		entries[i] = fmt.Sprintf("Slot %2d: %6.1f deg", i+1, float64(i)*s.StepDeg())
	}
	rows := (len(entries) + cols - 1) / cols

	var b strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			idx := c*rows + r
			if idx >= len(entries) {
				continue
			}
			if c > 0 {
				b.WriteString("    ")
			}
			b.WriteString(entries[idx])
		}
		b.WriteString("\n")
	}
	return b.String()
}

// phaseAngles lists the start angles of the slots cut in a phase, so
// the guide's cutting order names the same slots the cutting diagram
// colors. Falls back to a generic description for phases with no slots.
func phaseAngles(s disk.Spec, phase int) string {
	var angles []string
	for i, p := range plan.CutPhases(s) {
		if p == phase {
			angles = append(angles, deg(float64(i)*s.StepDeg()))
		}
	}
	if len(angles) == 0 {
		return "evenly spaced reference positions"
	}
	return strings.Join(angles, ", ")
}

func pauseInterval(slots int) int {
	if n := slots / 4; n > 4 {
		return n
	}
	return 4
}

// deg formats an angle compactly: whole degrees without a decimal
// point, fractional ones with two places.
func deg(v float64) string {
	if v == float64(int(v)) {
		return fmt.Sprintf("%d deg", int(v))
	}
	return fmt.Sprintf("%.2f deg", v)
}

// stripMarkdown removes heading markers, bold markers, and code fences
// so the content reads as plain text.
func stripMarkdown(md string) string {
	var b strings.Builder
	for _, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimLeft(line, "#")
		if trimmed != line {
			trimmed = strings.TrimPrefix(trimmed, " ")
		}
		if strings.HasPrefix(strings.TrimSpace(trimmed), "```") {
			continue
		}
		trimmed = strings.ReplaceAll(trimmed, "**", "")
		b.WriteString(trimmed)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
