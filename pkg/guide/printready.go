package guide

import (
	"fmt"
	"strings"
)

const (
	ruleWidth    = 80
	sectionWidth = 50
)

var (
	heavyRule = strings.Repeat("=", ruleWidth)
	lightRule = strings.Repeat("-", 40)
)

// PrintReady renders the workshop printout: ruled numbered sections, a
// quick reference summary up front, and a four-column slot angle table
// at the back.
func (d *Document) PrintReady() string {
	s := d.spec
	var b strings.Builder
	w := func(lines ...string) {
		for _, l := range lines {
			b.WriteString(l)
			b.WriteString("\n")
		}
	}

	w(heavyRule,
		fmt.Sprintf("%.0fmm ENCODER DISK FABRICATION GUIDE - PRINT VERSION", s.DiameterMM),
		heavyRule,
		"Generated: "+d.now.Format("2006-01-02 15:04:05"),
		heavyRule,
		"")

	w("QUICK REFERENCE SUMMARY",
		lightRule,
		fmt.Sprintf("* Disk Diameter: %.0fmm", s.DiameterMM),
		fmt.Sprintf("* Number of Slots: %d", s.SlotCount),
		fmt.Sprintf("* Slot Width: %.1fmm", s.SlotWidthMM),
		fmt.Sprintf("* Resolution: %.3fmm per slot", d.res.MMPerSlot),
		fmt.Sprintf("* Material: %s", s.Material),
		"* Estimated Time: 4-6 hours",
		"")

	w("TABLE OF CONTENTS",
		lightRule,
		"1. Specifications & Calculations",
		"2. Tools & Materials Required",
		"3. Step-by-Step Instructions",
		"4. Quality Control Checklist",
		"5. Troubleshooting Guide",
		"6. Slot Position Reference Table",
		"",
		heavyRule)

	d.printSpecifications(w)
	d.printTools(w)
	d.printInstructions(w)
	d.printQualityControl(w)
	d.printTroubleshooting(w)
	d.printSlotTable(w)

	w(heavyRule,
		"END OF FABRICATION GUIDE",
		heavyRule)
	return b.String()
}

func (d *Document) printSpecifications(w func(...string)) {
	s := d.spec
	w("1. SPECIFICATIONS & CALCULATIONS",
		heavyRule,
		"",
		"DISK SPECIFICATIONS:",
		fmt.Sprintf("  Diameter: %.0fmm (%.0fcm)", s.DiameterMM, s.DiameterMM/10),
		fmt.Sprintf("  Total Slots: %d", s.SlotCount),
		fmt.Sprintf("  Slot Width: %.1fmm", s.SlotWidthMM),
		fmt.Sprintf("  Slot Length: %.1fmm", s.SlotLengthMM()),
		fmt.Sprintf("  Slot Position: %.1fmm to %.1fmm radius", s.InnerRadiusMM, s.OuterRadiusMM),
		fmt.Sprintf("  Center Hole: %.1fmm diameter", s.CenterHoleMM),
		fmt.Sprintf("  Material: %s", s.Material),
		"",
		"ANGLE CALCULATIONS:",
		fmt.Sprintf("  Degrees per slot: %s", deg(s.StepDeg())),
		fmt.Sprintf("  Slot spacing: %s center-to-center", deg(s.StepDeg())),
		"",
		"RESOLUTION CALCULATION:",
		fmt.Sprintf("  Pulley diameter: %.0fmm", s.PulleyDiameterMM),
		fmt.Sprintf("  Pulley circumference: %.2fcm", d.res.PulleyCircumferenceMM/10),
		fmt.Sprintf("  Resolution: %.3fmm per slot", d.res.MMPerSlot),
		"")
}

func (d *Document) printTools(w func(...string)) {
	s := d.spec
	w(heavyRule,
		"2. TOOLS & MATERIALS REQUIRED",
		heavyRule,
		"",
		"CUTTING TOOLS:",
		"  * Rotary tool with variable speed",
		"  * Cutting wheels (1-1.5mm thickness) - 15 pieces",
		"  * Straight edge guide/fence",
		"  * Clamps (4-6 pieces)",
		"",
		"MEASURING TOOLS:",
		fmt.Sprintf("  * Compass (for %.0fmm circles)", s.DiameterMM),
		"  * Protractor (360 degrees marked)",
		"  * Steel ruler (300mm minimum)",
		"  * Center punch",
		"  * Sharp scribe",
		"",
		"SAFETY EQUIPMENT:",
		"  * Safety glasses (mandatory)",
		"  * Dust mask",
		"  * Work gloves",
		"  * First aid kit nearby",
		"",
		"MATERIALS:",
		fmt.Sprintf("  * %s disk, %.0fmm diameter", s.Material, s.DiameterMM),
		"  * Cutting oil (100ml)",
		"  * Sandpaper: 320 and 400 grit",
		"  * Metal primer (50ml)",
		"  * Matte black paint (100ml)",
		"  * Clean rags",
		"")
}

func (d *Document) printInstructions(w func(...string)) {
	s := d.spec
	step := strings.Repeat("-", sectionWidth)
	w(heavyRule,
		"3. STEP-BY-STEP INSTRUCTIONS",
		heavyRule,
		"",
		"STEP 1: TEMPLATE PREPARATION (30 minutes)",
		step,
		fmt.Sprintf("1.1 Draw %.0fmm circle on paper using compass", s.DiameterMM),
		"1.2 Mark exact center point",
		fmt.Sprintf("1.3 Divide circle into %d equal segments (%s each)", s.SlotCount, deg(s.StepDeg())),
		"1.4 Mark radial lines from center to edge",
		fmt.Sprintf("1.5 Mark slot boundaries at %.1fmm and %.1fmm radius", s.InnerRadiusMM, s.OuterRadiusMM),
		fmt.Sprintf("1.6 Draw slot outlines: %.1fmm wide centered on radials", s.SlotWidthMM),
		"",
		"STEP 2: DISK PREPARATION (20 minutes)",
		step,
		"2.1 Center punch the disk center precisely",
		fmt.Sprintf("2.2 Drill %.1fmm center hole (use cutting oil)", s.CenterHoleMM),
		"2.3 Mount disk on temporary arbor",
		"2.4 Transfer template markings to steel disk",
		"2.5 Double-check all measurements before cutting",
		"",
		"STEP 3: CUTTING SEQUENCE (2-3 hours)",
		step,
		"IMPORTANT: Follow this order to prevent warping!",
		fmt.Sprintf("Phase 1: Cut slots at %s", phaseAngles(s, 1)),
		fmt.Sprintf("Phase 2: Cut slots at %s", phaseAngles(s, 2)),
		"Phase 3: Cut remaining slots systematically",
		"Phase 4: Final cleanup and deburring",
		"",
		"CUTTING TECHNIQUE:",
		"* Set up straight edge guide for each slot",
		"* Make light scoring passes first (don't cut through)",
		"* Gradually deepen cuts over 3-4 passes",
		"* Cut from inner radius outward",
		fmt.Sprintf("* Take 5-minute breaks every %d slots", pauseInterval(s.SlotCount)),
		"* Use cutting oil to reduce heat",
		"",
		"STEP 4: FINISHING (45 minutes)",
		step,
		"4.1 Remove all burrs with fine file",
		"4.2 Light sanding with 320 grit paper",
		"4.3 Clean with degreaser",
		"4.4 Apply primer if painting",
		"4.5 Paint alternate segments matte black",
		"4.6 Final inspection and touch-up",
		"")
}

func (d *Document) printQualityControl(w func(...string)) {
	s := d.spec
	w(heavyRule,
		"4. QUALITY CONTROL CHECKLIST",
		heavyRule,
		"",
		"DIMENSIONAL CHECKS:",
		fmt.Sprintf("  [ ] Overall diameter: %.0fmm +/- 0.5mm", s.DiameterMM),
		fmt.Sprintf("  [ ] Center hole: %.1fmm +/- 0.1mm", s.CenterHoleMM),
		fmt.Sprintf("  [ ] All %d slots present", s.SlotCount),
		fmt.Sprintf("  [ ] Slot width: %.1fmm +/- 0.2mm", s.SlotWidthMM),
		fmt.Sprintf("  [ ] Slot length: %.1fmm +/- 0.5mm", s.SlotLengthMM()),
		fmt.Sprintf("  [ ] Slot spacing: %s +/- 0.5 degrees", deg(s.StepDeg())),
		"",
		"FUNCTIONAL CHECKS:",
		"  [ ] Disk runs true (wobble < 0.1mm)",
		"  [ ] Opaque segments block light completely",
		"  [ ] Clear segments allow light passage",
		"  [ ] No burrs on edges",
		"  [ ] Paint adherence good",
		"  [ ] Center hole fits shaft properly",
		"")
}

func (d *Document) printTroubleshooting(w func(...string)) {
	w(heavyRule,
		"5. TROUBLESHOOTING GUIDE",
		heavyRule,
		"",
		"PROBLEM: Cutting wheel breaks frequently",
		"SOLUTION: Reduce cutting speed, use more cutting oil",
		"",
		"PROBLEM: Disk gets too hot during cutting",
		"SOLUTION: Take more frequent breaks, use cutting oil",
		"",
		"PROBLEM: Slots not uniform width",
		"SOLUTION: Use consistent feed rate, check guide setup",
		"",
		"PROBLEM: Disk warps during cutting",
		"SOLUTION: Follow recommended cutting sequence",
		"",
		"PROBLEM: Paint doesn't adhere well",
		"SOLUTION: Better surface preparation, use metal primer",
		"")
}

func (d *Document) printSlotTable(w func(...string)) {
	s := d.spec
	w(heavyRule,
		"6. SLOT POSITION REFERENCE TABLE",
		heavyRule,
		"",
		"Slot#  Angle    Slot#  Angle    Slot#  Angle    Slot#  Angle",
		strings.Repeat("-", 64))

	for i := 0; i < s.SlotCount; i += 4 {
		var line strings.Builder
		for j := 0; j < 4; j++ {
			if i+j >= s.SlotCount {
				break
			}
			fmt.Fprintf(&line, "%2d:   %5.1f    ", i+j+1, float64(i+j)*s.StepDeg())
		}
		w(strings.TrimRight(line.String(), " "))
	}

	w("",
		"NOTES:",
		"* Angles measured from 0 degree reference",
		"* Cut slots in the sequence shown in Step 3",
		"* Mark completed slots to track progress",
		"")
}
