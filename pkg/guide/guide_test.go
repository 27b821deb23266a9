package guide

import (
	"strings"
	"testing"
	"time"

	"github.com/diskforge/diskforge/pkg/disk"
	"github.com/diskforge/diskforge/pkg/errors"
)

var testTime = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func workshopSpec() disk.Spec {
	return disk.Spec{
		DiameterMM:       180,
		CenterHoleMM:     8,
		SlotCount:        40,
		SlotWidthMM:      3,
		InnerRadiusMM:    70,
		OuterRadiusMM:    85,
		PulleyDiameterMM: 50,
		Material:         "2mm stainless steel",
	}
}

func newDoc(t *testing.T) *Document {
	t.Helper()
	d, err := New(workshopSpec(), WithTimestamp(testTime))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	return d
}

func TestNewInvalidSpec(t *testing.T) {
	_, err := New(disk.Spec{SlotCount: 3})
	if errors.GetCode(err) != errors.ErrCodeInvalidSpec {
		t.Errorf("code = %v, want INVALID_SPEC", errors.GetCode(err))
	}
}

func TestMarkdownContent(t *testing.T) {
	md := newDoc(t).Markdown()

	for _, want := range []string{
		"# 180mm Encoder Disk Fabrication Guide",
		"2026-03-14 09:26:53",
		"- Slots: 40",
		"- Slot width: 3.0mm",
		"- Slot length: 15.0mm (from radius 70.0mm to 85.0mm)",
		"Degrees per slot: 9 deg",
		"**Your resolution: 3.927mm per slot**",
		"Phase 1: Cut slots at 0 deg, 90 deg, 180 deg, 270 deg",
		"Phase 2: Cut slots at 36 deg, 126 deg, 216 deg, 306 deg",
		"Take 5-minute breaks every 10 slots",
		"## Quality Control Checklist",
		"[ ] All 40 slots present and accounted for",
		"## Alternative Fabrication Methods",
		"Slot  1:    0.0 deg",
		"Slot 40:  351.0 deg",
		"Place sensors at radius 77.5mm",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestMarkdownDeterministic(t *testing.T) {
	d := newDoc(t)
	if d.Markdown() != d.Markdown() {
		t.Errorf("markdown differs between calls")
	}
}

func TestPlainTextStripsMarkup(t *testing.T) {
	txt := newDoc(t).PlainText()

	if strings.Contains(txt, "```") {
		t.Errorf("plain text retains code fences")
	}
	if strings.Contains(txt, "**") {
		t.Errorf("plain text retains bold markers")
	}
	if strings.Contains(txt, "## ") {
		t.Errorf("plain text retains heading markers")
	}
	for _, want := range []string{
		"180mm Encoder Disk Fabrication Guide",
		"Your resolution: 3.927mm per slot",
		"Quality Control Checklist",
	} {
		if !strings.Contains(txt, want) {
			t.Errorf("plain text missing %q", want)
		}
	}
}

func TestPrintReadyLayout(t *testing.T) {
	out := newDoc(t).PrintReady()

	if got := strings.Count(out, strings.Repeat("=", 80)); got < 10 {
		t.Errorf("heavy rules = %d, want at least 10", got)
	}
	for _, want := range []string{
		"180mm ENCODER DISK FABRICATION GUIDE - PRINT VERSION",
		"QUICK REFERENCE SUMMARY",
		"TABLE OF CONTENTS",
		"1. SPECIFICATIONS & CALCULATIONS",
		"2. TOOLS & MATERIALS REQUIRED",
		"3. STEP-BY-STEP INSTRUCTIONS",
		"4. QUALITY CONTROL CHECKLIST",
		"5. TROUBLESHOOTING GUIDE",
		"6. SLOT POSITION REFERENCE TABLE",
		"* Resolution: 3.927mm per slot",
		"Phase 1: Cut slots at 0 deg, 90 deg, 180 deg, 270 deg",
		"END OF FABRICATION GUIDE",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("print guide missing %q", want)
		}
	}

	// 40 slots in 4 columns is 10 table rows; spot-check first and last.
	if !strings.Contains(out, " 1:     0.0") {
		t.Errorf("slot table missing first entry")
	}
	if !strings.Contains(out, "40:   351.0") {
		t.Errorf("slot table missing last entry")
	}
}

func TestParameterizedBySpec(t *testing.T) {
	spec := workshopSpec()
	spec.SlotCount = 20
	spec.DiameterMM = 80
	spec.OuterRadiusMM = 38
	spec.InnerRadiusMM = 30

	d, err := New(spec, WithTimestamp(testTime))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	md := d.Markdown()

	if strings.Contains(md, "180mm Encoder") {
		t.Errorf("guide retains default diameter")
	}
	for _, want := range []string{
		"# 80mm Encoder Disk Fabrication Guide",
		"- Slots: 20",
		"Degrees per slot: 18 deg",
		"Your resolution: 7.854mm per slot",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}
