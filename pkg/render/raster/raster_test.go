package raster

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/diskforge/diskforge/pkg/disk"
	"github.com/diskforge/diskforge/pkg/plan"
)

func testPlan(t *testing.T) *plan.Plan {
	t.Helper()
	spec := disk.Spec{
		DiameterMM:       100,
		CenterHoleMM:     8,
		SlotCount:        40,
		SlotWidthMM:      3,
		InnerRadiusMM:    35,
		OuterRadiusMM:    45,
		PulleyDiameterMM: 50,
	}
	p, err := plan.Build(plan.KindTemplate, spec, plan.DefaultOptions())
	if err != nil {
		t.Fatalf("building plan: %v", err)
	}
	return p
}

func TestRenderPNGDimensions(t *testing.T) {
	p := testPlan(t)

	data, err := RenderPNG(p, 2)
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a decodable PNG: %v", err)
	}

	wantW := int(math.Ceil(p.FrameWidth * 2))
	wantH := int(math.Ceil(p.FrameHeight * 2))
	bounds := img.Bounds()
	if bounds.Dx() != wantW || bounds.Dy() != wantH {
		t.Errorf("image size = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), wantW, wantH)
	}
}

func TestRenderPNGDefaultScale(t *testing.T) {
	p := testPlan(t)

	data, err := RenderPNG(p, 0)
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a decodable PNG: %v", err)
	}
	if img.Bounds().Dx() != int(math.Ceil(p.FrameWidth*4)) {
		t.Errorf("zero scale should fall back to 4 px/mm, got width %d", img.Bounds().Dx())
	}
}
