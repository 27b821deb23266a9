package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/diskforge/diskforge/pkg/cache"
	"github.com/diskforge/diskforge/pkg/disk"
	"github.com/diskforge/diskforge/pkg/errors"
	"github.com/diskforge/diskforge/pkg/plan"
)

func testSpec() disk.Spec {
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

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("file cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return NewRunner(c, nil, quietLogger())
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Spec: testSpec()}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if opts.Kind != "template" {
		t.Errorf("kind = %q, want template", opts.Kind)
	}
	if opts.Scale != 1 {
		t.Errorf("scale = %g, want 1", opts.Scale)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("formats = %v, want [svg]", opts.Formats)
	}
	if opts.Style != "print" {
		t.Errorf("style = %q, want print", opts.Style)
	}
	if opts.Logger == nil {
		t.Error("logger not defaulted")
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"invalid spec", Options{Spec: disk.Spec{SlotCount: 3}}, errors.ErrCodeInvalidSpec},
		{"invalid kind", Options{Spec: testSpec(), Kind: "exploded"}, errors.ErrCodeInvalidKind},
		{"invalid format", Options{Spec: testSpec(), Formats: []string{"bmp"}}, errors.ErrCodeInvalidFormat},
		{"invalid guide format", Options{Spec: testSpec(), GuideFormats: []string{"pdf"}}, errors.ErrCodeInvalidFormat},
		{"invalid style", Options{Spec: testSpec(), Style: "neon"}, errors.ErrCodeInvalidStyle},
		{"negative scale", Options{Spec: testSpec(), Scale: -2}, errors.ErrCodeInvalidSpec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if errors.GetCode(err) != tt.code {
				t.Errorf("code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestExecuteSVG(t *testing.T) {
	r := newTestRunner(t)
	result, err := r.Execute(context.Background(), Options{
		Spec:    testSpec(),
		Formats: []string{FormatSVG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if result.RunID == "" {
		t.Error("missing run ID")
	}
	if result.Plan == nil || result.Plan.Kind != plan.KindTemplate {
		t.Fatalf("unexpected plan: %+v", result.Plan)
	}
	if result.PlanHash == "" {
		t.Error("missing plan hash")
	}
	if len(result.Failed) != 0 {
		t.Errorf("unexpected failures: %v", result.Failed)
	}

	svg := string(result.Artifacts[FormatSVG])
	if !strings.Contains(svg, "<svg") {
		t.Errorf("svg artifact malformed: %.60s", svg)
	}
	if _, err := plan.Unmarshal(result.Artifacts[FormatJSON]); err != nil {
		t.Errorf("json artifact does not round-trip: %v", err)
	}
}

func TestExecuteCacheHit(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Spec: testSpec(), Formats: []string{FormatSVG}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first execute: %v", err)
	}
	if first.CacheInfo.PlanHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should not hit cache: %+v", first.CacheInfo)
	}

	second, err := r.Execute(ctx, Options{Spec: testSpec(), Formats: []string{FormatSVG}})
	if err != nil {
		t.Fatalf("second execute: %v", err)
	}
	if !second.CacheInfo.PlanHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit cache: %+v", second.CacheInfo)
	}
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs from rendered artifact")
	}
	if first.RunID == second.RunID {
		t.Error("run IDs should be unique")
	}
}

func TestExecuteRefreshBypassesCache(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	if _, err := r.Execute(ctx, Options{Spec: testSpec()}); err != nil {
		t.Fatalf("seed execute: %v", err)
	}
	result, err := r.Execute(ctx, Options{Spec: testSpec(), Refresh: true})
	if err != nil {
		t.Fatalf("refresh execute: %v", err)
	}
	if result.CacheInfo.PlanHit || result.CacheInfo.RenderHit {
		t.Errorf("refresh should bypass cache: %+v", result.CacheInfo)
	}
}

func TestExecuteGuides(t *testing.T) {
	r := newTestRunner(t)
	ts := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	result, err := r.Execute(context.Background(), Options{
		Spec:         testSpec(),
		GuideFormats: []string{GuideMarkdown, GuideText, GuidePrint},
		Timestamp:    ts,
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if result.Plan != nil {
		t.Error("guide-only run should not build a plan")
	}
	md := string(result.Guides[GuideMarkdown])
	if !strings.Contains(md, "# 180mm Encoder Disk Fabrication Guide") {
		t.Errorf("markdown guide malformed: %.60s", md)
	}
	txt := string(result.Guides[GuideText])
	if strings.Contains(txt, "```") {
		t.Error("text guide retains markdown fences")
	}
	pr := string(result.Guides[GuidePrint])
	if !strings.Contains(pr, "PRINT VERSION") {
		t.Error("print guide missing header")
	}
}

func TestExecuteAllKinds(t *testing.T) {
	r := newTestRunner(t)
	for _, kind := range []string{"template", "cutting", "sensor"} {
		result, err := r.Execute(context.Background(), Options{
			Spec: testSpec(),
			Kind: kind,
		})
		if err != nil {
			t.Fatalf("execute %s: %v", kind, err)
		}
		if result.Plan.Kind != plan.Kind(kind) {
			t.Errorf("plan kind = %s, want %s", result.Plan.Kind, kind)
		}
	}
}

func TestManifest(t *testing.T) {
	r := newTestRunner(t)
	opts := Options{Spec: testSpec(), Formats: []string{FormatSVG}}
	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	m := NewManifest(result, opts)
	m.Add("template.svg", FormatSVG, result.Artifacts[FormatSVG])

	data, err := m.Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back Manifest
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.RunID != result.RunID {
		t.Errorf("run id = %q, want %q", back.RunID, result.RunID)
	}
	if len(back.Entries) != 1 || back.Entries[0].File != "template.svg" {
		t.Fatalf("entries = %+v", back.Entries)
	}
	if back.Entries[0].Size != len(result.Artifacts[FormatSVG]) {
		t.Errorf("entry size = %d, want %d", back.Entries[0].Size, len(result.Artifacts[FormatSVG]))
	}
	if len(back.Entries[0].SHA256) != 64 {
		t.Errorf("entry hash length = %d, want 64", len(back.Entries[0].SHA256))
	}
}
