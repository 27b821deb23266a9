package disk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/diskforge/diskforge/pkg/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Spec)
		wantErr bool
	}{
		{"Valid", func(s *Spec) {}, false},
		{"OddSlots", func(s *Spec) { s.SlotCount = 39 }, true},
		{"ZeroSlots", func(s *Spec) { s.SlotCount = 0 }, true},
		{"ZeroDiameter", func(s *Spec) { s.DiameterMM = 0 }, true},
		{"SlotBandPastEdge", func(s *Spec) { s.OuterRadiusMM = 95 }, true},
		{"HoleSwallowsSlotBand", func(s *Spec) { s.CenterHoleMM = 140 }, true},
		{"ZeroSlotWidth", func(s *Spec) { s.SlotWidthMM = 0 }, true},
		{"ZeroPulley", func(s *Spec) { s.PulleyDiameterMM = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := workshopSpec()
			tt.mutate(&spec)
			err := spec.Validate()
			if tt.wantErr && !errors.Is(err, errors.ErrCodeInvalidSpec) {
				t.Errorf("Validate = %v, want INVALID_SPEC", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate = %v, want nil", err)
			}
		})
	}
}

func TestLoadSpec(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "disk.toml")

	content := `
diameter_mm = 180.0
center_hole_mm = 8.0
slot_count = 40
slot_width_mm = 3.0
inner_radius_mm = 70.0
outer_radius_mm = 85.0
pulley_diameter_mm = 50.0
material = "2mm stainless steel"
thickness_mm = 2.0
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	spec, err := LoadSpec(path)
	if err != nil {
		t.Fatalf("LoadSpec error: %v", err)
	}
	if spec.SlotCount != 40 {
		t.Errorf("SlotCount = %d, want 40", spec.SlotCount)
	}
	if spec.Material != "2mm stainless steel" {
		t.Errorf("Material = %q", spec.Material)
	}
	if spec.SensorRadiusMM() != 77.5 {
		t.Errorf("SensorRadiusMM = %v, want 77.5", spec.SensorRadiusMM())
	}
}

func TestLoadSpecErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("Missing", func(t *testing.T) {
		_, err := LoadSpec(filepath.Join(dir, "nope.toml"))
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("got %v, want FILE_NOT_FOUND", err)
		}
	})

	t.Run("UnknownKey", func(t *testing.T) {
		path := filepath.Join(dir, "typo.toml")
		content := `
diameter_mm = 100.0
center_hole_mm = 8.0
slot_count = 40
slot_width_mm = 3.0
inner_radius_mm = 70.0
outer_radius_mm = 85.0
pulley_diameter_mm = 50.0
slot_widht_mm = 3.0
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadSpec(path); !errors.Is(err, errors.ErrCodeInvalidSpec) {
			t.Errorf("got %v, want INVALID_SPEC", err)
		}
	})

	t.Run("InvalidGeometry", func(t *testing.T) {
		path := filepath.Join(dir, "odd.toml")
		content := `
diameter_mm = 100.0
center_hole_mm = 8.0
slot_count = 21
slot_width_mm = 3.0
inner_radius_mm = 70.0
outer_radius_mm = 85.0
pulley_diameter_mm = 50.0
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadSpec(path); !errors.Is(err, errors.ErrCodeInvalidSpec) {
			t.Errorf("got %v, want INVALID_SPEC", err)
		}
	})
}

func TestPresets(t *testing.T) {
	all := Presets()
	if len(all) == 0 {
		t.Fatal("no builtin presets")
	}

	for _, p := range all {
		if err := p.Spec.Validate(); err != nil {
			t.Errorf("preset %s fails validation: %v", p.Name, err)
		}
	}

	if _, err := PresetByName(DefaultPreset); err != nil {
		t.Errorf("default preset %q not found: %v", DefaultPreset, err)
	}

	if _, err := PresetByName("titanium-9000"); !errors.Is(err, errors.ErrCodeInvalidPreset) {
		t.Errorf("unknown preset: got %v, want INVALID_PRESET", err)
	}
}
