package disk

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/diskforge/diskforge/pkg/errors"
)

// Spec describes the physical geometry of a slotted encoder disk together
// with the pulley it measures. All lengths are millimeters.
//
// The slot count must be even: the disk alternates opaque and transparent
// segments, and an odd count would leave two like segments adjacent at the
// 0° seam.
type Spec struct {
	// DiameterMM is the outer diameter of the disk.
	DiameterMM float64 `toml:"diameter_mm"`

	// CenterHoleMM is the diameter of the shaft hole.
	CenterHoleMM float64 `toml:"center_hole_mm"`

	// SlotCount is the total number of angular segments, opaque and
	// transparent combined. Must be a positive even integer.
	SlotCount int `toml:"slot_count"`

	// SlotWidthMM is the physical width of a cut slot.
	SlotWidthMM float64 `toml:"slot_width_mm"`

	// InnerRadiusMM and OuterRadiusMM bound the radial band the slots
	// occupy. Slots are cut between these two radii.
	InnerRadiusMM float64 `toml:"inner_radius_mm"`
	OuterRadiusMM float64 `toml:"outer_radius_mm"`

	// PulleyDiameterMM is the diameter of the pulley the float line runs
	// over. One pulley revolution equals one disk revolution.
	PulleyDiameterMM float64 `toml:"pulley_diameter_mm"`

	// Material is a free-form label used in the fabrication guide
	// (e.g. "2mm stainless steel").
	Material string `toml:"material"`

	// ThicknessMM is the sheet thickness, used for guide prose only.
	ThicknessMM float64 `toml:"thickness_mm"`
}

// Validate checks the geometric invariants of the spec. It returns an
// INVALID_SPEC error describing the first violation found.
func (s Spec) Validate() error {
	switch {
	case s.SlotCount <= 0:
		return errors.New(errors.ErrCodeInvalidSpec, "slot count must be positive, got %d", s.SlotCount)
	case s.SlotCount%2 != 0:
		return errors.New(errors.ErrCodeInvalidSpec, "slot count must be even for an alternating pattern, got %d", s.SlotCount)
	case s.DiameterMM <= 0:
		return errors.New(errors.ErrCodeInvalidSpec, "diameter must be positive, got %.2fmm", s.DiameterMM)
	case s.InnerRadiusMM <= 0:
		return errors.New(errors.ErrCodeInvalidSpec, "inner radius must be positive, got %.2fmm", s.InnerRadiusMM)
	case s.OuterRadiusMM <= s.InnerRadiusMM:
		return errors.New(errors.ErrCodeInvalidSpec, "outer radius (%.2fmm) must exceed inner radius (%.2fmm)",
			s.OuterRadiusMM, s.InnerRadiusMM)
	case s.OuterRadiusMM > s.DiameterMM/2:
		return errors.New(errors.ErrCodeInvalidSpec, "outer slot radius (%.2fmm) extends past the disk edge (%.2fmm)",
			s.OuterRadiusMM, s.DiameterMM/2)
	case s.CenterHoleMM <= 0:
		return errors.New(errors.ErrCodeInvalidSpec, "center hole must be positive, got %.2fmm", s.CenterHoleMM)
	case s.CenterHoleMM >= s.InnerRadiusMM*2:
		return errors.New(errors.ErrCodeInvalidSpec, "center hole (%.2fmm) must be smaller than the slot band (%.2fmm)",
			s.CenterHoleMM, s.InnerRadiusMM*2)
	case s.SlotWidthMM <= 0:
		return errors.New(errors.ErrCodeInvalidSpec, "slot width must be positive, got %.2fmm", s.SlotWidthMM)
	case s.PulleyDiameterMM <= 0:
		return errors.New(errors.ErrCodeInvalidSpec, "pulley diameter must be positive, got %.2fmm", s.PulleyDiameterMM)
	}
	return nil
}

// SensorRadiusMM returns the radius at which sensors should read the disk:
// the center of the slot band.
func (s Spec) SensorRadiusMM() float64 {
	return (s.InnerRadiusMM + s.OuterRadiusMM) / 2
}

// SlotLengthMM returns the radial length of a cut slot.
func (s Spec) SlotLengthMM() float64 {
	return s.OuterRadiusMM - s.InnerRadiusMM
}

// StepDeg returns the angular span of one slot segment in degrees.
// The spec must have a positive slot count.
func (s Spec) StepDeg() float64 {
	return 360.0 / float64(s.SlotCount)
}

// LoadSpec reads a Spec from a TOML file. Unknown keys are rejected so a
// typo in a spec file fails loudly instead of silently falling back to a
// zero value. The returned spec is validated.
func LoadSpec(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Spec{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "spec file %s", path)
		}
		return Spec{}, errors.Wrap(errors.ErrCodeInvalidSpec, err, "read spec file %s", path)
	}

	var s Spec
	meta, err := toml.Decode(string(data), &s)
	if err != nil {
		return Spec{}, errors.Wrap(errors.ErrCodeInvalidSpec, err, "parse spec file %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Spec{}, errors.New(errors.ErrCodeInvalidSpec, "unknown key %q in spec file %s", undecoded[0].String(), path)
	}

	if err := s.Validate(); err != nil {
		return Spec{}, err
	}
	return s, nil
}
