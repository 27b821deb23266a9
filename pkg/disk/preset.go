package disk

import (
	"slices"

	"github.com/diskforge/diskforge/pkg/errors"
)

// Preset is a named, ready-to-use disk specification.
type Preset struct {
	Name        string
	Description string
	Spec        Spec
}

// Builtin presets. The two sizes come from the water-level monitor this
// tool was built for: a 10mm disk ground by hand from a sticker template,
// and the larger workshop disk that replaced it. The workshop disk keeps
// the original 70-85mm slot band at its 77.5mm sensor radius, sized so
// the band clears the disk edge.
var presets = []Preset{
	{
		Name:        "compact-10",
		Description: "10mm disk, 20 slots, for tight sensor housings",
		Spec: Spec{
			DiameterMM:       10,
			CenterHoleMM:     8,
			SlotCount:        20,
			SlotWidthMM:      1.5,
			InnerRadiusMM:    4.2,
			OuterRadiusMM:    5,
			PulleyDiameterMM: 50,
			Material:         "1mm stainless steel",
			ThicknessMM:      1,
		},
	},
	{
		Name:        "workshop-180",
		Description: "180mm disk, 40 slots, sized for manual fabrication",
		Spec: Spec{
			DiameterMM:       180,
			CenterHoleMM:     8,
			SlotCount:        40,
			SlotWidthMM:      3,
			InnerRadiusMM:    70,
			OuterRadiusMM:    85,
			PulleyDiameterMM: 50,
			Material:         "2mm stainless steel",
			ThicknessMM:      2,
		},
	},
}

// DefaultPreset is the preset used when neither a preset name nor a spec
// file is given.
const DefaultPreset = "workshop-180"

// Presets returns all builtin presets, in display order.
func Presets() []Preset {
	return slices.Clone(presets)
}

// PresetByName looks up a builtin preset. It returns an INVALID_PRESET
// error naming the available presets when no match exists.
func PresetByName(name string) (Preset, error) {
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return Preset{}, errors.New(errors.ErrCodeInvalidPreset, "unknown preset %q (available: %v)", name, names)
}
