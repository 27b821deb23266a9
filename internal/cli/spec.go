package cli

import (
	"github.com/spf13/cobra"

	"github.com/diskforge/diskforge/pkg/disk"
)

// specOpts holds the flags that select and override the disk spec.
// Every generation command shares them: start from a preset or a TOML
// spec file, then apply individual field overrides.
type specOpts struct {
	preset    string  // builtin preset name
	specFile  string  // TOML spec file path
	slots     int     // override slot count
	pulley    float64 // override pulley diameter (mm)
	diameter  float64 // override disk diameter (mm)
	slotWidth float64 // override slot width (mm)
	material  string  // override material description
}

// addSpecFlags registers the spec selection flags on a command.
func addSpecFlags(cmd *cobra.Command, o *specOpts) {
	cmd.Flags().StringVarP(&o.preset, "preset", "p", "", "builtin preset name (see 'diskforge presets')")
	cmd.Flags().StringVar(&o.specFile, "spec", "", "TOML spec file (overrides --preset)")
	cmd.Flags().IntVar(&o.slots, "slots", 0, "override slot count (must be even)")
	cmd.Flags().Float64Var(&o.pulley, "pulley", 0, "override pulley diameter in mm")
	cmd.Flags().Float64Var(&o.diameter, "diameter", 0, "override disk diameter in mm")
	cmd.Flags().Float64Var(&o.slotWidth, "slot-width", 0, "override slot width in mm")
	cmd.Flags().StringVar(&o.material, "material", "", "override material description")
}

// resolve produces the validated spec: file or preset base, then
// overrides. The default base is the workshop preset.
func (o *specOpts) resolve() (disk.Spec, error) {
	var spec disk.Spec

	switch {
	case o.specFile != "":
		loaded, err := disk.LoadSpec(o.specFile)
		if err != nil {
			return disk.Spec{}, err
		}
		spec = loaded
	default:
		name := o.preset
		if name == "" {
			name = disk.DefaultPreset
		}
		preset, err := disk.PresetByName(name)
		if err != nil {
			return disk.Spec{}, err
		}
		spec = preset.Spec
	}

	if o.slots != 0 {
		spec.SlotCount = o.slots
	}
	if o.pulley != 0 {
		spec.PulleyDiameterMM = o.pulley
	}
	if o.diameter != 0 {
		spec.DiameterMM = o.diameter
	}
	if o.slotWidth != 0 {
		spec.SlotWidthMM = o.slotWidth
	}
	if o.material != "" {
		spec.Material = o.material
	}

	if err := spec.Validate(); err != nil {
		return disk.Spec{}, err
	}
	return spec, nil
}
