package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/diskforge/diskforge/pkg/disk"
)

// presetsCommand creates the presets command for listing builtin specs.
func (c *CLI) presetsCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List builtin disk presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				return runPresetPicker()
			}
			printPresetTable()
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick a preset interactively")

	return cmd
}

// printPresetTable renders the preset list as a bordered table.
func printPresetTable() {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)

	rows := [][]string{}
	for _, p := range disk.Presets() {
		res, _ := disk.ComputeResolution(p.Spec)
		name := p.Name
		if name == disk.DefaultPreset {
			name += " *"
		}
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%.0fmm", p.Spec.DiameterMM),
			fmt.Sprintf("%d", p.Spec.SlotCount),
			fmt.Sprintf("%.3fmm", res.MMPerSlot),
			p.Description,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Preset", "Diameter", "Slots", "Resolution", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		})

	fmt.Println(t)
	printDetail("* default preset")
}

// printPresetSummary prints the spec of a chosen preset.
func printPresetSummary(p disk.Preset) {
	res, _ := disk.ComputeResolution(p.Spec)
	arc, _ := disk.ArcLengthMM(p.Spec, p.Spec.SensorRadiusMM())

	printNewline()
	fmt.Println(StyleTitle.Render(p.Name) + " " + StyleDim.Render(p.Description))
	printKeyValue("Diameter", fmt.Sprintf("%.0fmm", p.Spec.DiameterMM))
	printKeyValue("Slots", fmt.Sprintf("%d x %.1fmm", p.Spec.SlotCount, p.Spec.SlotWidthMM))
	printKeyValue("Slot radius", fmt.Sprintf("%.1fmm to %.1fmm", p.Spec.InnerRadiusMM, p.Spec.OuterRadiusMM))
	printKeyValue("Center hole", fmt.Sprintf("%.1fmm", p.Spec.CenterHoleMM))
	printKeyValue("Pulley", fmt.Sprintf("%.0fmm", p.Spec.PulleyDiameterMM))
	printKeyValue("Resolution", fmt.Sprintf("%.3fmm per slot", res.MMPerSlot))
	printKeyValue("Segment arc", fmt.Sprintf("%.2fmm at sensor radius", arc))
	printKeyValue("Material", p.Spec.Material)
	printNewline()
	printNextStep("Render the template", "diskforge template --preset "+p.Name)
}
