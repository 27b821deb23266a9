package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diskforge/diskforge/pkg/disk"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// PresetListModel is the bubbletea model for interactive preset selection.
type PresetListModel struct {
	Presets  []disk.Preset
	Cursor   int
	Selected *disk.Preset
}

// NewPresetListModel creates a new preset list model.
func NewPresetListModel(presets []disk.Preset) PresetListModel {
	return PresetListModel{Presets: presets}
}

func (m PresetListModel) Init() tea.Cmd {
	return nil
}

func (m PresetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Presets)-1 {
				m.Cursor++
			}
		case "enter":
			preset := m.Presets[m.Cursor]
			m.Selected = &preset
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m PresetListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Preset"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, p := range m.Presets {
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}

		res, _ := disk.ComputeResolution(p.Spec)
		line := fmt.Sprintf("%s%-14s %4.0fmm  %3d slots  %.3fmm/slot",
			cursor, p.Name, p.Spec.DiameterMM, p.Spec.SlotCount, res.MMPerSlot)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("    " + p.Description))
		b.WriteString("\n")
	}

	return b.String()
}

// runPresetPicker opens the interactive preset picker and prints the
// chosen preset's spec summary.
func runPresetPicker() error {
	model := NewPresetListModel(disk.Presets())
	prog := tea.NewProgram(model)

	final, err := prog.Run()
	if err != nil {
		return err
	}

	result, ok := final.(PresetListModel)
	if !ok || result.Selected == nil {
		printInfo("No preset selected")
		return nil
	}
	printPresetSummary(*result.Selected)
	return nil
}
