package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HelpModel is the help screen model
type HelpModel struct{}

// NewHelpModel creates a new help model
func NewHelpModel() HelpModel {
	return HelpModel{}
}

type keyHelp struct {
	key  string
	desc string
}

// View renders the help screen
func (m HelpModel) View() string {
	sections := []string{cardTitleStyle.Render("Keyboard Shortcuts")}

	sections = append(sections, m.renderSection("Map", []keyHelp{
		{"click", "Log a workout at that spot"},
		{"n", "Log a workout at the map centre"},
		{"arrows", "Pan the map"},
		{"+ / -", "Zoom in / out"},
	}))

	sections = append(sections, m.renderSection("Workouts", []keyHelp{
		{"j / k", "Move through the list"},
		{"enter", "Move the map to the selected workout"},
		{"click", "Move the map to a workout"},
		{"g", "Stats"},
		{"R", "Delete every workout"},
	}))

	sections = append(sections, m.renderSection("Form", []keyHelp{
		{"tab", "Next field"},
		{"ctrl+t", "Switch running / cycling"},
		{"enter", "Save"},
		{"esc", "Cancel"},
	}))

	sections = append(sections, m.renderSection("General", []keyHelp{
		{"?", "Help (this screen)"},
		{"esc", "Close overlay"},
		{"q", "Quit"},
	}))

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m HelpModel) renderSection(title string, keys []keyHelp) string {
	lines := []string{"", sectionStyle.Render(title)}
	for _, k := range keys {
		lines = append(lines, "  "+RenderKeyHelp(k.key, k.desc))
	}
	return strings.Join(lines, "\n")
}
