package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"maptrack/internal/tracker"
)

// StatsModel is the totals and trends overlay
type StatsModel struct {
	summary tracker.Summary
	units   Units
	width   int
}

// NewStatsModel creates a stats view over a summary
func NewStatsModel(s tracker.Summary, units Units, width int) StatsModel {
	return StatsModel{summary: s, units: units, width: width}
}

// View renders the stats screen
func (m StatsModel) View() string {
	s := m.summary
	sections := []string{cardTitleStyle.Render("Workout Stats")}

	if s.Runs+s.Rides == 0 {
		sections = append(sections, mutedStyle.Render("No workouts recorded yet."))
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	}

	running := []string{
		sectionStyle.Render("🏃 Running"),
		RenderMetric("Workouts", fmt.Sprintf("%d", s.Runs)),
		RenderMetric("Distance", m.units.FormatDistance(s.RunDistance)),
		RenderMetric("Time", m.units.FormatDuration(s.RunDuration)),
		RenderMetric("Average pace", m.units.FormatPace(s.AveragePace())),
	}
	cycling := []string{
		sectionStyle.Render("🚴 Cycling"),
		RenderMetric("Workouts", fmt.Sprintf("%d", s.Rides)),
		RenderMetric("Distance", m.units.FormatDistance(s.RideDistance)),
		RenderMetric("Time", m.units.FormatDuration(s.RideDuration)),
		RenderMetric("Average speed", m.units.FormatSpeed(s.AverageSpeed())),
		RenderMetric("Elevation gain", fmt.Sprintf("%.0f m", s.ElevationGain)),
	}

	sections = append(sections,
		lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.JoinVertical(lipgloss.Left, running...),
			"    ",
			lipgloss.JoinVertical(lipgloss.Left, cycling...),
		),
	)

	if chart := m.chart("Pace (min/km)", s.Paces); chart != "" {
		sections = append(sections, "", chart)
	}
	if chart := m.chart("Speed (km/h)", s.Speeds); chart != "" {
		sections = append(sections, "", chart)
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// chart plots a series once there are at least two points
func (m StatsModel) chart(caption string, data []float64) string {
	if len(data) < 2 {
		return ""
	}
	width := m.width - 20
	if width > 60 || width <= 0 {
		width = 60
	}
	return asciigraph.Plot(data,
		asciigraph.Height(6),
		asciigraph.Width(width),
		asciigraph.Precision(1),
		asciigraph.Caption(caption),
	)
}
