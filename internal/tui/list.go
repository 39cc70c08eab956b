package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"maptrack/internal/workout"
)

// entryHeight is the number of rows one list entry occupies, separator included
const entryHeight = 4

// ListModel is the sidebar list of workouts, newest first
type ListModel struct {
	entries []workout.Record
	units   Units
	cursor  int
	offset  int
	height  int
}

// NewListModel creates an empty list
func NewListModel(units Units) *ListModel {
	return &ListModel{units: units}
}

// Render adds an entry for a workout at the top of the list
func (l *ListModel) Render(rec workout.Record) {
	l.entries = append([]workout.Record{rec}, l.entries...)
	l.cursor = 0
	l.offset = 0
}

// Clear removes every entry
func (l *ListModel) Clear() {
	l.entries = nil
	l.cursor = 0
	l.offset = 0
}

// Len returns the number of entries
func (l *ListModel) Len() int { return len(l.entries) }

// SetHeight sets the number of rows available to the list
func (l *ListModel) SetHeight(h int) {
	l.height = h
	l.scroll()
}

// Selected returns the id of the entry under the cursor
func (l *ListModel) Selected() (string, bool) {
	if len(l.entries) == 0 {
		return "", false
	}
	return l.entries[l.cursor].ID, true
}

// MoveCursor moves the selection by delta entries
func (l *ListModel) MoveCursor(delta int) {
	if len(l.entries) == 0 {
		return
	}
	l.cursor += delta
	if l.cursor < 0 {
		l.cursor = 0
	}
	if l.cursor >= len(l.entries) {
		l.cursor = len(l.entries) - 1
	}
	l.scroll()
}

func (l *ListModel) visible() int {
	if l.height <= 0 {
		return len(l.entries)
	}
	n := l.height / entryHeight
	if n < 1 {
		n = 1
	}
	return n
}

func (l *ListModel) scroll() {
	n := l.visible()
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+n {
		l.offset = l.cursor - n + 1
	}
}

// EntryAt maps a row relative to the top of the list to a workout id and
// selects it. Separator rows and rows past the last entry hit nothing.
func (l *ListModel) EntryAt(row int) (string, bool) {
	if row < 0 || row%entryHeight == entryHeight-1 {
		return "", false
	}
	i := l.offset + row/entryHeight
	if i >= len(l.entries) || i >= l.offset+l.visible() {
		return "", false
	}
	l.cursor = i
	return l.entries[i].ID, true
}

// View renders the visible entries
func (l *ListModel) View() string {
	if len(l.entries) == 0 {
		return mutedStyle.Render("No workouts yet. Click the map to add one.")
	}

	end := l.offset + l.visible()
	if end > len(l.entries) {
		end = len(l.entries)
	}

	var blocks []string
	for i := l.offset; i < end; i++ {
		blocks = append(blocks, l.renderEntry(l.entries[i], i == l.cursor))
	}
	return strings.Join(blocks, "\n\n")
}

func (l *ListModel) renderEntry(rec workout.Record, selected bool) string {
	style := entryStyle
	if selected {
		style = entrySelectedStyle
	}
	color := runningColor
	if rec.Kind == workout.Cycling {
		color = cyclingColor
	}
	style = style.BorderForeground(color)

	title := lipgloss.NewStyle().Bold(true).Foreground(color).Render(rec.Description)
	totals := fmt.Sprintf("%s %s  ⏱ %s",
		rec.Kind.Icon(),
		l.units.FormatDistance(rec.Distance),
		l.units.FormatDuration(rec.Duration),
	)
	metrics := fmt.Sprintf("⚡️ %s  %s", l.units.FormatMetric(rec), l.units.FormatExtra(rec))
	return style.Render(title + "\n" + statusStyle.Render(totals) + "\n" + statusStyle.Render(metrics))
}
