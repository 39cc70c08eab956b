package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"maptrack/internal/geo"
	"maptrack/internal/workout"
)

// FormState is the visibility state of the workout form
type FormState int

const (
	FormHidden FormState = iota
	FormRunning
	FormCycling
)

func (s FormState) String() string {
	switch s {
	case FormRunning:
		return "visible-running"
	case FormCycling:
		return "visible-cycling"
	default:
		return "hidden"
	}
}

// FormAction tells the app what a key press did to the form
type FormAction int

const (
	FormNone FormAction = iota
	FormSubmit
	FormDismissed
)

type formField int

const (
	fieldSport formField = iota
	fieldDistance
	fieldDuration
	fieldExtra // cadence or elevation, depending on sport
	fieldCount
)

// FormModel is the data-entry form for a new workout
type FormModel struct {
	state   FormState
	pending geo.Coords
	focus   formField

	distance  textinput.Model
	duration  textinput.Model
	cadence   textinput.Model
	elevation textinput.Model
}

// NewFormModel creates a hidden form
func NewFormModel() *FormModel {
	return &FormModel{
		distance:  newNumberInput("km"),
		duration:  newNumberInput("min"),
		cadence:   newNumberInput("step/min"),
		elevation: newNumberInput("meters"),
	}
}

func newNumberInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 12
	ti.Width = 12
	ti.Prompt = ""
	return ti
}

// State returns the current form state
func (f *FormModel) State() FormState { return f.state }

// Visible reports whether the form is shown
func (f *FormModel) Visible() bool { return f.state != FormHidden }

// Pending returns the map position the form was opened for
func (f *FormModel) Pending() geo.Coords { return f.pending }

// Kind returns the selected sport
func (f *FormModel) Kind() workout.Kind {
	if f.state == FormCycling {
		return workout.Cycling
	}
	return workout.Running
}

// Show opens the form for a clicked position. Opening a visible form only moves the pending position.
func (f *FormModel) Show(at geo.Coords) tea.Cmd {
	f.pending = at
	if f.state == FormHidden {
		f.state = FormRunning
	}
	return f.setFocus(fieldDistance)
}

// ToggleSport switches between the cadence and elevation inputs. Entered values are kept.
func (f *FormModel) ToggleSport() {
	switch f.state {
	case FormRunning:
		f.state = FormCycling
	case FormCycling:
		f.state = FormRunning
	}
}

// Hide closes the form and clears the numeric inputs
func (f *FormModel) Hide() {
	f.distance.Reset()
	f.duration.Reset()
	f.cadence.Reset()
	f.elevation.Reset()
	f.state = FormHidden
	f.setFocus(fieldSport)
}

// Draft reads the form, coercing every input to a number
func (f *FormModel) Draft() workout.Draft {
	return workout.Draft{
		Kind:          f.Kind(),
		Coords:        f.pending,
		Distance:      coerceNumber(f.distance.Value()),
		Duration:      coerceNumber(f.duration.Value()),
		Cadence:       coerceNumber(f.cadence.Value()),
		ElevationGain: coerceNumber(f.elevation.Value()),
	}
}

// coerceNumber reads a numeric text input: blank is 0, anything unparsable is NaN
func coerceNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func (f *FormModel) extraInput() *textinput.Model {
	if f.state == FormCycling {
		return &f.elevation
	}
	return &f.cadence
}

func (f *FormModel) input(field formField) *textinput.Model {
	switch field {
	case fieldDistance:
		return &f.distance
	case fieldDuration:
		return &f.duration
	case fieldExtra:
		return f.extraInput()
	}
	return nil
}

func (f *FormModel) setFocus(field formField) tea.Cmd {
	f.distance.Blur()
	f.duration.Blur()
	f.cadence.Blur()
	f.elevation.Blur()
	f.focus = field
	if in := f.input(field); in != nil {
		return in.Focus()
	}
	return nil
}

// Update handles a key press while the form is visible
func (f *FormModel) Update(msg tea.Msg) (FormAction, tea.Cmd) {
	if !f.Visible() {
		return FormNone, nil
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if in := f.input(f.focus); in != nil {
			var cmd tea.Cmd
			*in, cmd = in.Update(msg)
			return FormNone, cmd
		}
		return FormNone, nil
	}

	switch key.String() {
	case "enter":
		return FormSubmit, nil
	case "esc":
		f.Hide()
		return FormDismissed, nil
	case "tab", "down":
		return FormNone, f.setFocus((f.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return FormNone, f.setFocus((f.focus + fieldCount - 1) % fieldCount)
	case "ctrl+t":
		f.ToggleSport()
		return FormNone, f.setFocus(f.focus)
	}

	if f.focus == fieldSport {
		switch key.String() {
		case "left", "right", " ", "h", "l":
			f.ToggleSport()
		}
		return FormNone, nil
	}

	in := f.input(f.focus)
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return FormNone, cmd
}

// View renders the form, or nothing when hidden
func (f *FormModel) View() string {
	if !f.Visible() {
		return ""
	}

	row := func(field formField, label, value string) string {
		l := formLabelStyle.Render(label)
		if f.focus == field {
			l = formLabelActiveStyle.Render(label)
		}
		return l + value
	}

	sport := fmt.Sprintf("◀ %s %s ▶", f.Kind().Icon(), kindLabel(f.Kind()))

	extraLabel := "Cadence"
	if f.state == FormCycling {
		extraLabel = "Elev Gain"
	}

	lines := []string{
		formTitleStyle.Render("New workout") + " " + mutedStyle.Render(f.pending.String()),
		row(fieldSport, "Type", metricValueStyle.Render(sport)),
		row(fieldDistance, "Distance", f.distance.View()),
		row(fieldDuration, "Duration", f.duration.View()),
		row(fieldExtra, extraLabel, f.extraInput().View()),
		helpDescStyle.Render("enter save · tab next · ctrl+t sport · esc cancel"),
	}

	return formStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
