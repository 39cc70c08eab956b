package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"maptrack/internal/config"
	"maptrack/internal/geo"
	"maptrack/internal/mapview"
	"maptrack/internal/tracker"
)

const locationFailedMessage = "Failed to get your location..."

// Overlay identifies a full-screen panel drawn over the map
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayHelp
	OverlayStats
)

type mapReadyMsg struct {
	m *mapview.Map
}

type mapFailedMsg struct {
	err error
}

// App is the root Bubble Tea model
type App struct {
	tracker *tracker.Tracker
	form    *FormModel
	list    *ListModel
	mapView *mapview.Map
	help    HelpModel

	locator geo.Locator
	cfg     config.Config
	units   Units
	log     *logrus.Entry

	overlay  Overlay
	alert    string
	locating bool
	status   string

	// set by the map click handler during Update
	clickCmd tea.Cmd

	// Window dimensions
	width  int
	height int
}

// NewApp wires the tracker to the form and list and loads stored workouts.
// The map arrives asynchronously once Init's location lookup completes.
func NewApp(slot tracker.Persister, locator geo.Locator, cfg config.Config, log *logrus.Entry) *App {
	units := NewUnits(cfg.Display)
	a := &App{
		form:    NewFormModel(),
		list:    NewListModel(units),
		help:    NewHelpModel(),
		locator: locator,
		cfg:     cfg,
		units:   units,
		log:     log.WithField("component", "tui"),
	}
	a.tracker = tracker.New(slot, tracker.Views{List: a.list, Form: a.form}, tracker.Options{Zoom: cfg.Map.Zoom}, log)
	a.tracker.Start()
	return a
}

// Tracker returns the controller behind the app
func (a *App) Tracker() *tracker.Tracker { return a.tracker }

// Init starts the location lookup
func (a *App) Init() tea.Cmd {
	return a.locate()
}

func (a *App) locate() tea.Cmd {
	a.locating = true
	locator, zoom, timeout := a.locator, a.cfg.Map.Zoom, a.cfg.Location.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		m, err := mapview.Initialize(ctx, locator, zoom)
		if err != nil {
			return mapFailedMsg{err: err}
		}
		return mapReadyMsg{m: m}
	}
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		return a, nil

	case mapReadyMsg:
		a.locating = false
		a.attachMap(msg.m)
		return a, nil

	case mapFailedMsg:
		a.locating = false
		a.log.WithError(msg.err).Error("Location lookup failed, continuing without a map")
		a.alert = locationFailedMessage
		return a, nil

	case mapview.FrameMsg:
		if a.mapView == nil {
			return a, nil
		}
		return a, a.mapView.Update(msg)

	case tea.MouseMsg:
		return a, a.handleMouse(msg)

	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}

	if a.form.Visible() {
		_, cmd := a.form.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) attachMap(m *mapview.Map) {
	m.SetPanDuration(a.cfg.Map.PanDuration)
	m.OnClick(func(at geo.Coords) {
		a.clickCmd = a.form.Show(at)
	})
	a.mapView = m
	a.layout()
	a.tracker.AttachMap(m)
	a.log.WithField("center", m.Center().String()).Info("Map ready")
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	// an alert is modal
	if a.alert != "" {
		switch msg.String() {
		case "enter", "esc":
			a.alert = ""
		}
		return nil
	}

	if a.overlay != OverlayNone {
		switch msg.String() {
		case "esc", "q", "?", "g":
			a.overlay = OverlayNone
		}
		return nil
	}

	if a.form.Visible() {
		action, cmd := a.form.Update(msg)
		switch action {
		case FormSubmit:
			a.submit()
		case FormDismissed:
			a.layout()
		}
		return cmd
	}

	switch msg.String() {
	case "q":
		return tea.Quit
	case "?":
		a.overlay = OverlayHelp
	case "g":
		a.overlay = OverlayStats
	case "R":
		return a.reset()
	case "j", "tab":
		a.list.MoveCursor(1)
	case "k", "shift+tab":
		a.list.MoveCursor(-1)
	case "enter":
		if id, ok := a.list.Selected(); ok {
			return a.focus(id)
		}
	}

	if a.mapView == nil {
		return nil
	}

	switch msg.String() {
	case "n":
		a.clickCmd = nil
		a.mapView.ClickCenter()
		a.layout()
		return a.takeClickCmd()
	case "left", "h":
		a.mapView.Nudge(-4, 0)
	case "right", "l":
		a.mapView.Nudge(4, 0)
	case "up":
		a.mapView.Nudge(0, -2)
	case "down":
		a.mapView.Nudge(0, 2)
	case "+", "=":
		a.mapView.ZoomBy(1)
	case "-":
		a.mapView.ZoomBy(-1)
	}
	return nil
}

func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if a.alert != "" || a.overlay != OverlayNone {
		return nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	if a.mapView != nil {
		a.clickCmd = nil
		if a.mapView.HandleMouse(msg) {
			a.layout()
			return a.takeClickCmd()
		}
	}

	if msg.X < sidebarWidth {
		if id, ok := a.list.EntryAt(msg.Y - a.listTop()); ok {
			return a.focus(id)
		}
	}
	return nil
}

func (a *App) takeClickCmd() tea.Cmd {
	cmd := a.clickCmd
	a.clickCmd = nil
	return cmd
}

func (a *App) submit() {
	rec, err := a.tracker.Submit(a.form.Draft())
	if err != nil {
		var inputErr *tracker.InputError
		if errors.As(err, &inputErr) {
			a.alert = inputErr.Message
		} else {
			a.alert = err.Error()
		}
		return
	}
	a.status = successStyle.Render("Saved " + rec.Description)
	a.layout()
}

func (a *App) focus(id string) tea.Cmd {
	if !a.tracker.Focus(id) {
		return nil
	}
	return a.mapView.AnimationCmd()
}

// reset wipes every workout and starts over from the location lookup
func (a *App) reset() tea.Cmd {
	if err := a.tracker.Reset(); err != nil {
		a.status = errorStyle.Render(fmt.Sprintf("Reset failed: %v", err))
	} else {
		a.status = "All workouts deleted"
	}
	a.mapView = nil
	a.form.Hide()
	a.layout()
	return a.locate()
}

func (a *App) bodyHeight() int {
	return max(a.height-2, 1)
}

func (a *App) formHeight() int {
	if !a.form.Visible() {
		return 0
	}
	return lipgloss.Height(a.form.View())
}

// listTop is the screen row of the first list entry
func (a *App) listTop() int {
	return 1 + a.formHeight()
}

func (a *App) layout() {
	body := a.bodyHeight()
	a.list.SetHeight(body - a.formHeight())
	if a.mapView != nil {
		a.mapView.SetBounds(sidebarWidth, 1, max(a.width-sidebarWidth, 1), body)
	}
}

// View renders the app
func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()
	body := a.bodyHeight()

	var content string
	switch {
	case a.alert != "":
		content = lipgloss.Place(a.width, body, lipgloss.Center, lipgloss.Center,
			alertStyle.Render(errorStyle.Render(a.alert)+"\n\n"+helpDescStyle.Render("press enter to dismiss")))
	case a.overlay == OverlayHelp:
		content = lipgloss.Place(a.width, body, lipgloss.Center, lipgloss.Center, a.help.View())
	case a.overlay == OverlayStats:
		stats := NewStatsModel(a.tracker.Summary(), a.units, a.width)
		content = lipgloss.Place(a.width, body, lipgloss.Center, lipgloss.Center, stats.View())
	default:
		content = lipgloss.JoinHorizontal(lipgloss.Top, a.renderSidebar(body), a.renderMap(body))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a *App) renderSidebar(height int) string {
	parts := []string{}
	if a.form.Visible() {
		parts = append(parts, a.form.View())
	}
	parts = append(parts, a.list.View())
	return lipgloss.NewStyle().
		Width(sidebarWidth).
		Height(height).
		MaxHeight(height).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (a *App) renderMap(height int) string {
	width := max(a.width-sidebarWidth, 1)
	if a.mapView != nil {
		return a.mapView.View()
	}
	msg := "Map unavailable"
	if a.locating {
		msg = "Locating..."
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, mutedStyle.Render(msg))
}

func (a *App) renderHeader() string {
	count := fmt.Sprintf("%d workouts", a.tracker.Len())
	if a.mapView != nil {
		count += "  " + a.mapView.Center().String()
	}
	return headerStyle.Render("maptrack") + " " + statusStyle.Render(count)
}

func (a *App) renderFooter() string {
	if a.status != "" {
		return a.status
	}
	return RenderKeyHelp("click", "add") + "  " +
		RenderKeyHelp("enter", "go to") + "  " +
		RenderKeyHelp("g", "stats") + "  " +
		RenderKeyHelp("?", "help") + "  " +
		RenderKeyHelp("q", "quit")
}
