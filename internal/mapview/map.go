// Package mapview is a terminal map widget: a Web Mercator view with markers,
// always-open popups, click reporting and animated panning.
package mapview

import (
	"context"
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"maptrack/internal/geo"
)

const frameInterval = 50 * time.Millisecond

// Marker is a pin with its popup
type Marker struct {
	At    geo.Coords
	Popup string
	Class string
}

// FrameMsg advances a pan animation
type FrameMsg struct {
	seq int
}

type panAnimation struct {
	fromX, fromY float64
	toX, toY     float64
	target       geo.Coords
	frame        int
	frames       int
}

// Map is the map widget. It is owned by the UI loop and not safe for concurrent use.
type Map struct {
	center geo.Coords
	zoom   int

	// screen placement
	x, y          int
	width, height int

	markers     []Marker
	onClick     func(geo.Coords)
	panDuration time.Duration

	anim *panAnimation
	seq  int
}

// Initialize obtains a position fix and builds a map centred on it.
// No map is returned when the fix fails.
func Initialize(ctx context.Context, locator geo.Locator, zoom int) (*Map, error) {
	center, err := locator.Locate(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing map: %w", err)
	}
	return New(center, zoom), nil
}

// New builds a map centred on center
func New(center geo.Coords, zoom int) *Map {
	return &Map{
		center:      center,
		zoom:        clampZoom(zoom),
		width:       1,
		height:      1,
		panDuration: time.Second,
	}
}

// SetPanDuration sets how long animated pans take. Zero disables animation.
func (m *Map) SetPanDuration(d time.Duration) {
	m.panDuration = d
}

// SetBounds places the map on screen
func (m *Map) SetBounds(x, y, width, height int) {
	m.x, m.y = x, y
	m.width = max(width, 1)
	m.height = max(height, 1)
}

// Center returns the current view centre
func (m *Map) Center() geo.Coords { return m.center }

// Zoom returns the current zoom level
func (m *Map) Zoom() int { return m.zoom }

// Markers returns the markers in the order they were added
func (m *Map) Markers() []Marker {
	out := make([]Marker, len(m.markers))
	copy(out, m.markers)
	return out
}

// OnClick registers the handler called once per click on the map surface
func (m *Map) OnClick(handler func(geo.Coords)) {
	m.onClick = handler
}

// AddMarker pins a marker with an open popup. Popups never close each other.
func (m *Map) AddMarker(at geo.Coords, popup, styleClass string) {
	m.markers = append(m.markers, Marker{At: at, Popup: popup, Class: styleClass})
}

// PanTo recentres the view, optionally animated over the pan duration
func (m *Map) PanTo(at geo.Coords, zoom int, animate bool) {
	m.zoom = clampZoom(zoom)
	m.seq++

	frames := int(m.panDuration / frameInterval)
	if !animate || frames < 1 {
		m.center = at
		m.anim = nil
		return
	}

	fx, fy := Project(m.center, m.zoom)
	tx, ty := Project(at, m.zoom)
	m.anim = &panAnimation{
		fromX: fx, fromY: fy,
		toX: tx, toY: ty,
		target: at,
		frames: frames,
	}
}

// Animating reports whether a pan is in progress
func (m *Map) Animating() bool {
	return m.anim != nil
}

// AnimationCmd schedules the next animation frame, or returns nil when idle
func (m *Map) AnimationCmd() tea.Cmd {
	if m.anim == nil {
		return nil
	}
	seq := m.seq
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return FrameMsg{seq: seq}
	})
}

// Update applies animation frames. Frames from superseded pans are dropped.
func (m *Map) Update(msg tea.Msg) tea.Cmd {
	frame, ok := msg.(FrameMsg)
	if !ok || m.anim == nil || frame.seq != m.seq {
		return nil
	}

	a := m.anim
	a.frame++
	if a.frame >= a.frames {
		m.center = a.target
		m.anim = nil
		return nil
	}

	t := easeOutCubic(float64(a.frame) / float64(a.frames))
	m.center = Unproject(a.fromX+(a.toX-a.fromX)*t, a.fromY+(a.toY-a.fromY)*t, m.zoom)
	return m.AnimationCmd()
}

func easeOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// HandleMouse reports a left click inside the map to the click handler.
// It returns true when the event landed on the map.
func (m *Map) HandleMouse(msg tea.MouseMsg) bool {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return false
	}
	col, row := msg.X-m.x, msg.Y-m.y
	if col < 0 || row < 0 || col >= m.width || row >= m.height {
		return false
	}
	if m.onClick != nil {
		m.onClick(m.CellCoords(col, row))
	}
	return true
}

// ClickCenter reports a click on the view centre, for keyboard use
func (m *Map) ClickCenter() {
	if m.onClick != nil {
		m.onClick(m.center)
	}
}

// Nudge moves the view by whole cells
func (m *Map) Nudge(dx, dy int) {
	cx, cy := Project(m.center, m.zoom)
	m.center = Unproject(cx+float64(dx*cellWidth), cy+float64(dy*cellHeight), m.zoom)
	m.anim = nil
}

// ZoomBy changes the zoom level, keeping the centre
func (m *Map) ZoomBy(delta int) {
	m.zoom = clampZoom(m.zoom + delta)
	m.anim = nil
}

// CellCoords returns the position under a cell relative to the map's origin
func (m *Map) CellCoords(col, row int) geo.Coords {
	cx, cy := Project(m.center, m.zoom)
	px := cx + (float64(col)-float64(m.width)/2+0.5)*cellWidth
	py := cy + (float64(row)-float64(m.height)/2+0.5)*cellHeight
	return Unproject(px, py, m.zoom)
}

// CellOf returns the cell showing a position and whether it is inside the view
func (m *Map) CellOf(c geo.Coords) (col, row int, visible bool) {
	cx, cy := Project(m.center, m.zoom)
	px, py := Project(c, m.zoom)
	col = int(math.Floor((px-cx)/cellWidth + float64(m.width)/2))
	row = int(math.Floor((py-cy)/cellHeight + float64(m.height)/2))
	visible = col >= 0 && row >= 0 && col < m.width && row < m.height
	return col, row, visible
}
