package mapview

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type styleID int

const (
	styleBlank styleID = iota
	styleGrid
	styleCrosshair
	styleDefaultPin
	styleDefaultPopup
	styleRunningPin
	styleRunningPopup
	styleCyclingPin
	styleCyclingPopup
)

var styles = map[styleID]lipgloss.Style{
	styleBlank:        lipgloss.NewStyle(),
	styleGrid:         lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")),
	styleCrosshair:    lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true),
	styleDefaultPin:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F9FAFB")).Bold(true),
	styleDefaultPopup: lipgloss.NewStyle().Foreground(lipgloss.Color("#F9FAFB")).Background(lipgloss.Color("#4B5563")),
	styleRunningPin:   lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true),
	styleRunningPopup: lipgloss.NewStyle().Foreground(lipgloss.Color("#1F2937")).Background(lipgloss.Color("#10B981")),
	styleCyclingPin:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true),
	styleCyclingPopup: lipgloss.NewStyle().Foreground(lipgloss.Color("#1F2937")).Background(lipgloss.Color("#F59E0B")),
}

// classStyles maps popup style classes to pin and popup styles
var classStyles = map[string][2]styleID{
	"running-popup": {styleRunningPin, styleRunningPopup},
	"cycling-popup": {styleCyclingPin, styleCyclingPopup},
}

func stylesFor(class string) (pin, popup styleID) {
	if s, ok := classStyles[class]; ok {
		return s[0], s[1]
	}
	return styleDefaultPin, styleDefaultPopup
}

type cell struct {
	r     rune
	style styleID
	// cont marks the right half of a wide rune
	cont bool
}

type canvas struct {
	w, h  int
	cells [][]cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([][]cell, h)}
	for i := range c.cells {
		row := make([]cell, w)
		for j := range row {
			row[j] = cell{r: ' '}
		}
		c.cells[i] = row
	}
	return c
}

func (c *canvas) set(col, row int, r rune, style styleID) {
	if row < 0 || row >= c.h || col < 0 || col >= c.w {
		return
	}
	// breaking a wide rune leaves its other half blank
	if c.cells[row][col].cont && col > 0 {
		c.cells[row][col-1] = cell{r: ' ', style: c.cells[row][col-1].style}
	}
	if col+1 < c.w && c.cells[row][col+1].cont {
		c.cells[row][col+1] = cell{r: ' ', style: c.cells[row][col+1].style}
	}
	c.cells[row][col] = cell{r: r, style: style}
}

// text writes s from col, clipping at the right edge. It returns the next column.
func (c *canvas) text(col, row int, s string, style styleID) int {
	if row < 0 || row >= c.h {
		return col
	}
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > c.w {
			break
		}
		if col >= 0 {
			c.set(col, row, r, style)
			if w == 2 {
				c.set(col+1, row, ' ', style)
				c.cells[row][col+1].cont = true
			}
		}
		col += w
	}
	return col
}

func (c *canvas) String() string {
	var b strings.Builder
	for i, row := range c.cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		current := styleBlank
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(styles[current].Render(run.String()))
				run.Reset()
			}
		}
		for _, cl := range row {
			if cl.cont {
				continue
			}
			if cl.style != current {
				flush()
				current = cl.style
			}
			run.WriteRune(cl.r)
		}
		flush()
	}
	return b.String()
}

// graticule step in cells, anchored to world coordinates
const (
	gridCols = 8
	gridRows = 4
)

// View renders the map at its current bounds
func (m *Map) View() string {
	c := newCanvas(m.width, m.height)

	cx, cy := Project(m.center, m.zoom)
	originCol := int(math.Floor(cx/cellWidth)) - m.width/2
	originRow := int(math.Floor(cy/cellHeight)) - m.height/2
	for row := 0; row < m.height; row++ {
		for col := 0; col < m.width; col++ {
			wc, wr := originCol+col, originRow+row
			onCol, onRow := mod(wc, gridCols) == 0, mod(wr, gridRows) == 0
			switch {
			case onCol && onRow:
				c.set(col, row, '+', styleGrid)
			case onRow:
				c.set(col, row, '·', styleGrid)
			}
		}
	}

	c.set(m.width/2, m.height/2, '⊕', styleCrosshair)

	// later markers draw over earlier ones
	for _, mk := range m.markers {
		col, row, _ := m.CellOf(mk.At)
		pin, popup := stylesFor(mk.Class)
		c.set(col, row, '●', pin)
		if mk.Popup != "" {
			c.text(col+2, row, " "+mk.Popup+" ", popup)
		}
	}

	return c.String()
}

func mod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}
