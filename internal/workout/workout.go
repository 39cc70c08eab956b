// Package workout defines the workout record and its derived metrics.
package workout

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"maptrack/internal/geo"
)

// Kind identifies the sport of a workout
type Kind string

const (
	Running Kind = "running"
	Cycling Kind = "cycling"
)

// Valid reports whether k is a known kind
func (k Kind) Valid() bool {
	return k == Running || k == Cycling
}

// Icon returns the glyph shown next to the workout
func (k Kind) Icon() string {
	if k == Cycling {
		return "🚴"
	}
	return "🏃"
}

// PopupClass returns the map popup style class for the kind
func (k Kind) PopupClass() string {
	return string(k) + "-popup"
}

var (
	// ErrZeroDistance is returned when a pace would divide by zero
	ErrZeroDistance = errors.New("distance must not be zero")
	// ErrZeroDuration is returned when a speed would divide by zero
	ErrZeroDuration = errors.New("duration must not be zero")
)

// RunningStats is the running payload
type RunningStats struct {
	Cadence float64 // steps/min
	Pace    float64 // min/km
}

// CyclingStats is the cycling payload
type CyclingStats struct {
	ElevationGain float64 // meters
	Speed         float64 // km/h
}

// Record is one completed workout. Exactly one of Running or Cycling is set,
// matching Kind. Description and the derived metric are fixed at construction.
type Record struct {
	ID          string
	Kind        Kind
	Coords      geo.Coords
	Distance    float64 // km
	Duration    float64 // minutes
	CreatedAt   time.Time
	Description string
	Clicks      int

	Running *RunningStats
	Cycling *CyclingStats
}

// Metric returns the derived metric and its unit
func (r Record) Metric() (float64, string) {
	switch r.Kind {
	case Running:
		if r.Running != nil {
			return r.Running.Pace, "min/km"
		}
	case Cycling:
		if r.Cycling != nil {
			return r.Cycling.Speed, "km/h"
		}
	}
	return 0, ""
}

// Draft is a submission read from the form, before validation
type Draft struct {
	Kind          Kind
	Coords        geo.Coords
	Distance      float64
	Duration      float64
	Cadence       float64
	ElevationGain float64
}

// Factory builds records with a pluggable clock and id source
type Factory struct {
	Now   func() time.Time
	NewID func() string
}

var defaultFactory = Factory{Now: time.Now, NewID: NewID}

// NewID returns a time-ordered unique id
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// NewRunning builds a running record using the wall clock
func NewRunning(coords geo.Coords, distance, duration, cadence float64) (Record, error) {
	return defaultFactory.Running(coords, distance, duration, cadence)
}

// NewCycling builds a cycling record using the wall clock
func NewCycling(coords geo.Coords, distance, duration, elevationGain float64) (Record, error) {
	return defaultFactory.Cycling(coords, distance, duration, elevationGain)
}

// Running builds a running record. The caller validates positivity.
func (f Factory) Running(coords geo.Coords, distance, duration, cadence float64) (Record, error) {
	if distance == 0 {
		return Record{}, ErrZeroDistance
	}
	r := f.header(Running, coords, distance, duration)
	r.Running = &RunningStats{
		Cadence: cadence,
		Pace:    Pace(distance, duration),
	}
	return r, nil
}

// Cycling builds a cycling record. The caller validates positivity.
func (f Factory) Cycling(coords geo.Coords, distance, duration, elevationGain float64) (Record, error) {
	if duration == 0 {
		return Record{}, ErrZeroDuration
	}
	r := f.header(Cycling, coords, distance, duration)
	r.Cycling = &CyclingStats{
		ElevationGain: elevationGain,
		Speed:         Speed(distance, duration),
	}
	return r, nil
}

// FromDraft dispatches on the draft's kind
func (f Factory) FromDraft(d Draft) (Record, error) {
	switch d.Kind {
	case Running:
		return f.Running(d.Coords, d.Distance, d.Duration, d.Cadence)
	case Cycling:
		return f.Cycling(d.Coords, d.Distance, d.Duration, d.ElevationGain)
	default:
		return Record{}, fmt.Errorf("unknown workout kind %q", d.Kind)
	}
}

func (f Factory) header(kind Kind, coords geo.Coords, distance, duration float64) Record {
	now, newID := f.Now, f.NewID
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = NewID
	}
	created := now()
	return Record{
		ID:          newID(),
		Kind:        kind,
		Coords:      coords,
		Distance:    distance,
		Duration:    duration,
		CreatedAt:   created,
		Description: Describe(kind, created),
	}
}
