// Package tracker owns the workout collection and drives the map, list, form
// and storage in response to user actions.
package tracker

import (
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"maptrack/internal/geo"
	"maptrack/internal/workout"
)

// Persister stores the whole collection in one durable slot
type Persister interface {
	Save(records []workout.Record) error
	Load() ([]workout.Record, error)
	Clear() error
}

// MapAdapter is the part of the map widget the tracker drives
type MapAdapter interface {
	AddMarker(at geo.Coords, popup, styleClass string)
	PanTo(at geo.Coords, zoom int, animate bool)
}

// ListRenderer shows one entry per workout
type ListRenderer interface {
	Render(rec workout.Record)
	Clear()
}

// Form is the data-entry form, reset after a successful submit
type Form interface {
	Hide()
}

// Views groups the presentation collaborators. Any of them may be nil.
type Views struct {
	List ListRenderer
	Form Form
}

// Options configures a Tracker
type Options struct {
	// Zoom used when focusing a workout
	Zoom int
	// Factory builds records; the zero value uses the wall clock and UUIDv7 ids
	Factory workout.Factory
}

// Tracker is the application controller. It is driven from a single event
// loop and is not safe for concurrent use.
type Tracker struct {
	slot     Persister
	views    Views
	mapView  MapAdapter
	zoom     int
	factory  workout.Factory
	validate *validator.Validate
	log      *logrus.Entry

	workouts []workout.Record
}

// New creates a tracker. Call Start to load persisted workouts.
func New(slot Persister, views Views, opts Options, log *logrus.Entry) *Tracker {
	zoom := opts.Zoom
	if zoom == 0 {
		zoom = 13
	}
	return &Tracker{
		slot:     slot,
		views:    views,
		zoom:     zoom,
		factory:  opts.Factory,
		validate: newValidator(),
		log:      log.WithField("component", "tracker"),
	}
}

// Start loads persisted workouts and renders their list entries.
// No map is needed; markers are drawn once AttachMap is called.
func (t *Tracker) Start() {
	records, err := t.slot.Load()
	if err != nil {
		t.log.WithError(err).Warn("Could not load workouts, starting empty")
		records = nil
	}
	t.workouts = records

	if t.views.List != nil {
		for _, rec := range t.workouts {
			t.views.List.Render(rec)
		}
	}
	t.log.WithField("count", len(t.workouts)).Info("Workouts loaded")
}

// AttachMap makes the map available and draws a marker for every workout
func (t *Tracker) AttachMap(m MapAdapter) {
	t.mapView = m
	for _, rec := range t.workouts {
		t.renderMarker(rec)
	}
}

// MapReady reports whether a map is attached
func (t *Tracker) MapReady() bool {
	return t.mapView != nil
}

// Submit validates a draft and records it. On failure it returns an
// *InputError and changes nothing. On success the marker, list entry, form
// reset and save happen in that order.
func (t *Tracker) Submit(d workout.Draft) (workout.Record, error) {
	if err := t.validateDraft(d); err != nil {
		t.log.WithError(err).WithField("kind", d.Kind).Info("Rejected workout input")
		return workout.Record{}, err
	}

	rec, err := t.factory.FromDraft(d)
	if err != nil {
		return workout.Record{}, err
	}

	t.workouts = append(t.workouts, rec)

	t.renderMarker(rec)
	if t.views.List != nil {
		t.views.List.Render(rec)
	}
	if t.views.Form != nil {
		t.views.Form.Hide()
	}
	t.persist()

	t.log.WithFields(logrus.Fields{
		"id":       rec.ID,
		"kind":     rec.Kind,
		"distance": rec.Distance,
		"duration": rec.Duration,
	}).Info("Workout recorded")

	return rec, nil
}

// Focus pans the map to the workout with id. It reports whether the map moved.
func (t *Tracker) Focus(id string) bool {
	rec, ok := t.Find(id)
	if !ok || t.mapView == nil {
		return false
	}
	t.mapView.PanTo(rec.Coords, t.zoom, true)
	return true
}

// Find looks up a workout by id
func (t *Tracker) Find(id string) (workout.Record, bool) {
	for _, rec := range t.workouts {
		if rec.ID == id {
			return rec, true
		}
	}
	return workout.Record{}, false
}

// Reset clears storage and reloads from the empty state. The map is
// detached and must be attached again. Calling it repeatedly is safe.
func (t *Tracker) Reset() error {
	err := t.slot.Clear()
	if err != nil {
		t.log.WithError(err).Warn("Could not clear stored workouts")
	}

	t.workouts = nil
	t.mapView = nil
	if t.views.List != nil {
		t.views.List.Clear()
	}
	t.log.Info("Workouts reset")

	t.Start()
	return err
}

// Workouts returns the collection in insertion order
func (t *Tracker) Workouts() []workout.Record {
	out := make([]workout.Record, len(t.workouts))
	copy(out, t.workouts)
	return out
}

// Len returns the number of workouts
func (t *Tracker) Len() int {
	return len(t.workouts)
}

func (t *Tracker) renderMarker(rec workout.Record) {
	if t.mapView == nil {
		return
	}
	t.mapView.AddMarker(rec.Coords, rec.Kind.Icon()+" "+rec.Description, rec.Kind.PopupClass())
}

// persist saves the collection. Failures are logged and not retried.
func (t *Tracker) persist() {
	if err := t.slot.Save(t.workouts); err != nil {
		t.log.WithError(err).Warn("Could not save workouts")
	}
}
