package store

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"maptrack/internal/workout"
)

// WorkoutSlot persists the whole workout collection under one key
type WorkoutSlot struct {
	db  *DB
	key string
	log *logrus.Entry
}

// NewWorkoutSlot creates a slot stored under key
func NewWorkoutSlot(db *DB, key string, log *logrus.Entry) *WorkoutSlot {
	return &WorkoutSlot{
		db:  db,
		key: key,
		log: log.WithField("slot", key),
	}
}

// Save serialises the collection, overwriting prior content
func (s *WorkoutSlot) Save(records []workout.Record) error {
	if records == nil {
		records = []workout.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding workouts: %w", err)
	}
	if err := s.db.SetItem(s.key, string(data)); err != nil {
		return fmt.Errorf("writing workouts: %w", err)
	}
	s.log.WithField("count", len(records)).Debug("Workouts saved")
	return nil
}

// Load returns the stored collection in insertion order.
// An absent or malformed slot yields an empty collection and no error.
func (s *WorkoutSlot) Load() ([]workout.Record, error) {
	value, ok, err := s.db.GetItem(s.key)
	if err != nil {
		return nil, fmt.Errorf("reading workouts: %w", err)
	}
	if !ok {
		return []workout.Record{}, nil
	}

	var records []workout.Record
	if err := json.Unmarshal([]byte(value), &records); err != nil {
		s.log.WithError(err).Warn("Ignoring malformed workout data")
		return []workout.Record{}, nil
	}
	if records == nil {
		records = []workout.Record{}
	}
	return records, nil
}

// Clear removes the slot entirely
func (s *WorkoutSlot) Clear() error {
	if err := s.db.RemoveItem(s.key); err != nil {
		return fmt.Errorf("clearing workouts: %w", err)
	}
	return nil
}
