package workout

import (
	"encoding/json"
	"fmt"
	"time"

	"maptrack/internal/geo"
)

// wireRecord is the flat object stored in the durable slot
type wireRecord struct {
	Coords        geo.Coords `json:"coords"`
	Distance      float64    `json:"distance"`
	Duration      float64    `json:"duration"`
	Date          time.Time  `json:"date"`
	ID            string     `json:"id"`
	Description   string     `json:"description"`
	Clicks        int        `json:"clicks"`
	Type          Kind       `json:"type"`
	Cadence       *float64   `json:"cadence,omitempty"`
	Pace          *float64   `json:"pace,omitempty"`
	ElevationGain *float64   `json:"elevationGain,omitempty"`
	Speed         *float64   `json:"speed,omitempty"`
}

// MarshalJSON flattens the record into the storage shape
func (r Record) MarshalJSON() ([]byte, error) {
	w := wireRecord{
		Coords:      r.Coords,
		Distance:    r.Distance,
		Duration:    r.Duration,
		Date:        r.CreatedAt,
		ID:          r.ID,
		Description: r.Description,
		Clicks:      r.Clicks,
		Type:        r.Kind,
	}

	switch r.Kind {
	case Running:
		if r.Running == nil {
			return nil, fmt.Errorf("record %s: running payload missing", r.ID)
		}
		w.Cadence, w.Pace = &r.Running.Cadence, &r.Running.Pace
	case Cycling:
		if r.Cycling == nil {
			return nil, fmt.Errorf("record %s: cycling payload missing", r.ID)
		}
		w.ElevationGain, w.Speed = &r.Cycling.ElevationGain, &r.Cycling.Speed
	default:
		return nil, fmt.Errorf("record %s: unknown kind %q", r.ID, r.Kind)
	}

	return json.Marshal(w)
}

// UnmarshalJSON rebuilds the variant from the type tag
func (r *Record) UnmarshalJSON(data []byte) error {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.ID == "" {
		return fmt.Errorf("record without id")
	}

	rec := Record{
		ID:          w.ID,
		Kind:        w.Type,
		Coords:      w.Coords,
		Distance:    w.Distance,
		Duration:    w.Duration,
		CreatedAt:   w.Date,
		Description: w.Description,
		Clicks:      w.Clicks,
	}

	switch w.Type {
	case Running:
		if w.Cadence == nil {
			return fmt.Errorf("record %s: running without cadence", w.ID)
		}
		stats := RunningStats{Cadence: *w.Cadence}
		if w.Pace != nil {
			stats.Pace = *w.Pace
		} else if w.Distance != 0 {
			stats.Pace = Pace(w.Distance, w.Duration)
		}
		rec.Running = &stats
	case Cycling:
		if w.ElevationGain == nil {
			return fmt.Errorf("record %s: cycling without elevationGain", w.ID)
		}
		stats := CyclingStats{ElevationGain: *w.ElevationGain}
		if w.Speed != nil {
			stats.Speed = *w.Speed
		} else if w.Duration != 0 {
			stats.Speed = Speed(w.Distance, w.Duration)
		}
		rec.Cycling = &stats
	default:
		return fmt.Errorf("record %s: unknown type %q", w.ID, w.Type)
	}

	if rec.Description == "" {
		rec.Description = Describe(rec.Kind, rec.CreatedAt)
	}

	*r = rec
	return nil
}
