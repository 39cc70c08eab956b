package tracker

import "maptrack/internal/workout"

// Summary aggregates the collection per sport
type Summary struct {
	Runs          int
	Rides         int
	RunDistance   float64 // km
	RideDistance  float64 // km
	RunDuration   float64 // minutes
	RideDuration  float64 // minutes
	ElevationGain float64 // meters, cycling only

	// derived metrics in insertion order
	Paces  []float64
	Speeds []float64
}

// AveragePace returns the overall running pace in min/km
func (s Summary) AveragePace() float64 {
	if s.RunDistance == 0 {
		return 0
	}
	return workout.Pace(s.RunDistance, s.RunDuration)
}

// AverageSpeed returns the overall cycling speed in km/h
func (s Summary) AverageSpeed() float64 {
	if s.RideDuration == 0 {
		return 0
	}
	return workout.Speed(s.RideDistance, s.RideDuration)
}

// Summary returns totals for the current collection
func (t *Tracker) Summary() Summary {
	return Summarize(t.workouts)
}

// Summarize aggregates records
func Summarize(records []workout.Record) Summary {
	var s Summary
	for _, rec := range records {
		switch rec.Kind {
		case workout.Running:
			s.Runs++
			s.RunDistance += rec.Distance
			s.RunDuration += rec.Duration
			if rec.Running != nil {
				s.Paces = append(s.Paces, rec.Running.Pace)
			}
		case workout.Cycling:
			s.Rides++
			s.RideDistance += rec.Distance
			s.RideDuration += rec.Duration
			if rec.Cycling != nil {
				s.Speeds = append(s.Speeds, rec.Cycling.Speed)
				s.ElevationGain += rec.Cycling.ElevationGain
			}
		}
	}
	return s
}
