package tui

import (
	"fmt"

	"maptrack/internal/config"
	"maptrack/internal/workout"
)

const kmPerMile = 1.609344

// Units formats workout values in the user's preferred distance unit.
// Records always store km, min/km and km/h.
type Units struct {
	cfg config.DisplayConfig
}

// NewUnits creates a new Units helper with the given display config
func NewUnits(cfg config.DisplayConfig) Units {
	return Units{cfg: cfg}
}

// IsMiles returns true if distance unit is miles
func (u Units) IsMiles() bool {
	return u.cfg.DistanceUnit == "mi"
}

// DistanceLabel returns the short unit label ("mi" or "km")
func (u Units) DistanceLabel() string {
	if u.IsMiles() {
		return "mi"
	}
	return "km"
}

// FormatDistance formats a distance in km
func (u Units) FormatDistance(km float64) string {
	if u.IsMiles() {
		km /= kmPerMile
	}
	return fmt.Sprintf("%.1f %s", km, u.DistanceLabel())
}

// FormatDuration formats minutes as "42 min" or "1h 05m"
func (u Units) FormatDuration(minutes float64) string {
	total := int(minutes + 0.5)
	if total < 60 {
		return fmt.Sprintf("%d min", total)
	}
	return fmt.Sprintf("%dh %02dm", total/60, total%60)
}

// FormatPace formats a pace in min/km as m:ss per unit
func (u Units) FormatPace(minPerKm float64) string {
	if minPerKm <= 0 {
		return "-"
	}
	if u.IsMiles() {
		minPerKm *= kmPerMile
	}
	secs := int(minPerKm*60 + 0.5)
	return fmt.Sprintf("%d:%02d /%s", secs/60, secs%60, u.DistanceLabel())
}

// FormatSpeed formats a speed in km/h
func (u Units) FormatSpeed(kmh float64) string {
	if u.IsMiles() {
		return fmt.Sprintf("%.1f mph", kmh/kmPerMile)
	}
	return fmt.Sprintf("%.1f km/h", kmh)
}

// FormatMetric formats the sport's derived metric
func (u Units) FormatMetric(rec workout.Record) string {
	switch {
	case rec.Running != nil:
		return u.FormatPace(rec.Running.Pace)
	case rec.Cycling != nil:
		return u.FormatSpeed(rec.Cycling.Speed)
	}
	return "-"
}

// FormatExtra formats cadence or elevation gain
func (u Units) FormatExtra(rec workout.Record) string {
	switch {
	case rec.Running != nil:
		return fmt.Sprintf("🦶🏼 %.0f spm", rec.Running.Cadence)
	case rec.Cycling != nil:
		return fmt.Sprintf("⛰ %.0f m", rec.Cycling.ElevationGain)
	}
	return ""
}

func kindLabel(k workout.Kind) string {
	switch k {
	case workout.Running:
		return "Running"
	case workout.Cycling:
		return "Cycling"
	}
	return string(k)
}
