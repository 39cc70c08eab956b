package workout

import (
	"fmt"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var months = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Pace returns minutes per kilometer
func Pace(distance, duration float64) float64 {
	return duration / distance
}

// Speed returns kilometers per hour for a duration in minutes
func Speed(distance, duration float64) float64 {
	return distance / (duration / 60)
}

// Describe returns the human label, e.g. "Running on April 14"
func Describe(kind Kind, createdAt time.Time) string {
	return fmt.Sprintf("%s on %s %d", cases.Title(language.English).String(string(kind)), months[createdAt.Month()-1], createdAt.Day())
}
