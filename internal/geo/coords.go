package geo

import (
	"encoding/json"
	"fmt"
)

// Coords is a WGS 84 position
type Coords struct {
	Lat float64
	Lng float64
}

// Valid reports whether the position lies inside the latitude/longitude ranges
func (c Coords) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

func (c Coords) String() string {
	return fmt.Sprintf("%.5f, %.5f", c.Lat, c.Lng)
}

// MarshalJSON encodes the position as a [lat, lng] pair
func (c Coords) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lat, c.Lng})
}

// UnmarshalJSON decodes a [lat, lng] pair
func (c *Coords) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("decoding coords: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("decoding coords: want 2 values, got %d", len(pair))
	}
	c.Lat, c.Lng = pair[0], pair[1]
	return nil
}
