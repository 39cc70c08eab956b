package mapview

import (
	"math"

	"maptrack/internal/geo"
)

const (
	tileSize = 256
	maxLat   = 85.05112878

	// world pixels covered by one terminal cell; cells are about twice as tall as wide
	cellWidth  = 8
	cellHeight = 16

	MinZoom = 1
	MaxZoom = 19
)

func worldSize(zoom int) float64 {
	return tileSize * math.Exp2(float64(zoom))
}

// Project converts a position to Web Mercator world pixels at zoom
func Project(c geo.Coords, zoom int) (x, y float64) {
	size := worldSize(zoom)
	lat := math.Max(-maxLat, math.Min(maxLat, c.Lat))
	rad := lat * math.Pi / 180

	x = (c.Lng + 180) / 360 * size
	y = (1 - math.Log(math.Tan(rad)+1/math.Cos(rad))/math.Pi) / 2 * size
	return x, y
}

// Unproject converts Web Mercator world pixels at zoom back to a position
func Unproject(x, y float64, zoom int) geo.Coords {
	size := worldSize(zoom)
	lng := x/size*360 - 180
	n := math.Pi - 2*math.Pi*y/size
	lat := 180 / math.Pi * math.Atan(math.Sinh(n))
	return geo.Coords{Lat: lat, Lng: wrapLng(lng)}
}

func wrapLng(lng float64) float64 {
	for lng > 180 {
		lng -= 360
	}
	for lng < -180 {
		lng += 360
	}
	return lng
}

func clampZoom(z int) int {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}
