// Package geo provides great-circle distance helpers.
package geo

import (
	"math"

	"github.com/ngmaloney/travel-terminal/internal/models"
)

const (
	earthRadiusKm    = 6371.0
	earthRadiusMiles = 3959.0
)

// DistanceKm returns the haversine distance in kilometers between two coordinates
func DistanceKm(a, b models.Coordinate) float64 {
	return earthRadiusKm * centralAngle(a, b)
}

// DistanceMiles returns the haversine distance in miles between two coordinates
func DistanceMiles(a, b models.Coordinate) float64 {
	return earthRadiusMiles * centralAngle(a, b)
}

// centralAngle is the angle in radians subtended by a and b at the earth's center
func centralAngle(a, b models.Coordinate) float64 {
	lat1Rad := toRad(a.Lat)
	lat2Rad := toRad(b.Lat)
	deltaLat := toRad(b.Lat - a.Lat)
	deltaLon := toRad(b.Lon - a.Lon)

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	return 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
