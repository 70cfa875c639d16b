// Package geodesic implements great-circle math on a spherical Earth.
package geodesic

import (
	"math"

	"cycle-course-recommender/internal/models"
)

const (
	// EarthRadiusM is the mean Earth radius used for distances.
	EarthRadiusM = 6371000.0
	// EarthRadiusKm is the same radius in kilometers, used for projection.
	EarthRadiusKm = 6371.0
)

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
func toDegrees(rad float64) float64 { return rad * 180 / math.Pi }

// Distance returns the haversine distance between p1 and p2 in meters.
func Distance(p1, p2 models.Coordinate) float64 {
	lat1, lon1 := toRadians(p1.Lat), toRadians(p1.Lon)
	lat2, lon2 := toRadians(p2.Lat), toRadians(p2.Lon)
	dLat := lat2 - lat1
	dLon := lon2 - lon1

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// rounding can push a marginally above 1 for antipodal points
	a = math.Min(1, a)
	return 2 * EarthRadiusM * math.Asin(math.Sqrt(a))
}

// Destination solves the direct problem: the point reached from origin after
// distanceKm along the great circle leaving at bearingDeg (clockwise from north).
func Destination(origin models.Coordinate, bearingDeg, distanceKm float64) models.Coordinate {
	b := toRadians(bearingDeg)
	lat1 := toRadians(origin.Lat)
	lon1 := toRadians(origin.Lon)
	d := distanceKm / EarthRadiusKm

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) + math.Cos(lat1)*math.Sin(d)*math.Cos(b))
	lon2 := lon1 + math.Atan2(
		math.Sin(b)*math.Sin(d)*math.Cos(lat1),
		math.Cos(d)-math.Sin(lat1)*math.Sin(lat2),
	)

	return models.Coordinate{Lat: toDegrees(lat2), Lon: normalizeLon(toDegrees(lon2))}
}

// normalizeLon folds a longitude into [-180, 180).
func normalizeLon(lon float64) float64 {
	return math.Mod(lon+540, 360) - 180
}
