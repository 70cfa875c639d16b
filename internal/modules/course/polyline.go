package course

import (
	"math"

	"cycle-course-recommender/internal/models"

	geo "github.com/paulmach/go.geo"
)

// ExtractPolyline flattens the provider's road segments into one ordered
// polyline. Each segment is interleaved lon, lat pairs; the result is in
// lat/lon order. A malformed segment (odd length, NaN, out-of-range
// coordinate) yields an empty polyline, which callers treat as a reject.
func ExtractPolyline(route *models.DirectionsRoute) []models.Coordinate {
	if route == nil {
		return nil
	}
	total := 0
	for _, seg := range route.RoadSegments {
		if len(seg)%2 != 0 {
			return nil
		}
		total += len(seg) / 2
	}

	points := make([]models.Coordinate, 0, total)
	for _, seg := range route.RoadSegments {
		for i := 0; i < len(seg); i += 2 {
			lon, lat := seg[i], seg[i+1]
			if !validLatLon(lat, lon) {
				return nil
			}
			points = append(points, models.Coordinate{Lat: lat, Lon: lon})
		}
	}
	return points
}

func validLatLon(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// MirrorPolyline returns the out-and-back version of points: the outbound
// path followed by the same path reversed, without repeating the turnaround.
func MirrorPolyline(points []models.Coordinate) []models.Coordinate {
	if len(points) == 0 {
		return nil
	}
	out := make([]models.Coordinate, 0, 2*len(points)-1)
	out = append(out, points...)
	for i := len(points) - 2; i >= 0; i-- {
		out = append(out, points[i])
	}
	return out
}

// EncodePolyline encodes points with the Google polyline algorithm at 1e5 precision.
func EncodePolyline(points []models.Coordinate) string {
	path := geo.NewPath()
	for _, p := range points {
		path.Push(geo.NewPointFromLatLng(p.Lat, p.Lon))
	}
	return path.Encode()
}
