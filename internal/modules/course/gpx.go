package course

import (
	"fmt"

	"cycle-course-recommender/internal/models"

	"github.com/tkrajina/gpxgo/gpx"
)

const gpxCreator = "cycle-course-recommender"

// BuildGPX renders a selected course as a GPX 1.1 track. Elevations are
// attached to the analyzed prefix only; later points carry none.
func BuildGPX(recommendationID string, tier models.Tier, c models.CandidateRoute) ([]byte, error) {
	seg := gpx.GPXTrackSegment{Points: make([]gpx.GPXPoint, 0, len(c.Polyline))}
	for i, p := range c.Polyline {
		pt := gpx.GPXPoint{Point: gpx.Point{Latitude: p.Lat, Longitude: p.Lon}}
		if i < len(c.Elevations) {
			pt.Elevation = *gpx.NewNullableFloat64(c.Elevations[i])
		}
		seg.Points = append(seg.Points, pt)
	}

	name := fmt.Sprintf("%s course %s", tier, recommendationID)
	doc := &gpx.GPX{
		Creator:     gpxCreator,
		Name:        name,
		Description: fmt.Sprintf("%.0f m, ascent %.1f m, max grade %.1f%%, score %.1f", c.DistanceMeters, c.Metrics.TotalAscentM, c.Metrics.MaxGradePercent, c.Metrics.DifficultyScore),
		Tracks: []gpx.GPXTrack{{
			Name:     name,
			Type:     "cycling",
			Segments: []gpx.GPXTrackSegment{seg},
		}},
	}
	out, err := doc.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return nil, fmt.Errorf("BuildGPX: %w", err)
	}
	return out, nil
}
