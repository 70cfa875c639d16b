package course

import (
	"fmt"
	"math"

	"cycle-course-recommender/internal/geodesic"
	"cycle-course-recommender/internal/models"
)

// Score weights. Tiering is by score rank only, so these must stay fixed.
const (
	ascentWeight   = 0.5
	maxGradeWeight = 2.0
)

// AnalyzeTerrain reduces a polyline and its aligned elevations to ascent,
// maximum grade and composite difficulty score. Segments with zero
// horizontal length are skipped.
func AnalyzeTerrain(points []models.Coordinate, elevations []float64) (models.DifficultyMetrics, error) {
	if len(points) != len(elevations) {
		return models.DifficultyMetrics{}, fmt.Errorf("%w: %d points, %d elevations", models.ErrElevationMismatch, len(points), len(elevations))
	}
	if len(points) < 2 {
		return models.DifficultyMetrics{}, fmt.Errorf("AnalyzeTerrain: need at least 2 points, got %d", len(points))
	}

	var ascent, maxGrade float64
	for i := 0; i+1 < len(points); i++ {
		d := geodesic.Distance(points[i], points[i+1])
		if d <= 0 {
			continue
		}
		dh := elevations[i+1] - elevations[i]
		if dh > 0 {
			ascent += dh
		}
		maxGrade = math.Max(maxGrade, math.Abs(dh/d)*100)
	}

	score := ascent*ascentWeight + maxGrade*maxGradeWeight
	return models.DifficultyMetrics{
		TotalAscentM:    round1(ascent),
		MaxGradePercent: round1(maxGrade),
		DifficultyScore: round1(score),
	}, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
