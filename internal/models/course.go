package models

import (
	"fmt"
	"strings"
)

// Coordinate is a (latitude, longitude) pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// String formats the coordinate as "lat,lon", the form most map APIs accept.
func (c Coordinate) String() string {
	return fmt.Sprintf("%f,%f", c.Lat, c.Lon)
}

// DirectionsRoute is the normalized answer of a directions provider.
// RoadSegments keeps the provider's nesting: one flat slice per road,
// interleaved as lon, lat, lon, lat, ...
type DirectionsRoute struct {
	SummaryDistanceMeters float64
	RoadSegments          [][]float64
}

// DifficultyMetrics is the terrain summary of one candidate, rounded to one decimal.
type DifficultyMetrics struct {
	TotalAscentM    float64 `json:"total_ascent_m"`
	MaxGradePercent float64 `json:"max_grade_percent"`
	DifficultyScore float64 `json:"difficulty_score"`
}

// CandidateRoute is a routed, accepted and scored sampling trial.
// Elevations is aligned index-by-index with the analyzed prefix of Polyline.
type CandidateRoute struct {
	Trial          int               `json:"-"`
	Destination    Coordinate        `json:"destination"`
	DistanceMeters float64           `json:"distance_m"`
	Polyline       []Coordinate      `json:"polyline"`
	Elevations     []float64         `json:"-"`
	Metrics        DifficultyMetrics `json:"metrics"`
}

// Tier is a difficulty class assigned purely by score rank.
type Tier string

// Difficulty tiers, in ascending order.
const (
	TierEasy   Tier = "EASY"
	TierNormal Tier = "NORMAL"
	TierHard   Tier = "HARD"
)

// Tiers lists every tier in ascending difficulty.
var Tiers = []Tier{TierEasy, TierNormal, TierHard}

// ParseTier accepts a tier name in any letter case.
func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case TierEasy, TierNormal, TierHard:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTier, s)
}

// RecommendationResult is either three tiered candidates or an
// insufficient-candidates outcome carrying how many were produced.
type RecommendationResult struct {
	ID           string
	Selections   map[Tier]CandidateRoute
	Insufficient bool
	Count        int
	Trials       int
}
