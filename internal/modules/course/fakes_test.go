package course

import (
	"context"

	"cycle-course-recommender/internal/models"
)

// directionsFunc and elevationFunc stand in for the HTTP providers.
type directionsFunc func(ctx context.Context, origin, dest models.Coordinate) (*models.DirectionsRoute, error)

func (f directionsFunc) Route(ctx context.Context, origin, dest models.Coordinate) (*models.DirectionsRoute, error) {
	return f(ctx, origin, dest)
}

type elevationFunc func(ctx context.Context, points []models.Coordinate) ([]float64, error)

func (f elevationFunc) Sample(ctx context.Context, points []models.Coordinate) ([]float64, error) {
	return f(ctx, points)
}

// northRoute builds a route of n vertices heading north from start in one
// road segment, 0.001 degrees of latitude (about 111 m) apart.
func northRoute(start models.Coordinate, n int, meters float64) *models.DirectionsRoute {
	seg := make([]float64, 0, 2*n)
	for i := 0; i < n; i++ {
		seg = append(seg, start.Lon, start.Lat+float64(i)*0.001)
	}
	return &models.DirectionsRoute{SummaryDistanceMeters: meters, RoadSegments: [][]float64{seg}}
}

func fixedRoute(n int, meters float64) DirectionsProvider {
	return directionsFunc(func(ctx context.Context, origin, dest models.Coordinate) (*models.DirectionsRoute, error) {
		return northRoute(origin, n, meters), nil
	})
}

// climbing returns 0, step, 2*step, ... for every point.
func climbing(step float64) ElevationProvider {
	return elevationFunc(func(ctx context.Context, points []models.Coordinate) ([]float64, error) {
		out := make([]float64, len(points))
		for i := range out {
			out[i] = float64(i) * step
		}
		return out, nil
	})
}

// constRand always returns v.
type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

// countingRand wraps a source and counts draws.
type countingRand struct {
	src   RandomSource
	draws int
}

func (c *countingRand) Float64() float64 {
	c.draws++
	return c.src.Float64()
}

func testSelectorConfig() SelectorConfig {
	cfg := DefaultSelectorConfig()
	cfg.Workers = 4
	return cfg
}
