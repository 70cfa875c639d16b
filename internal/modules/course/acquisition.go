package course

import (
	"context"
	"fmt"
	"time"

	"cycle-course-recommender/internal/models"
)

// DirectionsProvider routes between two coordinates.
type DirectionsProvider interface {
	Route(ctx context.Context, origin, destination models.Coordinate) (*models.DirectionsRoute, error)
}

// ElevationProvider returns one elevation per point, in point order.
type ElevationProvider interface {
	Sample(ctx context.Context, points []models.Coordinate) ([]float64, error)
}

// routeOutcome is either a usable route or the reason there is none.
type routeOutcome struct {
	Route *models.DirectionsRoute
	Err   error
}

func (o routeOutcome) OK() bool { return o.Err == nil }

// fetchRoute makes one bounded directions call. It never returns an error to
// the caller; every failure mode is folded into the outcome.
func fetchRoute(ctx context.Context, p DirectionsProvider, timeout time.Duration, origin, dest models.Coordinate) routeOutcome {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	route, err := p.Route(ctx, origin, dest)
	if err != nil {
		return routeOutcome{Err: fmt.Errorf("fetchRoute: %w", err)}
	}
	if route == nil || len(route.RoadSegments) == 0 {
		return routeOutcome{Err: models.ErrNoRoute}
	}
	return routeOutcome{Route: route}
}

// elevationOutcome carries the sampled prefix and its aligned elevations.
type elevationOutcome struct {
	Points     []models.Coordinate
	Elevations []float64
	Err        error
}

func (o elevationOutcome) OK() bool { return o.Err == nil }

// fetchElevations queries at most maxPoints leading points of polyline.
// The provider must answer with exactly one value per point.
func fetchElevations(ctx context.Context, p ElevationProvider, timeout time.Duration, polyline []models.Coordinate, maxPoints int) elevationOutcome {
	points := polyline
	if maxPoints > 0 && len(points) > maxPoints {
		points = points[:maxPoints]
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	elevations, err := p.Sample(ctx, points)
	if err != nil {
		return elevationOutcome{Err: fmt.Errorf("fetchElevations: %w", err)}
	}
	if len(elevations) != len(points) {
		return elevationOutcome{Err: fmt.Errorf("%w: want %d, got %d", models.ErrElevationMismatch, len(points), len(elevations))}
	}
	return elevationOutcome{Points: points, Elevations: elevations}
}
