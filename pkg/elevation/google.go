// Package elevation samples terrain height along a course.
package elevation

import (
	"context"
	"fmt"

	"cycle-course-recommender/internal/models"

	"golang.org/x/time/rate"
	"googlemaps.github.io/maps"
)

// GoogleClient queries the Google Elevation API. Calls are throttled so a
// burst of concurrent trials stays inside the account's request quota.
type GoogleClient struct {
	client  *maps.Client
	limiter *rate.Limiter
}

// NewGoogleClient wraps client with a limiter of qps requests per second.
// qps <= 0 disables throttling.
func NewGoogleClient(client *maps.Client, qps float64) *GoogleClient {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if qps > 0 {
		limiter = rate.NewLimiter(rate.Limit(qps), 1)
	}
	return &GoogleClient{client: client, limiter: limiter}
}

// Sample returns one elevation (meters) per point, in input order.
func (g *GoogleClient) Sample(ctx context.Context, points []models.Coordinate) ([]float64, error) {
	if len(points) == 0 {
		return nil, nil
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("elevation: throttle: %w", err)
	}

	locations := make([]maps.LatLng, len(points))
	for i, p := range points {
		locations[i] = maps.LatLng{Lat: p.Lat, Lng: p.Lon}
	}

	results, err := g.client.Elevation(ctx, &maps.ElevationRequest{Locations: locations})
	if err != nil {
		return nil, fmt.Errorf("%w: google elevation: %v", models.ErrProviderUnavailable, err)
	}
	if len(results) != len(points) {
		return nil, fmt.Errorf("%w: want %d, got %d", models.ErrElevationMismatch, len(points), len(results))
	}

	out := make([]float64, len(results))
	for i, r := range results {
		out[i] = r.Elevation
	}
	return out, nil
}
