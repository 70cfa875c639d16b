package directions

import (
	"context"
	"fmt"

	"cycle-course-recommender/internal/models"

	"googlemaps.github.io/maps"
)

// GoogleClient routes with the Google Directions API in bicycling mode.
// Every step becomes one road segment so the result has the same nested
// shape as Kakao's roads.
type GoogleClient struct {
	client *maps.Client
	mode   maps.Mode
}

// NewGoogleClient wraps an initialized maps client.
func NewGoogleClient(client *maps.Client) *GoogleClient {
	return &GoogleClient{client: client, mode: maps.TravelModeBicycling}
}

func (g *GoogleClient) Route(ctx context.Context, origin, destination models.Coordinate) (*models.DirectionsRoute, error) {
	routes, _, err := g.client.Directions(ctx, &maps.DirectionsRequest{
		Origin:      origin.String(),
		Destination: destination.String(),
		Mode:        g.mode,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: google directions: %v", models.ErrProviderUnavailable, err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return nil, models.ErrNoRoute
	}

	route := &models.DirectionsRoute{}
	for _, leg := range routes[0].Legs {
		route.SummaryDistanceMeters += float64(leg.Distance.Meters)
		for _, step := range leg.Steps {
			points, err := step.Polyline.Decode()
			if err != nil {
				return nil, fmt.Errorf("%w: step polyline: %v", models.ErrMalformedResponse, err)
			}
			seg := make([]float64, 0, 2*len(points))
			for _, p := range points {
				seg = append(seg, p.Lng, p.Lat)
			}
			route.RoadSegments = append(route.RoadSegments, seg)
		}
	}
	return route, nil
}
