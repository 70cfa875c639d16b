// Package directions holds the routing providers a course can be built from.
package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"cycle-course-recommender/internal/models"
)

// KakaoDirectionsURL is the Kakao Mobility car directions endpoint.
const KakaoDirectionsURL = "https://apis-navi.kakaomobility.com/v1/directions"

// KakaoClient calls Kakao Mobility directions with a REST key.
type KakaoClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// NewKakaoClient creates a client. A nil httpClient gets a 10 second timeout.
func NewKakaoClient(apiKey string, httpClient *http.Client) *KakaoClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &KakaoClient{
		httpClient: httpClient,
		apiKey:     apiKey,
		baseURL:    KakaoDirectionsURL,
	}
}

// kakaoResponse is the subset of the directions response we read.
// Vertexes are interleaved x (lon), y (lat).
type kakaoResponse struct {
	Routes []struct {
		ResultCode int    `json:"result_code"`
		ResultMsg  string `json:"result_msg"`
		Summary    *struct {
			Distance float64 `json:"distance"`
		} `json:"summary"`
		Sections []struct {
			Roads []struct {
				Vertexes []float64 `json:"vertexes"`
			} `json:"roads"`
		} `json:"sections"`
	} `json:"routes"`
}

// Route asks Kakao for the recommended route from origin to destination.
func (k *KakaoClient) Route(ctx context.Context, origin, destination models.Coordinate) (*models.DirectionsRoute, error) {
	params := url.Values{}
	params.Set("origin", lonLat(origin))
	params.Set("destination", lonLat(destination))
	params.Set("priority", "RECOMMEND")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("kakao: build request: %w", err)
	}
	req.Header.Set("Authorization", "KakaoAK "+k.apiKey)

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: kakao: %v", models.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: kakao status %d", models.ErrProviderUnavailable, resp.StatusCode)
	}

	var out kakaoResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: kakao: %v", models.ErrMalformedResponse, err)
	}
	if len(out.Routes) == 0 {
		return nil, models.ErrNoRoute
	}
	r := out.Routes[0]
	if r.ResultCode != 0 {
		return nil, fmt.Errorf("%w: kakao result %d %s", models.ErrNoRoute, r.ResultCode, r.ResultMsg)
	}
	if r.Summary == nil {
		return nil, fmt.Errorf("%w: kakao route without summary", models.ErrMalformedResponse)
	}

	route := &models.DirectionsRoute{SummaryDistanceMeters: r.Summary.Distance}
	for _, section := range r.Sections {
		for _, road := range section.Roads {
			route.RoadSegments = append(route.RoadSegments, road.Vertexes)
		}
	}
	return route, nil
}

func lonLat(c models.Coordinate) string {
	return fmt.Sprintf("%f,%f", c.Lon, c.Lat)
}
