package models

// RecommendRequest is the input of one recommendation.
type RecommendRequest struct {
	Lat        float64 `json:"lat" validate:"latitude"`
	Lon        float64 `json:"lon" validate:"longitude"`
	TargetKm   float64 `json:"target_km" validate:"gt=0,lte=100"`
	OutAndBack bool    `json:"out_and_back"`
}

// CoursePayload is one tier of a successful recommendation.
type CoursePayload struct {
	DistanceM       float64      `json:"distance_m"`
	TotalAscentM    float64      `json:"total_ascent_m"`
	MaxGradePercent float64      `json:"max_grade_percent"`
	DifficultyScore float64      `json:"difficulty_score"`
	Polyline        []Coordinate `json:"polyline"`
	EncodedPolyline string       `json:"encoded_polyline"`
}

// RecommendResponse is returned when three tiers could be selected.
type RecommendResponse struct {
	RecommendationID string        `json:"recommendation_id"`
	Easy             CoursePayload `json:"EASY"`
	Normal           CoursePayload `json:"NORMAL"`
	Hard             CoursePayload `json:"HARD"`
	Trials           int           `json:"trials"`
	Candidates       int           `json:"candidates"`
}

// InsufficientCandidatesResponse reports fewer than three scored candidates.
type InsufficientCandidatesResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// MissingCredentialsResponse reports which provider keys were loaded.
type MissingCredentialsResponse struct {
	Message      string `json:"message"`
	KakaoLoaded  bool   `json:"kakao_loaded"`
	GoogleLoaded bool   `json:"google_loaded"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status                string `json:"status"`
	DirectionsProvider    string `json:"directions_provider"`
	DirectionsReady       bool   `json:"directions_ready"`
	ElevationReady        bool   `json:"elevation_ready"`
	StoredRecommendations int    `json:"stored_recommendations"`
}
