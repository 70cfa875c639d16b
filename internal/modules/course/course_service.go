package course

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"cycle-course-recommender/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ServiceInterface is everything the course handler needs.
type ServiceInterface interface {
	Recommend(ctx context.Context, req models.RecommendRequest) (models.RecommendationResult, error)
	GetRecommendation(ctx context.Context, id string) (models.RecommendationResult, error)
	GetSelection(ctx context.Context, id string, tier models.Tier) (models.CandidateRoute, error)
	Health(ctx context.Context) models.HealthResponse
}

// Options wires a course service. A nil provider means its credentials are
// missing; the service still starts but refuses recommendations.
type Options struct {
	Directions     DirectionsProvider
	Elevation      ElevationProvider
	DirectionsName string
	Selector       SelectorConfig
	RequestTimeout time.Duration
	Logger         *zap.Logger

	// NewRand and NewID are replaced in tests for reproducible runs.
	NewRand func() RandomSource
	NewID   func() string
}

type service struct {
	repo           RepositoryInterface
	directions     DirectionsProvider
	elevation      ElevationProvider
	directionsName string
	selector       *Selector
	requestTimeout time.Duration
	newRand        func() RandomSource
	newID          func() string
	logger         *zap.Logger
}

// NewService builds the course service on top of repo.
func NewService(repo RepositoryInterface, opts Options) ServiceInterface {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	newRand := opts.NewRand
	if newRand == nil {
		newRand = func() RandomSource { return rand.New(rand.NewSource(time.Now().UnixNano())) }
	}
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &service{
		repo:           repo,
		directions:     opts.Directions,
		elevation:      opts.Elevation,
		directionsName: opts.DirectionsName,
		selector:       NewSelector(opts.Directions, opts.Elevation, opts.Selector, logger.Named("selector")),
		requestTimeout: timeout,
		newRand:        newRand,
		newID:          newID,
		logger:         logger,
	}
}

// Recommend runs one full recommendation. Insufficient candidates is a
// regular result, not an error. Missing credentials, a canceled caller and a
// trial that panicked are reported as errors.
func (s *service) Recommend(ctx context.Context, req models.RecommendRequest) (models.RecommendationResult, error) {
	if s.directions == nil || s.elevation == nil {
		return models.RecommendationResult{}, &models.MissingCredentialsError{
			DirectionsLoaded: s.directions != nil,
			ElevationLoaded:  s.elevation != nil,
		}
	}
	if req.TargetKm <= 0 {
		return models.RecommendationResult{}, fmt.Errorf("%w: target_km must be positive", models.ErrInvalidRequest)
	}

	runCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	plan := Plan{
		Start:      models.Coordinate{Lat: req.Lat, Lon: req.Lon},
		TargetKm:   req.TargetKm,
		OutAndBack: req.OutAndBack,
	}
	start := time.Now()
	candidates, stats, err := s.selector.Collect(runCtx, s.newRand(), plan)
	if err != nil {
		return models.RecommendationResult{}, fmt.Errorf("service.Recommend: %w", err)
	}

	if errors.Is(ctx.Err(), context.Canceled) {
		return models.RecommendationResult{}, fmt.Errorf("service.Recommend: %w", ctx.Err())
	}

	fields := []zap.Field{
		zap.Float64("lat", req.Lat),
		zap.Float64("lon", req.Lon),
		zap.Float64("target_km", req.TargetKm),
		zap.Bool("out_and_back", req.OutAndBack),
		zap.Int("trials", stats.Trials),
		zap.Int("accepted", stats.Accepted),
		zap.Duration("elapsed", time.Since(start)),
	}
	for reason, n := range stats.Discarded {
		fields = append(fields, zap.Int("discarded_"+string(reason), n))
	}
	s.logger.Info("recommendation finished", fields...)

	result := SelectTiers(candidates)
	result.Trials = stats.Trials
	if result.Insufficient {
		return result, nil
	}

	result.ID = s.newID()
	if err := s.repo.SaveRecommendation(ctx, result); err != nil {
		return models.RecommendationResult{}, fmt.Errorf("service.Recommend: save: %w", err)
	}
	return result, nil
}

func (s *service) GetRecommendation(ctx context.Context, id string) (models.RecommendationResult, error) {
	return s.repo.FindRecommendation(ctx, id)
}

// GetSelection returns the candidate stored for one tier of a recommendation.
func (s *service) GetSelection(ctx context.Context, id string, tier models.Tier) (models.CandidateRoute, error) {
	rec, err := s.repo.FindRecommendation(ctx, id)
	if err != nil {
		return models.CandidateRoute{}, err
	}
	sel, ok := rec.Selections[tier]
	if !ok {
		return models.CandidateRoute{}, fmt.Errorf("%w: tier %s", models.ErrNotFound, tier)
	}
	return sel, nil
}

func (s *service) Health(ctx context.Context) models.HealthResponse {
	return models.HealthResponse{
		Status:                "ok",
		DirectionsProvider:    s.directionsName,
		DirectionsReady:       s.directions != nil,
		ElevationReady:        s.elevation != nil,
		StoredRecommendations: s.repo.Len(),
	}
}
