package course

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"cycle-course-recommender/internal/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DiscardReason says why a trial did not produce a candidate.
type DiscardReason string

const (
	DiscardRouteFailed     DiscardReason = "route_failed"
	DiscardOutOfBand       DiscardReason = "distance_out_of_band"
	DiscardShortPolyline   DiscardReason = "short_polyline"
	DiscardElevationFailed DiscardReason = "elevation_failed"
	DiscardAnalysisFailed  DiscardReason = "analysis_failed"
)

// ErrTrialPanicked reports a programming error inside a trial. It fails the
// whole batch instead of being counted as a discard.
var ErrTrialPanicked = errors.New("trial panicked")

// SelectorConfig tunes one batch of trials.
type SelectorConfig struct {
	Samples           int
	Tolerance         float64
	ElevationPoints   int
	MinPolylinePoints int
	Workers           int
	ProviderTimeout   time.Duration
}

// DefaultSelectorConfig mirrors the production defaults.
func DefaultSelectorConfig() SelectorConfig {
	return SelectorConfig{
		Samples:           80,
		Tolerance:         0.30,
		ElevationPoints:   40,
		MinPolylinePoints: 5,
		Workers:           8,
		ProviderTimeout:   10 * time.Second,
	}
}

// trialOutcome is either a scored candidate or a discard with its reason.
type trialOutcome struct {
	Candidate *models.CandidateRoute
	Reason    DiscardReason
	Err       error
}

func discard(reason DiscardReason, err error) trialOutcome {
	return trialOutcome{Reason: reason, Err: err}
}

// BatchStats summarizes one batch of trials.
type BatchStats struct {
	Trials    int
	Accepted  int
	Discarded map[DiscardReason]int
}

// Plan describes what one recommendation asks for.
type Plan struct {
	Start      models.Coordinate
	TargetKm   float64
	OutAndBack bool
}

// Selector runs sampling trials against the providers and collects scored candidates.
type Selector struct {
	directions DirectionsProvider
	elevation  ElevationProvider
	cfg        SelectorConfig
	logger     *zap.Logger
}

// NewSelector wires a selector to its providers.
func NewSelector(directions DirectionsProvider, elevation ElevationProvider, cfg SelectorConfig, logger *zap.Logger) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Selector{directions: directions, elevation: elevation, cfg: cfg, logger: logger}
}

// Collect runs up to cfg.Samples trials with at most cfg.Workers in flight and
// returns the scored candidates ordered by trial index. When ctx ends, no new
// trials are started and trials still running are abandoned.
//
// A trial that panics stops further dispatch and Collect returns an error
// wrapping ErrTrialPanicked; the candidates gathered so far are dropped.
func (s *Selector) Collect(ctx context.Context, rng RandomSource, plan Plan) ([]models.CandidateRoute, BatchStats, error) {
	// 1) An out-and-back course turns around at half the target.
	sampleKm := plan.TargetKm
	if plan.OutAndBack {
		sampleKm = plan.TargetKm / 2
	}

	c := &collector{discarded: make(map[DiscardReason]int)}
	done := make(chan struct{})

	// 2) Dispatch trials in sampling order, bounded by the worker limit.
	go func() {
		defer close(done)
		var g errgroup.Group
		g.SetLimit(s.cfg.Workers)

		trial := 0
		for dest := range SampleDestinations(rng, plan.Start, sampleKm, s.cfg.Samples, s.cfg.Tolerance) {
			if ctx.Err() != nil || c.failed() {
				break
			}
			i := trial
			trial++
			c.dispatched()
			g.Go(func() error {
				out, err := s.runTrial(ctx, i, plan, dest)
				if err != nil {
					c.fail(err)
					return nil
				}
				if out.Candidate == nil {
					s.logger.Debug("trial discarded",
						zap.Int("trial", i),
						zap.String("reason", string(out.Reason)),
						zap.Error(out.Err))
				}
				c.add(out)
				return nil
			})
		}
		_ = g.Wait()
	}()

	// 3) Wait for every trial or the deadline, whichever comes first.
	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn("recommendation deadline reached, abandoning in-flight trials", zap.Error(ctx.Err()))
	}

	// 4) Freeze the collector so late trials cannot change the result.
	return c.close()
}

// runTrial is the trial boundary. Provider and analysis failures become a
// discard; a panic is recovered here, since it runs on an errgroup goroutine,
// and returned as an error.
func (s *Selector) runTrial(ctx context.Context, trial int, plan Plan, dest models.Coordinate) (out trialOutcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("trial panicked", zap.Int("trial", trial), zap.Any("panic", r), zap.Stack("stack"))
			out, err = trialOutcome{}, fmt.Errorf("%w: trial %d: %v", ErrTrialPanicked, trial, r)
		}
	}()

	// Route to the sampled destination.
	ro := fetchRoute(ctx, s.directions, s.cfg.ProviderTimeout, plan.Start, dest)
	if !ro.OK() {
		return discard(DiscardRouteFailed, ro.Err), nil
	}

	// The provider's summary distance decides the band, doubled for out-and-back.
	distance := ro.Route.SummaryDistanceMeters
	if plan.OutAndBack {
		distance *= 2
	}
	if !AcceptDistance(distance, plan.TargetKm, s.cfg.Tolerance) {
		return discard(DiscardOutOfBand, fmt.Errorf("distance %.0f m outside band for %.2f km", distance, plan.TargetKm)), nil
	}

	polyline := ExtractPolyline(ro.Route)
	if len(polyline) < s.cfg.MinPolylinePoints {
		return discard(DiscardShortPolyline, fmt.Errorf("polyline has %d points", len(polyline))), nil
	}
	if plan.OutAndBack {
		polyline = MirrorPolyline(polyline)
	}

	// Score terrain on the capped prefix of the course.
	eo := fetchElevations(ctx, s.elevation, s.cfg.ProviderTimeout, polyline, s.cfg.ElevationPoints)
	if !eo.OK() {
		return discard(DiscardElevationFailed, eo.Err), nil
	}

	metrics, aerr := AnalyzeTerrain(eo.Points, eo.Elevations)
	if aerr != nil {
		return discard(DiscardAnalysisFailed, aerr), nil
	}

	return trialOutcome{Candidate: &models.CandidateRoute{
		Trial:          trial,
		Destination:    dest,
		DistanceMeters: distance,
		Polyline:       polyline,
		Elevations:     eo.Elevations,
		Metrics:        metrics,
	}}, nil
}

// collector is the only state trials share.
type collector struct {
	mu         sync.Mutex
	closed     bool
	trials     int
	candidates []models.CandidateRoute
	discarded  map[DiscardReason]int
	err        error // first trial panic
}

func (c *collector) dispatched() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.trials++
	}
}

func (c *collector) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed && c.err == nil {
		c.err = err
	}
}

func (c *collector) failed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err != nil
}

func (c *collector) add(out trialOutcome) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if out.Candidate != nil {
		c.candidates = append(c.candidates, *out.Candidate)
		return
	}
	c.discarded[out.Reason]++
}

// close freezes the collector and returns what it holds in trial order.
func (c *collector) close() ([]models.CandidateRoute, BatchStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true

	out := slices.Clone(c.candidates)
	slices.SortFunc(out, func(a, b models.CandidateRoute) int { return cmp.Compare(a.Trial, b.Trial) })

	discarded := make(map[DiscardReason]int, len(c.discarded))
	for k, v := range c.discarded {
		discarded[k] = v
	}
	stats := BatchStats{Trials: c.trials, Accepted: len(out), Discarded: discarded}
	if c.err != nil {
		return nil, stats, c.err
	}
	return out, stats, nil
}

// SelectTiers ranks candidates by difficulty score (stable, so ties keep
// their order) and picks the first as EASY, index len/2 as NORMAL and the
// last as HARD. Fewer than three candidates is an insufficient outcome.
func SelectTiers(candidates []models.CandidateRoute) models.RecommendationResult {
	if len(candidates) < 3 {
		return models.RecommendationResult{Insufficient: true, Count: len(candidates)}
	}

	ranked := slices.Clone(candidates)
	slices.SortStableFunc(ranked, func(a, b models.CandidateRoute) int {
		return cmp.Compare(a.Metrics.DifficultyScore, b.Metrics.DifficultyScore)
	})

	return models.RecommendationResult{
		Count: len(ranked),
		Selections: map[models.Tier]models.CandidateRoute{
			models.TierEasy:   ranked[0],
			models.TierNormal: ranked[len(ranked)/2],
			models.TierHard:   ranked[len(ranked)-1],
		},
	}
}
