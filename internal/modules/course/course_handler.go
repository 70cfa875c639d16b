package course

import (
	"errors"
	"net/http"

	"cycle-course-recommender/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	msgInsufficient       = "not enough candidate routes"
	msgMissingCredentials = "provider API keys must be configured"
)

// Handler exposes the course service over HTTP.
type Handler struct {
	svc      ServiceInterface
	validate *validator.Validate
	logger   *zap.Logger
}

// NewHandler creates a course handler.
func NewHandler(svc ServiceInterface, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		svc:      svc,
		validate: validator.New(),
		logger:   logger,
	}
}

// RegisterRoutes mounts the recommendation routes on g.
// Order: run a recommendation, then look up what it stored.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	// 1) Sample, score and rank candidate courses
	g.POST("/recommend", h.Recommend)

	// 2) Stored results by recommendation ID and tier
	g.GET("/recommend/:id", h.GetRecommendation)
	g.GET("/recommend/:id/:tier", h.GetSelection)

	// 3) GPX download of one tier
	g.GET("/recommend/:id/:tier/gpx", h.ExportGPX)
}

// Recommend handles POST /recommend?lat=&lon=&target_km=[&out_and_back=].
// Missing credentials and insufficient candidates are 200 responses with a
// message, matching what clients of the service already expect. Any other
// service error, including a trial that panicked, is a 500.
func (h *Handler) Recommend(c echo.Context) error {
	// 1) Bind the query parameters.
	var req models.RecommendRequest
	err := echo.QueryParamsBinder(c).
		MustFloat64("lat", &req.Lat).
		MustFloat64("lon", &req.Lon).
		MustFloat64("target_km", &req.TargetKm).
		Bool("out_and_back", &req.OutAndBack).
		BindError()
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "lat, lon and target_km are required numbers"})
	}
	// 2) Range-check coordinates and target distance.
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	// 3) Run the recommendation and map its errors.
	result, err := h.svc.Recommend(c.Request().Context(), req)
	if err != nil {
		var credErr *models.MissingCredentialsError
		switch {
		case errors.As(err, &credErr):
			return c.JSON(http.StatusOK, models.MissingCredentialsResponse{
				Message:      msgMissingCredentials,
				KakaoLoaded:  credErr.DirectionsLoaded,
				GoogleLoaded: credErr.ElevationLoaded,
			})
		case errors.Is(err, models.ErrInvalidRequest):
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: err.Error()})
		}
		h.logger.Error("Handler.Recommend", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "failed to recommend routes"})
	}

	// 4) Fewer than three candidates is still a 200.
	if result.Insufficient {
		return c.JSON(http.StatusOK, models.InsufficientCandidatesResponse{Message: msgInsufficient, Count: result.Count})
	}
	// 5) Respond with the three tiers.
	return c.JSON(http.StatusOK, toRecommendResponse(result))
}

// GetRecommendation returns a stored recommendation by ID.
func (h *Handler) GetRecommendation(c echo.Context) error {
	rec, err := h.svc.GetRecommendation(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.lookupError(c, err)
	}
	return c.JSON(http.StatusOK, toRecommendResponse(rec))
}

// GetSelection returns one tier of a stored recommendation.
func (h *Handler) GetSelection(c echo.Context) error {
	tier, err := models.ParseTier(c.Param("tier"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: err.Error()})
	}
	sel, err := h.svc.GetSelection(c.Request().Context(), c.Param("id"), tier)
	if err != nil {
		return h.lookupError(c, err)
	}
	return c.JSON(http.StatusOK, toPayload(sel))
}

// ExportGPX returns one tier of a stored recommendation as a GPX download.
func (h *Handler) ExportGPX(c echo.Context) error {
	id := c.Param("id")
	tier, err := models.ParseTier(c.Param("tier"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: err.Error()})
	}
	sel, err := h.svc.GetSelection(c.Request().Context(), id, tier)
	if err != nil {
		return h.lookupError(c, err)
	}
	body, err := BuildGPX(id, tier, sel)
	if err != nil {
		h.logger.Error("Handler.ExportGPX", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "failed to export gpx"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+id+"-"+string(tier)+`.gpx"`)
	return c.Blob(http.StatusOK, "application/gpx+xml", body)
}

// Health reports which providers are configured.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Health(c.Request().Context()))
}

func (h *Handler) lookupError(c echo.Context, err error) error {
	if errors.Is(err, models.ErrNotFound) {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "recommendation not found"})
	}
	h.logger.Error("recommendation lookup failed", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "failed to load recommendation"})
}

func toPayload(c models.CandidateRoute) models.CoursePayload {
	return models.CoursePayload{
		DistanceM:       c.DistanceMeters,
		TotalAscentM:    c.Metrics.TotalAscentM,
		MaxGradePercent: c.Metrics.MaxGradePercent,
		DifficultyScore: c.Metrics.DifficultyScore,
		Polyline:        c.Polyline,
		EncodedPolyline: EncodePolyline(c.Polyline),
	}
}

func toRecommendResponse(r models.RecommendationResult) models.RecommendResponse {
	return models.RecommendResponse{
		RecommendationID: r.ID,
		Easy:             toPayload(r.Selections[models.TierEasy]),
		Normal:           toPayload(r.Selections[models.TierNormal]),
		Hard:             toPayload(r.Selections[models.TierHard]),
		Trials:           r.Trials,
		Candidates:       r.Count,
	}
}
