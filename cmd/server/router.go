package main

import (
	"net/http"

	"cycle-course-recommender/internal/config"
	"cycle-course-recommender/internal/modules/course"
	"cycle-course-recommender/pkg/directions"
	"cycle-course-recommender/pkg/elevation"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

// newRouter mounts /health and the /ai group. The group requires a bearer
// token only when JWT_SECRET is set.
func newRouter(cfg *config.Config, h *course.Handler, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.ClientOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				logger.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	}))

	e.GET("/health", h.Health)

	ai := e.Group("/ai")
	if cfg.JWTSecret != "" {
		ai.Use(echojwt.WithConfig(echojwt.Config{SigningKey: []byte(cfg.JWTSecret)}))
	}
	h.RegisterRoutes(ai)
	return e
}

// buildProviders creates a provider only when its key is present. The
// returned interfaces are nil, not typed nils, when a key is missing.
// Each provider gets its own http.Client since the maps client wraps the
// transport of the client it is given.
func buildProviders(cfg *config.Config) (course.DirectionsProvider, course.ElevationProvider, error) {
	newHTTPClient := func() *http.Client { return &http.Client{Timeout: cfg.ProviderTimeout} }

	var dir course.DirectionsProvider
	if key := cfg.DirectionsKey(); key != "" {
		switch cfg.DirectionsProvider {
		case config.ProviderGoogle:
			mc, err := maps.NewClient(maps.WithAPIKey(key), maps.WithHTTPClient(newHTTPClient()))
			if err != nil {
				return nil, nil, err
			}
			dir = directions.NewGoogleClient(mc)
		default:
			dir = directions.NewKakaoClient(key, newHTTPClient())
		}
	}

	var elev course.ElevationProvider
	if cfg.GoogleElevationAPIKey != "" {
		mc, err := maps.NewClient(maps.WithAPIKey(cfg.GoogleElevationAPIKey), maps.WithHTTPClient(newHTTPClient()))
		if err != nil {
			return nil, nil, err
		}
		elev = elevation.NewGoogleClient(mc, cfg.ElevationQPS)
	}
	return dir, elev, nil
}
