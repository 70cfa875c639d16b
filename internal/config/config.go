package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderKakao  = "kakao"
	ProviderGoogle = "google"

	maxWorkers = 16
)

type Config struct {
	ServerPort   string `mapstructure:"SERVER_PORT"`
	ClientOrigin string `mapstructure:"CLIENT_ORIGIN"`
	JWTSecret    string `mapstructure:"JWT_SECRET"`
	LogLevel     string `mapstructure:"LOG_LEVEL"`

	// Provider credentials. Missing keys do not stop the server; the
	// recommend endpoint reports which ones are loaded instead.
	KakaoRESTKey          string `mapstructure:"KAKAO_REST_KEY"`
	GoogleElevationAPIKey string `mapstructure:"GOOGLE_ELEVATION_API_KEY"`
	GoogleMapsAPIKey      string `mapstructure:"GOOGLE_MAPS_API_KEY"`
	DirectionsProvider    string `mapstructure:"DIRECTIONS_PROVIDER"`

	RandomSamples         int           `mapstructure:"RANDOM_SAMPLES"`
	Tolerance             float64       `mapstructure:"TOLERANCE"`
	ElevationSamplePoints int           `mapstructure:"ELEVATION_SAMPLE_POINTS"`
	MinPolylinePoints     int           `mapstructure:"MIN_POLYLINE_POINTS"`
	Workers               int           `mapstructure:"WORKERS"`
	ProviderTimeout       time.Duration `mapstructure:"PROVIDER_TIMEOUT"`
	RequestTimeout        time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	ElevationQPS          float64       `mapstructure:"ELEVATION_QPS"`
	SelectionCapacity     int           `mapstructure:"SELECTION_CAPACITY"`

	// EnvFile is the .env file that was read, empty when none was found.
	EnvFile string `mapstructure:"-"`
}

// setDefaults registers every key so AutomaticEnv values reach Unmarshal
// even when no .env file exists.
func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("CLIENT_ORIGIN", "*")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("KAKAO_REST_KEY", "")
	v.SetDefault("GOOGLE_ELEVATION_API_KEY", "")
	v.SetDefault("GOOGLE_MAPS_API_KEY", "")
	v.SetDefault("DIRECTIONS_PROVIDER", ProviderKakao)

	v.SetDefault("RANDOM_SAMPLES", 80)
	v.SetDefault("TOLERANCE", 0.30)
	v.SetDefault("ELEVATION_SAMPLE_POINTS", 40)
	v.SetDefault("MIN_POLYLINE_POINTS", 5)
	v.SetDefault("WORKERS", 8)
	v.SetDefault("PROVIDER_TIMEOUT", "10s")
	v.SetDefault("REQUEST_TIMEOUT", "60s")
	v.SetDefault("ELEVATION_QPS", 10)
	v.SetDefault("SELECTION_CAPACITY", 256)
}

// LoadConfig reads path/.env (optional) and the environment. A missing file
// leaves cfg.EnvFile empty so the caller can log it.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read .env: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	cfg.EnvFile = v.ConfigFileUsed()
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.DirectionsProvider = strings.ToLower(strings.TrimSpace(c.DirectionsProvider))
	switch c.DirectionsProvider {
	case ProviderKakao, ProviderGoogle:
	default:
		return fmt.Errorf("config: DIRECTIONS_PROVIDER must be %q or %q, got %q", ProviderKakao, ProviderGoogle, c.DirectionsProvider)
	}

	c.Workers = min(max(c.Workers, 1), maxWorkers)

	if c.RandomSamples < 1 {
		return fmt.Errorf("config: RANDOM_SAMPLES must be positive, got %d", c.RandomSamples)
	}
	if c.Tolerance <= 0 || c.Tolerance >= 1 {
		return fmt.Errorf("config: TOLERANCE must be in (0,1), got %v", c.Tolerance)
	}
	if c.ElevationSamplePoints < 2 {
		return fmt.Errorf("config: ELEVATION_SAMPLE_POINTS must be at least 2, got %d", c.ElevationSamplePoints)
	}
	if c.MinPolylinePoints < 2 {
		c.MinPolylinePoints = 2
	}
	if c.SelectionCapacity < 1 {
		c.SelectionCapacity = 1
	}
	return nil
}

// DirectionsKey returns the credential for the configured routing provider.
func (c *Config) DirectionsKey() string {
	if c.DirectionsProvider == ProviderGoogle {
		return c.GoogleMapsAPIKey
	}
	return c.KakaoRESTKey
}
