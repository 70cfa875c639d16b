package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv blanks every key so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SERVER_PORT", "CLIENT_ORIGIN", "JWT_SECRET", "LOG_LEVEL",
		"KAKAO_REST_KEY", "GOOGLE_ELEVATION_API_KEY", "GOOGLE_MAPS_API_KEY", "DIRECTIONS_PROVIDER",
		"RANDOM_SAMPLES", "TOLERANCE", "ELEVATION_SAMPLE_POINTS", "MIN_POLYLINE_POINTS",
		"WORKERS", "PROVIDER_TIMEOUT", "REQUEST_TIMEOUT", "ELEVATION_QPS", "SELECTION_CAPACITY",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	want := Config{
		ServerPort:            "8080",
		ClientOrigin:          "*",
		LogLevel:              "info",
		DirectionsProvider:    ProviderKakao,
		RandomSamples:         80,
		Tolerance:             0.30,
		ElevationSamplePoints: 40,
		MinPolylinePoints:     5,
		Workers:               8,
		ProviderTimeout:       10 * time.Second,
		RequestTimeout:        60 * time.Second,
		ElevationQPS:          10,
		SelectionCapacity:     256,
	}
	if *cfg != want {
		t.Errorf("LoadConfig = %+v; want %+v", *cfg, want)
	}
	if cfg.EnvFile != "" {
		t.Errorf("EnvFile = %q; want empty without a .env file", cfg.EnvFile)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("KAKAO_REST_KEY", "kakao-key")
	t.Setenv("TOLERANCE", "0.25")
	t.Setenv("WORKERS", "64")
	t.Setenv("PROVIDER_TIMEOUT", "3s")
	t.Setenv("DIRECTIONS_PROVIDER", "Google")
	t.Setenv("GOOGLE_MAPS_API_KEY", "maps-key")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.KakaoRESTKey != "kakao-key" || cfg.Tolerance != 0.25 || cfg.ProviderTimeout != 3*time.Second {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Workers != maxWorkers {
		t.Errorf("Workers = %d; want clamped to %d", cfg.Workers, maxWorkers)
	}
	if cfg.DirectionsProvider != ProviderGoogle || cfg.DirectionsKey() != "maps-key" {
		t.Errorf("provider = %q key %q; want google maps-key", cfg.DirectionsProvider, cfg.DirectionsKey())
	}
}

func TestLoadConfigDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	body := "SERVER_PORT=9090\nKAKAO_REST_KEY=from-file\nWORKERS=0\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if filepath.Base(cfg.EnvFile) != ".env" {
		t.Errorf("EnvFile = %q; want the .env file in %s", cfg.EnvFile, dir)
	}
	if cfg.ServerPort != "9090" || cfg.KakaoRESTKey != "from-file" {
		t.Errorf("LoadConfig = %+v; want values from .env", cfg)
	}
	if cfg.Workers != 1 {
		t.Errorf("Workers = %d; want clamped to 1", cfg.Workers)
	}
	if cfg.DirectionsKey() != "from-file" {
		t.Errorf("DirectionsKey() = %q; want from-file", cfg.DirectionsKey())
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"DIRECTIONS_PROVIDER", "osrm"},
		{"TOLERANCE", "1.5"},
		{"RANDOM_SAMPLES", "0"},
		{"ELEVATION_SAMPLE_POINTS", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := LoadConfig(t.TempDir()); err == nil {
				t.Errorf("LoadConfig with %s=%s succeeded; want error", tt.key, tt.value)
			}
		})
	}
}
