package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/i474232898/travel-checker/internal/planner"
)

func TestLoadDefaults(t *testing.T) {
	chdirForTest(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Route.OriginAirport != "MSP" || cfg.Route.DestinationAirport != "LAS" {
		t.Fatalf("unexpected route: %+v", cfg.Route)
	}
	if cfg.Weights != planner.DefaultWeights() {
		t.Fatalf("expected default weights, got %+v", cfg.Weights)
	}
	if cfg.FetchInterval != 6*time.Hour || cfg.RequestTimeout != 90*time.Second {
		t.Fatalf("unexpected durations: %v %v", cfg.FetchInterval, cfg.RequestTimeout)
	}
	if !cfg.FlightPolicy.NonStop || cfg.FlightPolicy.EarliestDepartureHour != 6 {
		t.Fatalf("unexpected flight policy: %+v", cfg.FlightPolicy)
	}
	if cfg.Port != "8080" {
		t.Fatalf("unexpected port %q", cfg.Port)
	}
}

func TestLoadOverrides(t *testing.T) {
	chdirForTest(t, t.TempDir())
	t.Setenv("ORIGIN_AIRPORT", "dlh")
	t.Setenv("ALLOWED_CARRIERS", " dl, sy ,")
	t.Setenv("EARLIEST_DEPARTURE_HOUR", "8")
	t.Setenv("FETCH_INTERVAL", "0s")
	t.Setenv("COLD_WEIGHT", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Route.OriginAirport != "DLH" {
		t.Fatalf("expected uppercased airport, got %q", cfg.Route.OriginAirport)
	}
	if got := cfg.FlightPolicy.AllowedCarriers; len(got) != 2 || got[0] != "DL" || got[1] != "SY" {
		t.Fatalf("unexpected carriers %v", got)
	}
	if cfg.FlightPolicy.EarliestDepartureHour != 8 || cfg.FetchInterval != 0 {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if cfg.Weights.Cold != 3 {
		t.Fatalf("expected cold weight 3, got %v", cfg.Weights.Cold)
	}
}

func TestLoadWeightsFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	chdirForTest(t, dir)
	path := filepath.Join(dir, "weights.json")
	if err := os.WriteFile(path, []byte(`{"flightWeight":4,"snowWeight":2}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("WEIGHTS_FILE", path)
	t.Setenv("SNOW_WEIGHT", "0.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Weights.Flight != 4 || cfg.Weights.Snow != 0.5 || cfg.Weights.Cold != 1 {
		t.Fatalf("unexpected weights %+v", cfg.Weights)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"TIMEZONE":                "Mars/Olympus",
		"FLIGHT_WEIGHT":           "11",
		"ORIGIN_AIRPORT":          "MSPX",
		"EARLIEST_DEPARTURE_HOUR": "24",
		"HTTP_TIMEOUT":            "soon",
		"PORT":                    "http",
		"STORE_DRIVER":            "postgres",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			chdirForTest(t, t.TempDir())
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

// chdirForTest mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore cwd: %v", err)
		}
	})
}
