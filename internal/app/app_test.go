package app

import (
	"testing"
	"time"

	"github.com/i474232898/travel-checker/internal/config"
	"github.com/i474232898/travel-checker/internal/flights"
	"github.com/i474232898/travel-checker/internal/planner"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Route:               planner.Route{OriginCity: "Minneapolis", DestinationCity: "Las Vegas", OriginAirport: "MSP", DestinationAirport: "LAS"},
		Timezone:            time.UTC,
		DestinationTimezone: time.UTC,
		FlightPolicy:        flights.DefaultPolicy(),
		HTTPTimeout:         time.Second,
	}
}

func TestNewPlannerRequiresWeatherProvider(t *testing.T) {
	if _, err := NewPlanner(testConfig()); err == nil {
		t.Fatalf("expected error without any weather provider")
	}
}

func TestNewPlanner(t *testing.T) {
	cfg := testConfig()
	cfg.WeatherAPIKey = "key"

	p, err := NewPlanner(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Route() != cfg.Route {
		t.Fatalf("expected route %+v, got %+v", cfg.Route, p.Route())
	}
}
