package app

import (
	"fmt"
	"log"
	"net/http"

	"github.com/i474232898/travel-checker/internal/config"
	"github.com/i474232898/travel-checker/internal/flights"
	"github.com/i474232898/travel-checker/internal/planner"
	"github.com/i474232898/travel-checker/internal/weather"
	"github.com/i474232898/travel-checker/internal/weather/providers"
)

// NewPlanner wires the weather providers and the flight offer client
// enabled by cfg into a Planner.
func NewPlanner(cfg *config.AppConfig) (*planner.Planner, error) {
	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	var provs []weather.Provider
	if cfg.OpenWeatherAPIKey != "" {
		provs = append(provs, providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey, cfg.Timezone))
	}
	if cfg.WeatherAPIKey != "" {
		provs = append(provs, providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey, cfg.Timezone))
	}
	// Open-Meteo does not require an API key, but geocoding requires a Google API key.
	if cfg.GoogleGeocoderAPIKey != "" {
		geo := providers.NewGoogleGeocoder(cfg.GoogleGeocoderAPIKey)
		provs = append(provs, providers.NewOpenMeteoProvider(httpClient, geo, cfg.Timezone))
	}
	if len(provs) == 0 {
		return nil, fmt.Errorf("no weather provider configured; set OPENWEATHER_API_KEY, WEATHERAPI_API_KEY or GOOGLE_GEOCODER_API_KEY")
	}

	forecasts := weather.NewService(provs, cfg.Timezone)
	log.Printf("INFO: weather providers: %v", forecasts.Providers())

	if cfg.AmadeusClientID == "" || cfg.AmadeusClientSecret == "" {
		log.Printf("INFO: Amadeus credentials missing; every day will score without flights")
	}
	offers := flights.NewAmadeusClient(flights.AmadeusConfig{
		BaseURL:           cfg.AmadeusBaseURL,
		ClientID:          cfg.AmadeusClientID,
		ClientSecret:      cfg.AmadeusClientSecret,
		HTTPClient:        httpClient,
		RPS:               cfg.AmadeusRPS,
		Burst:             cfg.AmadeusBurst,
		Policy:            cfg.FlightPolicy,
		DepartureLocation: cfg.Timezone,
		ArrivalLocation:   cfg.DestinationTimezone,
	})

	return planner.New(forecasts, offers, cfg.Route, cfg.Timezone), nil
}
