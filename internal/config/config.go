package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/travel-checker/internal/flights"
	"github.com/i474232898/travel-checker/internal/planner"
)

type AppConfig struct {
	OpenWeatherAPIKey    string
	WeatherAPIKey        string
	GoogleGeocoderAPIKey string

	AmadeusBaseURL      string
	AmadeusClientID     string
	AmadeusClientSecret string
	AmadeusRPS          float64 `validate:"gt=0"`
	AmadeusBurst        int     `validate:"gte=1"`

	Route planner.Route

	// Timezone defines calendar days and the origin airport's local time.
	Timezone *time.Location `validate:"required"`
	// DestinationTimezone is the destination airport's local time.
	DestinationTimezone *time.Location `validate:"required"`

	FlightPolicy          flights.Policy
	EarliestDepartureHour int `validate:"gte=0,lte=23"`

	Weights planner.Weights

	// HTTPTimeout bounds each outbound request, RequestTimeout one whole evaluation.
	HTTPTimeout    time.Duration `validate:"gt=0"`
	RequestTimeout time.Duration `validate:"gt=0"`

	// FetchInterval controls how often the scheduler evaluates the window (0 = disabled).
	FetchInterval  time.Duration `validate:"gte=0"`
	AlertThreshold float64       `validate:"gte=0"`

	// Run history backend and retention.
	StoreDriver     string        `validate:"oneof=memory sqlite"`
	StorePath       string        `validate:"required_if=StoreDriver sqlite"`
	StoreMaxHistory int           // max number of runs kept (0 = unlimited)
	StoreMaxAge     time.Duration // max age of runs (0 = unlimited)

	Port string `validate:"required,numeric"`
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.GoogleGeocoderAPIKey = os.Getenv("GOOGLE_GEOCODER_API_KEY")

	cfg.AmadeusBaseURL = getenvDefault("AMADEUS_BASE_URL", "https://api.amadeus.com")
	cfg.AmadeusClientID = os.Getenv("AMADEUS_CLIENT_ID")
	cfg.AmadeusClientSecret = os.Getenv("AMADEUS_CLIENT_SECRET")
	cfg.AmadeusRPS = getenvFloat("AMADEUS_RPS", 5)
	cfg.AmadeusBurst = getenvInt("AMADEUS_BURST", 1)

	cfg.Route = planner.Route{
		OriginCity:         getenvDefault("ORIGIN_CITY", "Minneapolis"),
		DestinationCity:    getenvDefault("DESTINATION_CITY", "Las Vegas"),
		OriginAirport:      strings.ToUpper(getenvDefault("ORIGIN_AIRPORT", "MSP")),
		DestinationAirport: strings.ToUpper(getenvDefault("DESTINATION_AIRPORT", "LAS")),
	}

	var err error
	if cfg.Timezone, err = time.LoadLocation(getenvDefault("TIMEZONE", "America/Chicago")); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	if cfg.DestinationTimezone, err = time.LoadLocation(getenvDefault("DESTINATION_TIMEZONE", "America/Los_Angeles")); err != nil {
		return nil, fmt.Errorf("invalid DESTINATION_TIMEZONE: %w", err)
	}

	cfg.EarliestDepartureHour = getenvInt("EARLIEST_DEPARTURE_HOUR", 6)
	cfg.FlightPolicy = flights.Policy{
		NonStop:               true,
		EarliestDepartureHour: cfg.EarliestDepartureHour,
		AllowedCarriers:       getenvList("ALLOWED_CARRIERS", flights.DefaultCarriers),
	}

	weights, err := loadWeights()
	if err != nil {
		return nil, err
	}
	cfg.Weights = weights

	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = getenvDuration("REQUEST_TIMEOUT", "90s"); err != nil {
		return nil, err
	}
	// Scheduler interval: default 6 hours, each run costs seven flight searches.
	if cfg.FetchInterval, err = getenvDuration("FETCH_INTERVAL", "6h"); err != nil {
		return nil, err
	}
	cfg.AlertThreshold = getenvFloat("SCORE_ALERT_THRESHOLD", 60)

	// Store backend and retention.
	cfg.StoreDriver = strings.ToLower(getenvDefault("STORE_DRIVER", "memory"))
	cfg.StorePath = getenvDefault("STORE_PATH", "travel-checker.db")
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 28) // a week at 6-hour intervals
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", "168h"); err != nil {
		return nil, err
	}

	cfg.Port = getenvDefault("PORT", "8080")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadWeights starts from the defaults, overlays WEIGHTS_FILE when set and
// finally the individual *_WEIGHT variables.
func loadWeights() (planner.Weights, error) {
	w := planner.DefaultWeights()

	if path := os.Getenv("WEIGHTS_FILE"); path != "" {
		fw, err := planner.LoadWeightsFromFile(path, w)
		if err != nil {
			return w, err
		}
		w = fw
	}

	w.Flight = getenvFloat("FLIGHT_WEIGHT", w.Flight)
	w.Cold = getenvFloat("COLD_WEIGHT", w.Cold)
	w.Destination = getenvFloat("DESTINATION_WEIGHT", w.Destination)
	w.Snow = getenvFloat("SNOW_WEIGHT", w.Snow)
	w.BeforeSevere = getenvFloat("BEFORE_SEVERE_WEIGHT", w.BeforeSevere)

	if err := w.Validate(); err != nil {
		return w, fmt.Errorf("invalid weights: %w", err)
	}
	return w, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, strings.ToUpper(item))
		}
	}
	return out
}
