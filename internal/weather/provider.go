package weather

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when a city cannot be resolved or no provider
// produced a complete forecast for it.
var ErrUnavailable = errors.New("failed to fetch weather data")

// Provider abstracts a daily forecast source (e.g. OpenWeatherMap, WeatherAPI, Open-Meteo).
// Implementations return days ordered by date, starting with today.
type Provider interface {
	Name() string
	FetchForecast(ctx context.Context, city string) ([]DayWeather, error)
}
