package weather

import (
	"time"
)

// ForecastDays is the number of daily entries a forecast must carry:
// today plus the next seven days.
const ForecastDays = 8

// Conditions are normalized to the OpenWeatherMap "main" vocabulary so
// that every provider produces values the scoring model understands.
const (
	ConditionClear        = "Clear"
	ConditionClouds       = "Clouds"
	ConditionRain         = "Rain"
	ConditionSnow         = "Snow"
	ConditionThunderstorm = "Thunderstorm"
	ConditionMist         = "Mist"
	ConditionUnknown      = "Unknown"
)

// DayWeather is one calendar day of forecast for one city.
// Temperatures are °F, snow and rain are inches, wind is mph.
type DayWeather struct {
	Date      time.Time `json:"date"`
	Temp      float64   `json:"temp"`
	Condition string    `json:"condition"`
	Snow      float64   `json:"snow"`
	Rain      float64   `json:"rain"`
	WindSpeed float64   `json:"wind_speed"`
	Icon      string    `json:"icon"`
}

// Windchill returns the effective temperature for the day.
func (d DayWeather) Windchill() float64 {
	return Windchill(d.Temp, d.WindSpeed)
}

// Forecast is an ordered list of daily entries, index 0 being today.
type Forecast []DayWeather

// Future returns the entries after today.
func (f Forecast) Future() []DayWeather {
	if len(f) <= 1 {
		return nil
	}
	return f[1:]
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
