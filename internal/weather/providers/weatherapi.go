package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/i474232898/travel-checker/internal/common"
	"github.com/i474232898/travel-checker/internal/weather"
	"github.com/sony/gobreaker"
)

const cmPerInch = 2.54

// WeatherAPIProvider implements weather.Provider for WeatherAPI.com.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	loc     *time.Location
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIProvider(client *http.Client, apiKey string, loc *time.Location) *WeatherAPIProvider {
	if loc == nil {
		loc = time.UTC
	}
	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: "https://api.weatherapi.com/v1/forecast.json",
		loc:     loc,
		client:  client,
		circuit: common.NewBreaker("weatherapi"),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

func (p *WeatherAPIProvider) FetchForecast(ctx context.Context, city string) ([]weather.DayWeather, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("weatherapi api key is not configured")
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		// WeatherAPI uses "q" for location; it accepts a city name or "lat,lon".
		values.Set("q", city)
		values.Set("days", strconv.Itoa(weather.ForecastDays))
		values.Set("aqi", "no")
		values.Set("alerts", "no")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := common.DoRequest(ctx, p.client, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Forecast struct {
			ForecastDay []struct {
				Date string `json:"date"`
				Day  struct {
					AvgTempF      float64 `json:"avgtemp_f"`
					MaxWindMph    float64 `json:"maxwind_mph"`
					TotalPrecipIn float64 `json:"totalprecip_in"`
					TotalSnowCm   float64 `json:"totalsnow_cm"`
					Condition     struct {
						Text string `json:"text"`
					} `json:"condition"`
				} `json:"day"`
			} `json:"forecastday"`
		} `json:"forecast"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	days := make([]weather.DayWeather, 0, len(payload.Forecast.ForecastDay))
	for _, fd := range payload.Forecast.ForecastDay {
		date, err := time.ParseInLocation("2006-01-02", fd.Date, p.loc)
		if err != nil {
			return nil, fmt.Errorf("weatherapi: invalid forecast date %q: %w", fd.Date, err)
		}

		cond := conditionFromText(fd.Day.Condition.Text)
		days = append(days, weather.DayWeather{
			Date:      date,
			Temp:      fd.Day.AvgTempF,
			Condition: cond,
			Snow:      fd.Day.TotalSnowCm / cmPerInch,
			Rain:      fd.Day.TotalPrecipIn,
			WindSpeed: fd.Day.MaxWindMph,
			Icon:      iconFor(cond),
		})
	}

	return days, nil
}
