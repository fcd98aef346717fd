package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/i474232898/travel-checker/internal/common"
	"github.com/i474232898/travel-checker/internal/weather"
	"github.com/sony/gobreaker"
)

const mmPerInch = 25.4

// OpenWeatherProvider implements weather.Provider for OpenWeatherMap, resolving
// the city with the direct geocoding API and reading the One Call 3.0 daily forecast.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	loc     *time.Location
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, apiKey string, loc *time.Location) *OpenWeatherProvider {
	if loc == nil {
		loc = time.UTC
	}
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org",
		loc:     loc,
		client:  client,
		circuit: common.NewBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// Geocode resolves a city name to coordinates.
func (p *OpenWeatherProvider) Geocode(ctx context.Context, city string) (float64, float64, error) {
	if p.apiKey == "" {
		return 0, 0, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("q", city)
		values.Set("limit", "1")
		values.Set("appid", p.apiKey)

		u := fmt.Sprintf("%s/geo/1.0/direct?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := common.DoRequest(ctx, p.client, p.circuit, buildRequest)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()

	var places []struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return 0, 0, err
	}
	if len(places) == 0 {
		return 0, 0, fmt.Errorf("location %q not found", city)
	}
	return places[0].Lat, places[0].Lon, nil
}

func (p *OpenWeatherProvider) FetchForecast(ctx context.Context, city string) ([]weather.DayWeather, error) {
	lat, lon, err := p.Geocode(ctx, city)
	if err != nil {
		return nil, err
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("lat", fmt.Sprintf("%f", lat))
		values.Set("lon", fmt.Sprintf("%f", lon))
		values.Set("exclude", "hourly,minutely,current,alerts")
		values.Set("units", "imperial")
		values.Set("appid", p.apiKey)

		u := fmt.Sprintf("%s/data/3.0/onecall?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := common.DoRequest(ctx, p.client, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Daily []struct {
			Dt   int64 `json:"dt"`
			Temp struct {
				Day float64 `json:"day"`
			} `json:"temp"`
			WindSpeed float64 `json:"wind_speed"`
			// Precipitation volumes are millimetres regardless of units.
			Snow    float64 `json:"snow"`
			Rain    float64 `json:"rain"`
			Weather []struct {
				Main string `json:"main"`
				Icon string `json:"icon"`
			} `json:"weather"`
		} `json:"daily"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	daily := payload.Daily
	if len(daily) > weather.ForecastDays {
		daily = daily[:weather.ForecastDays]
	}

	days := make([]weather.DayWeather, 0, len(daily))
	for _, d := range daily {
		if len(d.Weather) == 0 {
			return nil, fmt.Errorf("openweather: daily entry %d has no weather conditions", d.Dt)
		}
		days = append(days, weather.DayWeather{
			Date:      weather.Day(time.Unix(d.Dt, 0).In(p.loc)),
			Temp:      d.Temp.Day,
			Condition: d.Weather[0].Main,
			Snow:      d.Snow / mmPerInch,
			Rain:      d.Rain / mmPerInch,
			WindSpeed: d.WindSpeed,
			Icon:      d.Weather[0].Icon,
		})
	}

	return days, nil
}
