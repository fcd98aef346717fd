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
	"github.com/kelvins/geocoder"
	"github.com/sony/gobreaker"
)

// Geocoder resolves a city name to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, city string) (lat, lon float64, err error)
}

// GoogleGeocoder resolves cities through the Google Geocoding API.
type GoogleGeocoder struct{}

// NewGoogleGeocoder configures the geocoding client with apiKey.
// The underlying client keeps the key in package state, so one key per process.
func NewGoogleGeocoder(apiKey string) GoogleGeocoder {
	geocoder.ApiKey = apiKey
	return GoogleGeocoder{}
}

func (GoogleGeocoder) Geocode(ctx context.Context, city string) (float64, float64, error) {
	type result struct {
		loc geocoder.Location
		err error
	}

	// The client has no context support; give up waiting when ctx is done.
	ch := make(chan result, 1)
	go func() {
		loc, err := geocoder.Geocoding(geocoder.Address{City: city})
		ch <- result{loc: loc, err: err}
	}()

	select {
	case <-ctx.Done():
		return 0, 0, ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return 0, 0, fmt.Errorf("geocode %q: %w", city, r.err)
		}
		if r.loc.Latitude == 0 && r.loc.Longitude == 0 {
			return 0, 0, fmt.Errorf("location %q not found", city)
		}
		return r.loc.Latitude, r.loc.Longitude, nil
	}
}

// OpenMeteoProvider implements weather.Provider for Open-Meteo.
type OpenMeteoProvider struct {
	name     string
	baseURL  string
	loc      *time.Location
	geocoder Geocoder
	client   *http.Client
	circuit  *gobreaker.CircuitBreaker
}

// NewOpenMeteoProvider creates the provider. Open-Meteo needs no API key but
// only accepts coordinates, hence the geocoder.
func NewOpenMeteoProvider(client *http.Client, geo Geocoder, loc *time.Location) *OpenMeteoProvider {
	if loc == nil {
		loc = time.UTC
	}
	return &OpenMeteoProvider{
		name:     "openmeteo",
		baseURL:  "https://api.open-meteo.com/v1/forecast",
		loc:      loc,
		geocoder: geo,
		client:   client,
		circuit:  common.NewBreaker("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) FetchForecast(ctx context.Context, city string) ([]weather.DayWeather, error) {
	if p.geocoder == nil {
		return nil, fmt.Errorf("openmeteo requires a geocoder")
	}
	lat, lon, err := p.geocoder.Geocode(ctx, city)
	if err != nil {
		return nil, err
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", lat))
		values.Set("longitude", fmt.Sprintf("%f", lon))
		values.Set("daily", "weather_code,temperature_2m_max,temperature_2m_min,snowfall_sum,rain_sum,wind_speed_10m_max")
		values.Set("temperature_unit", "fahrenheit")
		values.Set("wind_speed_unit", "mph")
		values.Set("precipitation_unit", "inch")
		values.Set("forecast_days", strconv.Itoa(weather.ForecastDays))
		values.Set("timezone", p.loc.String())

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := common.DoRequest(ctx, p.client, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Daily struct {
			Time        []string  `json:"time"`
			WeatherCode []int     `json:"weather_code"`
			TempMax     []float64 `json:"temperature_2m_max"`
			TempMin     []float64 `json:"temperature_2m_min"`
			Snowfall    []float64 `json:"snowfall_sum"`
			Rain        []float64 `json:"rain_sum"`
			WindMax     []float64 `json:"wind_speed_10m_max"`
		} `json:"daily"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	d := payload.Daily
	n := len(d.Time)
	if len(d.WeatherCode) != n || len(d.TempMax) != n || len(d.TempMin) != n ||
		len(d.Snowfall) != n || len(d.Rain) != n || len(d.WindMax) != n {
		return nil, fmt.Errorf("openmeteo: daily series have mismatched lengths")
	}

	days := make([]weather.DayWeather, 0, n)
	for i := 0; i < n; i++ {
		date, err := time.ParseInLocation("2006-01-02", d.Time[i], p.loc)
		if err != nil {
			return nil, fmt.Errorf("openmeteo: invalid forecast date %q: %w", d.Time[i], err)
		}

		cond := conditionFromWMO(d.WeatherCode[i])
		days = append(days, weather.DayWeather{
			Date:      date,
			Temp:      (d.TempMax[i] + d.TempMin[i]) / 2,
			Condition: cond,
			Snow:      d.Snowfall[i],
			Rain:      d.Rain[i],
			WindSpeed: d.WindMax[i],
			Icon:      iconFor(cond),
		})
	}

	return days, nil
}
