package weather

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// Service orchestrates fetching daily forecasts from multiple providers.
type Service struct {
	providers []Provider
	// loc defines which calendar day is today.
	loc *time.Location
	now func() time.Time
}

// NewService creates a new Service. A nil loc means UTC.
func NewService(providers []Provider, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		providers: providers,
		loc:       loc,
		now:       time.Now,
	}
}

// Providers returns the names of the configured providers.
func (s *Service) Providers() []string {
	names := make([]string, 0, len(s.providers))
	for _, p := range s.providers {
		names = append(names, p.Name())
	}
	return names
}

// Forecast fetches the daily forecast for city from all providers concurrently,
// aggregates their entries per calendar day and returns exactly ForecastDays
// consecutive entries starting with today in the service location. Days before
// today are dropped. Any provider failure is logged and skipped; a missing day
// in the window yields ErrUnavailable.
func (s *Service) Forecast(ctx context.Context, city string) (Forecast, error) {
	log.Printf("DEBUG: Forecast called for %s with %d providers", city, len(s.providers))
	if len(s.providers) == 0 {
		log.Printf("ERROR: No providers available to fetch forecast for %s", city)
		return nil, fmt.Errorf("%w: no weather providers configured", ErrUnavailable)
	}

	var wg sync.WaitGroup
	// One slot per provider keeps aggregation order stable.
	results := make([][]DayWeather, len(s.providers))

	for i, p := range s.providers {
		wg.Add(1)
		go func(i int, p Provider) {
			defer wg.Done()

			days, err := p.FetchForecast(ctx, city)
			if err != nil {
				log.Printf("ERROR: provider %s forecast failed for %s: %v", p.Name(), city, err)
				return
			}
			if len(days) < ForecastDays {
				log.Printf("INFO: provider %s returned %d days for %s, need %d", p.Name(), len(days), city, ForecastDays)
				return
			}
			results[i] = days
		}(i, p)
	}

	wg.Wait()

	dayReadings := make(map[string][]DayWeather)
	for _, days := range results {
		for _, d := range days {
			k := d.Date.Format("2006-01-02")
			dayReadings[k] = append(dayReadings[k], d)
		}
	}

	if len(dayReadings) == 0 {
		log.Printf("ERROR: no successful forecast readings for %s", city)
		return nil, fmt.Errorf("%w for %s", ErrUnavailable, city)
	}

	today := Day(s.now().In(s.loc))
	forecast := make(Forecast, 0, ForecastDays)
	for i := 0; i < ForecastDays; i++ {
		k := today.AddDate(0, 0, i).Format("2006-01-02")
		readings, ok := dayReadings[k]
		if !ok {
			log.Printf("ERROR: forecast for %s has no readings for %s", city, k)
			return nil, fmt.Errorf("%w for %s: missing day %s", ErrUnavailable, city, k)
		}
		forecast = append(forecast, AggregateDays(readings))
	}

	return forecast, nil
}
