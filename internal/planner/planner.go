package planner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/i474232898/travel-checker/internal/flights"
	"github.com/i474232898/travel-checker/internal/weather"
)

// CandidateDays is the number of departure dates evaluated, tomorrow first.
const CandidateDays = 7

// Route is the fixed trip being planned: leave the cold origin for the
// pleasant destination.
type Route struct {
	OriginCity         string `json:"originCity" validate:"required"`
	DestinationCity    string `json:"destinationCity" validate:"required"`
	OriginAirport      string `json:"originAirport" validate:"required,len=3,alpha"`
	DestinationAirport string `json:"destinationAirport" validate:"required,len=3,alpha"`
}

// ForecastSource returns today plus the next seven days for a city.
type ForecastSource interface {
	Forecast(ctx context.Context, city string) (weather.Forecast, error)
}

// OfferSource returns qualifying one-way offers for an exact date, cheapest first.
type OfferSource interface {
	Offers(ctx context.Context, origin, destination string, date time.Time) ([]flights.FlightOffer, error)
}

// DayScore is the evaluation of one candidate departure date.
type DayScore struct {
	Date               time.Time             `json:"date"`
	Score              float64               `json:"score"`
	FlightPrice        Fare                  `json:"flightPrice"`
	FlightDetails      *flights.FlightOffer  `json:"flightDetails"`
	AlternativeFlights []flights.FlightOffer `json:"alternativeFlights"`
	Breakdown          ScoreBreakdown        `json:"breakdown"`
	BeforeSevere       bool                  `json:"beforeSevere"`
	FlightSearchURL    string                `json:"flightSearchUrl"`
}

// BestDayResult is the outcome of one evaluation of the window.
type BestDayResult struct {
	BestDay             DayScore         `json:"bestDay"`
	DayScores           []DayScore       `json:"dayScores"`
	OriginForecast      weather.Forecast `json:"originForecast"`
	DestinationForecast weather.Forecast `json:"destinationForecast"`
	Alerts              []string         `json:"alerts"`
}

// Planner picks the best departure day within the forecast window.
type Planner struct {
	forecasts ForecastSource
	offers    OfferSource
	route     Route
	loc       *time.Location
	now       func() time.Time
}

// New creates a Planner. loc defines calendar days; nil means UTC.
func New(forecasts ForecastSource, offers OfferSource, route Route, loc *time.Location) *Planner {
	if loc == nil {
		loc = time.UTC
	}
	return &Planner{
		forecasts: forecasts,
		offers:    offers,
		route:     route,
		loc:       loc,
		now:       time.Now,
	}
}

// Route returns the planned route.
func (p *Planner) Route() Route {
	return p.route
}

// FindBestDay scores each of the next CandidateDays departure dates and returns
// the highest scoring one; on ties the earliest date wins. Either city's
// forecast failing aborts the evaluation before any flight is looked up.
func (p *Planner) FindBestDay(ctx context.Context, w Weights) (*BestDayResult, error) {
	destForecast, err := p.forecast(ctx, p.route.DestinationCity)
	if err != nil {
		return nil, err
	}
	originForecast, err := p.forecast(ctx, p.route.OriginCity)
	if err != nil {
		return nil, err
	}

	destDays := destForecast.Future()[:CandidateDays]
	originDays := originForecast.Future()[:CandidateDays]

	severeDay, hasSevere := FirstSevereDay(originDays)
	if hasSevere {
		log.Printf("DEBUG: first severe day in %s is %d day(s) out", p.route.OriginCity, severeDay+1)
	}

	today := weather.Day(p.now().In(p.loc))
	scores := make([]DayScore, 0, CandidateDays)

	for i := 0; i < CandidateDays; i++ {
		date := today.AddDate(0, 0, i+1)

		offers, err := p.lookupOffers(ctx, date)
		if err != nil {
			return nil, err
		}

		fare := NoFare
		var chosen *flights.FlightOffer
		if len(offers) > 0 {
			cheapest := offers[0]
			chosen = &cheapest
			fare = FareOf(cheapest.Price)
		}
		alternatives := make([]flights.FlightOffer, 0, 2)
		if len(offers) > 1 {
			alternatives = append(alternatives, offers[1:min(len(offers), 3)]...)
		}

		beforeSevere := hasSevere && i < severeDay
		score, breakdown := Score(w, fare, destDays[i], originDays[i], beforeSevere)

		scores = append(scores, DayScore{
			Date:               date,
			Score:              score,
			FlightPrice:        fare,
			FlightDetails:      chosen,
			AlternativeFlights: alternatives,
			Breakdown:          breakdown,
			BeforeSevere:       beforeSevere,
			FlightSearchURL:    flightSearchURL(p.route, date),
		})
	}

	best, _ := PickBest(scores)

	result := &BestDayResult{
		BestDay:             best,
		DayScores:           scores,
		OriginForecast:      originForecast,
		DestinationForecast: destForecast,
	}
	result.Alerts = Alerts(p.route, result)
	return result, nil
}

// PickBest returns the first entry whose score strictly exceeds every earlier one.
func PickBest(scores []DayScore) (DayScore, bool) {
	if len(scores) == 0 {
		return DayScore{}, false
	}
	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}
	return best, true
}

func (p *Planner) forecast(ctx context.Context, city string) (weather.Forecast, error) {
	f, err := p.forecasts.Forecast(ctx, city)
	if err != nil {
		if errors.Is(err, weather.ErrUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w for %s: %v", weather.ErrUnavailable, city, err)
	}
	if len(f) < weather.ForecastDays {
		return nil, fmt.Errorf("%w for %s: got %d days, need %d", weather.ErrUnavailable, city, len(f), weather.ForecastDays)
	}
	return f, nil
}

// lookupOffers treats any lookup failure as a day without flights. Only a
// cancelled or expired context stops the evaluation.
func (p *Planner) lookupOffers(ctx context.Context, date time.Time) ([]flights.FlightOffer, error) {
	offers, err := p.offers.Offers(ctx, p.route.OriginAirport, p.route.DestinationAirport, date)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		log.Printf("ERROR: flight lookup failed for %s on %s: %v", p.route.OriginAirport, date.Format("2006-01-02"), err)
		return nil, nil
	}
	return offers, nil
}

func flightSearchURL(r Route, date time.Time) string {
	q := fmt.Sprintf("Flights from %s to %s on %s", r.OriginAirport, r.DestinationAirport, date.Format("2006-01-02"))
	return "https://www.google.com/travel/flights?q=" + url.QueryEscape(q)
}
