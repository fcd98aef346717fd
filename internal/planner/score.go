package planner

import (
	"math"

	"github.com/i474232898/travel-checker/internal/weather"
)

const (
	idealFlightPrice   = 150.0
	maxFlightPrice     = 300.0
	maxFlightPoints    = 40.0
	maxColdPoints      = 15.0
	coldCeilingF       = 50.0
	maxClearPoints     = 15.0
	idealDestTempF     = 75.0
	destTempToleranceF = 25.0
	maxSnowInches      = 4.0
	maxSnowPoints      = 20.0
	extraSnowInches    = 1.0
	extraSnowPoints    = 2.0
	beforeSevereBonus  = 10.0
)

// ScoreBreakdown holds each component's points before weighting, so it only
// sums to the total when every weight is 1.
type ScoreBreakdown struct {
	FlightPoints    float64 `json:"flightPoints"`
	ColdPoints      float64 `json:"coldPoints"`
	VegasPoints     float64 `json:"vegasPoints"`
	SnowPoints      float64 `json:"snowPoints"`
	ExtraSnowPoints float64 `json:"extraSnowPoints"`
	SevereBonus     float64 `json:"severeBonus"`
}

// Score rates leaving on a day given the cheapest fare, both cities' weather
// for that day and whether the day precedes the first severe origin day.
func Score(w Weights, fare Fare, dest, origin weather.DayWeather, beforeSevere bool) (float64, ScoreBreakdown) {
	var (
		b     ScoreBreakdown
		total float64
	)

	if price, ok := fare.Amount(); ok {
		b.FlightPoints = flightPoints(price)
		total += b.FlightPoints * w.Flight
	}

	b.ColdPoints = coldPoints(origin.Windchill())
	total += b.ColdPoints * w.Cold

	b.VegasPoints = destinationPoints(dest)
	total += b.VegasPoints * w.Destination

	b.SnowPoints = math.Min(origin.Snow/maxSnowInches, 1) * maxSnowPoints
	total += b.SnowPoints * w.Snow

	if origin.Snow >= extraSnowInches {
		b.ExtraSnowPoints = extraSnowPoints
	}
	total += b.ExtraSnowPoints * w.Snow

	if beforeSevere {
		b.SevereBonus = beforeSevereBonus
		total += b.SevereBonus * w.BeforeSevere
	}

	return total, b
}

func flightPoints(price float64) float64 {
	switch {
	case price <= idealFlightPrice:
		return maxFlightPoints
	case price >= maxFlightPrice:
		return 0
	default:
		return (maxFlightPrice - price) / (maxFlightPrice - idealFlightPrice) * maxFlightPoints
	}
}

func coldPoints(windchill float64) float64 {
	switch {
	case windchill <= 0:
		return maxColdPoints
	case windchill < coldCeilingF:
		return (coldCeilingF - windchill) / coldCeilingF * maxColdPoints
	default:
		return 0
	}
}

func destinationPoints(d weather.DayWeather) float64 {
	clearRatio := 0.5
	if d.Condition == weather.ConditionClear {
		clearRatio = 1
	}
	tempRatio := 1 - math.Min(math.Abs(d.Temp-idealDestTempF)/destTempToleranceF, 1)
	return maxClearPoints * clearRatio * tempRatio
}
