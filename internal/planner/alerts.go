package planner

import "fmt"

const (
	heavySnowInches    = 6.0
	expensiveFlightUSD = 500.0
)

// Alerts lists warnings worth showing next to the best day: heavy snow
// anywhere in the origin forecast and an expensive best-day flight.
func Alerts(r Route, res *BestDayResult) []string {
	alerts := make([]string, 0, 2)

	maxSnow := 0.0
	for _, d := range res.OriginForecast {
		maxSnow = max(maxSnow, d.Snow)
	}
	if maxSnow > heavySnowInches {
		alerts = append(alerts, fmt.Sprintf("Severe Weather Alert: Heavy snowfall expected in %s!", r.OriginCity))
	}

	if price, ok := res.BestDay.FlightPrice.Amount(); ok && price > expensiveFlightUSD {
		alerts = append(alerts, fmt.Sprintf("Expensive Flight Alert: Flights cost more than $%.0f!", expensiveFlightUSD))
	}

	return alerts
}
