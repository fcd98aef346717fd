package planner

import "github.com/i474232898/travel-checker/internal/weather"

const (
	severeSnowInches = 4.0
	severeWindchillF = 0.0
)

// IsSevere reports whether the day brings at least 4 inches of snow or a
// windchill at or below 0°F.
func IsSevere(d weather.DayWeather) bool {
	return d.Snow >= severeSnowInches || d.Windchill() <= severeWindchillF
}

// FirstSevereDay returns the index of the first severe day in days, which
// holds future days only (index 0 is tomorrow).
func FirstSevereDay(days []weather.DayWeather) (int, bool) {
	for i, d := range days {
		if IsSevere(d) {
			return i, true
		}
	}
	return 0, false
}
