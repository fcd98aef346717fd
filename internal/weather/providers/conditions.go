package providers

import (
	"github.com/i474232898/travel-checker/internal/common"
	"github.com/i474232898/travel-checker/internal/weather"
)

// conditionIcons maps normalized conditions to OpenWeatherMap icon codes so
// every provider's days can be rendered with the same icon set.
var conditionIcons = map[string]string{
	weather.ConditionClear:        "01d",
	weather.ConditionClouds:       "03d",
	weather.ConditionRain:         "10d",
	weather.ConditionSnow:         "13d",
	weather.ConditionThunderstorm: "11d",
	weather.ConditionMist:         "50d",
}

func iconFor(condition string) string {
	if icon, ok := conditionIcons[condition]; ok {
		return icon
	}
	return "03d"
}

// conditionFromText normalizes a free-form condition description.
func conditionFromText(text string) string {
	switch {
	case text == "":
		return weather.ConditionUnknown
	case common.HasAny(text, "thunder", "storm"):
		return weather.ConditionThunderstorm
	case common.HasAny(text, "snow", "sleet", "blizzard", "ice pellets"):
		return weather.ConditionSnow
	case common.HasAny(text, "rain", "shower", "drizzle"):
		return weather.ConditionRain
	case common.HasAny(text, "mist", "fog"):
		return weather.ConditionMist
	case common.HasAny(text, "cloud", "overcast"):
		return weather.ConditionClouds
	case common.HasAny(text, "sunny", "clear"):
		return weather.ConditionClear
	default:
		return weather.ConditionUnknown
	}
}

// conditionFromWMO maps Open-Meteo (WMO) weather codes, simplified.
func conditionFromWMO(code int) string {
	switch {
	case code == 0:
		return weather.ConditionClear
	case code >= 1 && code <= 3:
		return weather.ConditionClouds
	case code == 45 || code == 48:
		return weather.ConditionMist
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return weather.ConditionRain
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return weather.ConditionSnow
	case code >= 95:
		return weather.ConditionThunderstorm
	default:
		return weather.ConditionUnknown
	}
}
