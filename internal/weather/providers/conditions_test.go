package providers

import (
	"testing"

	"github.com/i474232898/travel-checker/internal/weather"
)

func TestConditionFromText(t *testing.T) {
	tests := map[string]string{
		"Sunny":                    weather.ConditionClear,
		"Clear":                    weather.ConditionClear,
		"Partly cloudy":            weather.ConditionClouds,
		"Overcast":                 weather.ConditionClouds,
		"Moderate rain":            weather.ConditionRain,
		"Heavy snow":               weather.ConditionSnow,
		"Thundery outbreaks":       weather.ConditionThunderstorm,
		"Freezing fog":             weather.ConditionMist,
		"Light sleet showers":      weather.ConditionSnow,
		"Patchy rain with thunder": weather.ConditionThunderstorm,
		"":                         weather.ConditionUnknown,
	}

	for text, want := range tests {
		if got := conditionFromText(text); got != want {
			t.Fatalf("conditionFromText(%q) = %q, want %q", text, got, want)
		}
	}
}

func TestConditionFromWMO(t *testing.T) {
	tests := map[int]string{
		0:  weather.ConditionClear,
		2:  weather.ConditionClouds,
		45: weather.ConditionMist,
		61: weather.ConditionRain,
		81: weather.ConditionRain,
		75: weather.ConditionSnow,
		86: weather.ConditionSnow,
		95: weather.ConditionThunderstorm,
		42: weather.ConditionUnknown,
	}

	for code, want := range tests {
		if got := conditionFromWMO(code); got != want {
			t.Fatalf("conditionFromWMO(%d) = %q, want %q", code, got, want)
		}
	}
}

func TestIconFor(t *testing.T) {
	if got := iconFor(weather.ConditionSnow); got != "13d" {
		t.Fatalf("expected snow icon, got %q", got)
	}
	if got := iconFor(weather.ConditionUnknown); got != "03d" {
		t.Fatalf("expected fallback icon, got %q", got)
	}
}
