package planner

import (
	"testing"

	"github.com/i474232898/travel-checker/internal/weather"
)

func TestIsSevere(t *testing.T) {
	tests := []struct {
		name string
		day  weather.DayWeather
		want bool
	}{
		{"heavy snow", weather.DayWeather{Temp: 30, Snow: 4}, true},
		{"light snow", weather.DayWeather{Temp: 30, Snow: 3.9}, false},
		{"zero windchill", weather.DayWeather{Temp: 0, WindSpeed: 1}, true},
		{"bitter wind", weather.DayWeather{Temp: 10, WindSpeed: 25}, true},
		{"cold but calm", weather.DayWeather{Temp: 10, WindSpeed: 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSevere(tt.day); got != tt.want {
				t.Fatalf("IsSevere(%+v) = %v, want %v", tt.day, got, tt.want)
			}
		})
	}
}

func TestFirstSevereDay(t *testing.T) {
	days := make([]weather.DayWeather, 7)
	for i := range days {
		days[i] = weather.DayWeather{Temp: 40}
	}

	if _, ok := FirstSevereDay(days); ok {
		t.Fatalf("expected no severe day")
	}

	days[2].Snow = 5
	days[5].Snow = 8
	idx, ok := FirstSevereDay(days)
	if !ok || idx != 2 {
		t.Fatalf("expected first severe day at index 2, got %d (%v)", idx, ok)
	}
}
