package planner

import (
	"math"
	"testing"

	"github.com/i474232898/travel-checker/internal/weather"
)

// mild origin weather earns no cold or snow points.
var mild = weather.DayWeather{Temp: 60, Condition: weather.ConditionClear}

// awful destination weather earns no destination points.
var awful = weather.DayWeather{Temp: 20, Condition: weather.ConditionSnow}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestFlightPoints(t *testing.T) {
	tests := []struct {
		name string
		fare Fare
		want float64
	}{
		{"ideal", FareOf(150), 40},
		{"cheaper than ideal", FareOf(89), 40},
		{"ceiling", FareOf(300), 0},
		{"above ceiling", FareOf(650), 0},
		{"midpoint", FareOf(225), 20},
		{"no flight", NoFare, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, b := Score(DefaultWeights(), tt.fare, awful, mild, false)
			if !almostEqual(b.FlightPoints, tt.want) || !almostEqual(total, tt.want) {
				t.Fatalf("expected %v flight points, got breakdown %v total %v", tt.want, b.FlightPoints, total)
			}
		})
	}
}

func TestColdPoints(t *testing.T) {
	tests := []struct {
		name   string
		origin weather.DayWeather
		want   float64
	}{
		{"warm", weather.DayWeather{Temp: 60}, 0},
		{"at ceiling", weather.DayWeather{Temp: 50, WindSpeed: 2}, 0},
		{"zero", weather.DayWeather{Temp: 0, WindSpeed: 1}, 15},
		{"below zero", weather.DayWeather{Temp: -12}, 15},
		{"halfway", weather.DayWeather{Temp: 25}, 7.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, b := Score(DefaultWeights(), NoFare, awful, tt.origin, false)
			if !almostEqual(b.ColdPoints, tt.want) {
				t.Fatalf("expected %v cold points, got %v", tt.want, b.ColdPoints)
			}
		})
	}
}

func TestColdPointsUseWindchill(t *testing.T) {
	origin := weather.DayWeather{Temp: 30, WindSpeed: 20}
	_, b := Score(DefaultWeights(), NoFare, awful, origin, false)
	want := (50 - weather.Windchill(30, 20)) / 50 * 15
	if !almostEqual(b.ColdPoints, want) {
		t.Fatalf("expected %v cold points, got %v", want, b.ColdPoints)
	}
}

func TestDestinationPoints(t *testing.T) {
	tests := []struct {
		name string
		dest weather.DayWeather
		want float64
	}{
		{"ideal and clear", weather.DayWeather{Temp: 75, Condition: weather.ConditionClear}, 15},
		{"too hot", weather.DayWeather{Temp: 100, Condition: weather.ConditionClear}, 0},
		{"ideal but cloudy", weather.DayWeather{Temp: 75, Condition: weather.ConditionClouds}, 7.5},
		{"cool and clear", weather.DayWeather{Temp: 65, Condition: weather.ConditionClear}, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, b := Score(DefaultWeights(), NoFare, tt.dest, mild, false)
			if !almostEqual(b.VegasPoints, tt.want) {
				t.Fatalf("expected %v destination points, got %v", tt.want, b.VegasPoints)
			}
		})
	}
}

func TestSnowPoints(t *testing.T) {
	tests := []struct {
		snow      float64
		wantSnow  float64
		wantExtra float64
	}{
		{4, 20, 2},
		{9, 20, 2},
		{2, 10, 2},
		{1, 5, 2},
		{0.5, 2.5, 0},
		{0, 0, 0},
	}

	for _, tt := range tests {
		origin := weather.DayWeather{Temp: 60, Snow: tt.snow}
		_, b := Score(DefaultWeights(), NoFare, awful, origin, false)
		if !almostEqual(b.SnowPoints, tt.wantSnow) || b.ExtraSnowPoints != tt.wantExtra {
			t.Fatalf("snow %v: expected %v+%v, got %v+%v", tt.snow, tt.wantSnow, tt.wantExtra, b.SnowPoints, b.ExtraSnowPoints)
		}
	}
}

func TestSevereBonus(t *testing.T) {
	_, b := Score(DefaultWeights(), NoFare, awful, mild, true)
	if b.SevereBonus != 10 {
		t.Fatalf("expected severe bonus 10, got %v", b.SevereBonus)
	}
	_, b = Score(DefaultWeights(), NoFare, awful, mild, false)
	if b.SevereBonus != 0 {
		t.Fatalf("expected no severe bonus, got %v", b.SevereBonus)
	}
}

func TestScoreWeightsApplyToTotalOnly(t *testing.T) {
	w := Weights{Flight: 2, Cold: 0, Destination: 0.5, Snow: 3, BeforeSevere: 0}
	origin := weather.DayWeather{Temp: 0, Snow: 2}
	dest := weather.DayWeather{Temp: 75, Condition: weather.ConditionClear}

	total, b := Score(w, FareOf(150), dest, origin, true)

	want := 40*2.0 + 15*0 + 15*0.5 + (10+2)*3.0 + 10*0
	if !almostEqual(total, want) {
		t.Fatalf("expected total %v, got %v", want, total)
	}
	if b.FlightPoints != 40 || b.ColdPoints != 15 || b.VegasPoints != 15 || b.SevereBonus != 10 {
		t.Fatalf("expected unweighted breakdown, got %+v", b)
	}
}

func TestScoreBreakdownSumsWithDefaultWeights(t *testing.T) {
	origin := weather.DayWeather{Temp: 18, WindSpeed: 12, Snow: 3}
	dest := weather.DayWeather{Temp: 70, Condition: weather.ConditionClouds}

	total, b := Score(DefaultWeights(), FareOf(199), dest, origin, true)
	sum := b.FlightPoints + b.ColdPoints + b.VegasPoints + b.SnowPoints + b.ExtraSnowPoints + b.SevereBonus
	if !almostEqual(total, sum) {
		t.Fatalf("expected breakdown to sum to %v, got %v", total, sum)
	}
	if total < 0 || total > 102 {
		t.Fatalf("total %v outside the possible range", total)
	}
}
