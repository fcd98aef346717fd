package providers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newOpenWeatherServer(t *testing.T, daily string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/geo/1.0/direct", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "Minneapolis" {
			fmt.Fprint(w, `[]`)
			return
		}
		fmt.Fprint(w, `[{"lat":44.98,"lon":-93.27}]`)
	})
	mux.HandleFunc("/data/3.0/onecall", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("units") != "imperial" || q.Get("appid") != "key" {
			http.Error(w, "bad query", http.StatusBadRequest)
			return
		}
		fmt.Fprintf(w, `{"daily":%s}`, daily)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenWeatherFetchForecast(t *testing.T) {
	start := time.Date(2026, 1, 5, 18, 0, 0, 0, time.UTC).Unix()
	daily := "["
	for i := 0; i < 9; i++ {
		if i > 0 {
			daily += ","
		}
		daily += fmt.Sprintf(`{"dt":%d,"temp":{"day":%d},"wind_speed":12.5,"snow":25.4,"rain":0,"weather":[{"main":"Snow","icon":"13d"}]}`,
			start+int64(i)*86400, 10+i)
	}
	daily += "]"
	srv := newOpenWeatherServer(t, daily)

	p := NewOpenWeatherProvider(srv.Client(), "key", time.UTC)
	p.baseURL = srv.URL

	days, err := p.FetchForecast(context.Background(), "Minneapolis")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 8 {
		t.Fatalf("expected 8 days, got %d", len(days))
	}
	first := days[0]
	if first.Temp != 10 || first.WindSpeed != 12.5 || first.Condition != "Snow" || first.Icon != "13d" {
		t.Fatalf("unexpected first day: %+v", first)
	}
	if math.Abs(first.Snow-1) > 1e-9 {
		t.Fatalf("expected 25.4mm converted to 1 inch, got %v", first.Snow)
	}
	if first.Date.Hour() != 0 {
		t.Fatalf("expected date truncated to midnight, got %v", first.Date)
	}
}

func TestOpenWeatherUnknownCity(t *testing.T) {
	srv := newOpenWeatherServer(t, "[]")
	p := NewOpenWeatherProvider(srv.Client(), "key", time.UTC)
	p.baseURL = srv.URL

	if _, err := p.FetchForecast(context.Background(), "Atlantis"); err == nil {
		t.Fatalf("expected error for unknown city")
	}
}

func TestOpenWeatherMissingConditions(t *testing.T) {
	srv := newOpenWeatherServer(t, `[{"dt":1767636000,"temp":{"day":10},"weather":[]}]`)
	p := NewOpenWeatherProvider(srv.Client(), "key", time.UTC)
	p.baseURL = srv.URL

	if _, err := p.FetchForecast(context.Background(), "Minneapolis"); err == nil {
		t.Fatalf("expected error for entry without conditions")
	}
}

func TestOpenWeatherRequiresKey(t *testing.T) {
	p := NewOpenWeatherProvider(http.DefaultClient, "", time.UTC)
	if _, err := p.FetchForecast(context.Background(), "Minneapolis"); err == nil {
		t.Fatalf("expected error without api key")
	}
}
