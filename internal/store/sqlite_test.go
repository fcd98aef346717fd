package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/i474232898/travel-checker/internal/planner"
)

func newTestSQLiteStore(t *testing.T, maxHistory int, maxAge time.Duration) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "runs.db"), maxHistory, maxAge)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t, 0, 0)

	if _, err := s.Latest(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	run := runAt("a", 0)
	run.Weights = planner.DefaultWeights()
	run.Result = &planner.BestDayResult{BestDay: planner.DayScore{Score: 55, FlightPrice: planner.FareOf(180)}}
	s.SaveRun(run)

	got, err := s.Latest()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "a" || !got.StartedAt.Equal(run.StartedAt) || got.Weights != run.Weights {
		t.Fatalf("unexpected run %+v", got)
	}
	if price, ok := got.Result.BestDay.FlightPrice.Amount(); !ok || price != 180 {
		t.Fatalf("expected fare to survive storage, got %v", got.Result.BestDay.FlightPrice)
	}
}

func TestSQLiteStoreRetention(t *testing.T) {
	s := newTestSQLiteStore(t, 2, 6*time.Hour)
	s.now = func() time.Time { return base.Add(10 * time.Hour) }

	s.SaveRun(runAt("old", 0))
	s.SaveRun(runAt("recent", 5*time.Hour))
	s.SaveRun(runAt("newer", 8*time.Hour))
	s.SaveRun(runAt("newest", 9*time.Hour))

	runs, err := s.Range(base, base.Add(10*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "newer" || runs[1].ID != "newest" {
		t.Fatalf("expected newer and newest, got %+v", runs)
	}
}

func TestSQLiteStoreRangeInclusive(t *testing.T) {
	s := newTestSQLiteStore(t, 0, 0)
	s.SaveRun(runAt("a", 0))
	s.SaveRun(runAt("b", time.Hour))

	runs, err := s.Range(base.Add(time.Hour), base.Add(time.Hour))
	if err != nil || len(runs) != 1 || runs[0].ID != "b" {
		t.Fatalf("expected run b at the boundary, got %+v (%v)", runs, err)
	}
	if _, err := s.Range(base.Add(2*time.Hour), base.Add(3*time.Hour)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
