package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/travel-checker/internal/planner"
)

var (
	// ErrNotFound is returned when no run has been recorded in the requested window.
	ErrNotFound = errors.New("no best-day runs recorded")
)

// MemoryStore is a concurrency-safe in-memory history of best-day runs.
type MemoryStore struct {
	mu sync.RWMutex

	// ordered by StartedAt ascending
	runs []planner.Run

	// retention configuration
	maxHistory int           // max number of runs kept
	maxAge     time.Duration // optional max age for runs

	now func() time.Time
}

var _ planner.RunStore = (*MemoryStore)(nil)

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// SaveRun appends a run and enforces retention.
func (s *MemoryStore) SaveRun(run planner.Run) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs = append(s.runs, run)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(s.runs) > s.maxHistory {
		over := len(s.runs) - s.maxHistory
		s.runs = s.runs[over:]
	}

	// Enforce retention by age; the newest run is always kept.
	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.runs)-1; i++ {
			if !s.runs[i].StartedAt.Before(cutoff) {
				break
			}
		}
		if i > 0 {
			s.runs = s.runs[i:]
		}
	}
}

// Latest returns the most recent run.
func (s *MemoryStore) Latest() (planner.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.runs) == 0 {
		return planner.Run{}, ErrNotFound
	}
	return s.runs[len(s.runs)-1], nil
}

// Range returns all runs started between from and to (inclusive).
func (s *MemoryStore) Range(from, to time.Time) ([]planner.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []planner.Run
	for _, run := range s.runs {
		if !run.StartedAt.Before(from) && !run.StartedAt.After(to) {
			result = append(result, run)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}

	return result, nil
}
