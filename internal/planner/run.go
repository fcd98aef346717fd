package planner

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Run records one evaluation of the window.
type Run struct {
	ID         string         `json:"id"`
	StartedAt  time.Time      `json:"startedAt"`
	DurationMs int64          `json:"durationMs"`
	Weights    Weights        `json:"weights"`
	Result     *BestDayResult `json:"result"`
}

// RunStore is the contract the in-memory store (and any future persistent store) must satisfy.
type RunStore interface {
	SaveRun(run Run)
	Latest() (Run, error)
	Range(from, to time.Time) ([]Run, error)
}

// Evaluate runs FindBestDay and wraps the result in a Run.
func (p *Planner) Evaluate(ctx context.Context, w Weights) (Run, error) {
	started := p.now().UTC()

	res, err := p.FindBestDay(ctx, w)
	if err != nil {
		return Run{}, err
	}

	return Run{
		ID:         uuid.NewString(),
		StartedAt:  started,
		DurationMs: p.now().UTC().Sub(started).Milliseconds(),
		Weights:    w,
		Result:     res,
	}, nil
}
