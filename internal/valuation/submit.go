package valuation

import (
	"context"
	"time"

	"github.com/autoprestige/autoprestige/internal/api"
)

// Predictor is the part of the backend client a submission needs.
type Predictor interface {
	Predict(ctx context.Context, in api.ValuationInput) (float64, error)
}

// Submitter performs one submission: a fixed UX delay, then the request.
// It never retries.
type Submitter struct {
	Backend Predictor
	Delay   time.Duration
}

func (s Submitter) Submit(ctx context.Context, in api.ValuationInput) (float64, error) {
	if err := Sleep(ctx, s.Delay); err != nil {
		return 0, err
	}
	return s.Backend.Predict(ctx, in)
}

// Sleep waits d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
