package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/autoprestige/autoprestige/internal/api"
	"github.com/autoprestige/autoprestige/internal/database"
	"github.com/autoprestige/autoprestige/internal/database/repository"
)

// ValuationService prices single vehicles and records every result.
type ValuationService struct {
	History *repository.HistoryRepo
	Pricer  Pricer
	Log     zerolog.Logger
	Now     func() time.Time
}

// Predict prices in and appends it to the history.
func (s *ValuationService) Predict(ctx context.Context, in api.ValuationInput) (float64, error) {
	if strings.TrimSpace(in.Manufacturer) == "" || strings.TrimSpace(in.Model) == "" {
		return 0, fmt.Errorf("%w: manufacturer and model are required", ErrInvalidInput)
	}
	price := s.Pricer.Estimate(in)
	id, err := s.History.Insert(ctx, toValuation(in, price, now(s.Now)))
	if err != nil {
		return 0, fmt.Errorf("record valuation: %w", err)
	}
	s.Log.Info().Int64("id", id).Str("manufacturer", in.Manufacturer).
		Str("model", in.Model).Float64("price", price).Msg("valuation recorded")
	return price, nil
}

// List returns every recorded valuation, newest first.
func (s *ValuationService) List(ctx context.Context) ([]api.HistoryRecord, error) {
	all, err := s.History.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	out := make([]api.HistoryRecord, 0, len(all))
	for _, v := range all {
		out = append(out, toRecord(v))
	}
	return out, nil
}

func now(fn func() time.Time) time.Time {
	if fn == nil {
		return database.Now()
	}
	return fn().UTC()
}
