// Package service is the stand-in backend's business layer: pricing and
// persisting valuations, batch ingest and the dashboard aggregate.
package service

import (
	"errors"
	"time"

	"github.com/autoprestige/autoprestige/internal/api"
	"github.com/autoprestige/autoprestige/internal/database/repository"
)

// ErrInvalidInput marks a valuation request missing its identifying fields.
var ErrInvalidInput = errors.New("invalid valuation input")

// TimestampLayout is the wire format of HistoryRecord.Timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// Pricer prices a vehicle in USD.
type Pricer interface {
	Estimate(in api.ValuationInput) float64
}

func toRecord(v repository.Valuation) api.HistoryRecord {
	return api.HistoryRecord{
		ID:             int(v.ID),
		Timestamp:      v.CreatedAt.UTC().Format(TimestampLayout),
		Manufacturer:   v.Manufacturer,
		Model:          v.Model,
		Year:           v.Year,
		Transmission:   v.Transmission,
		Mileage:        v.Mileage,
		FuelType:       v.FuelType,
		EngineSize:     v.EngineSize,
		PredictedPrice: v.PredictedPrice,
	}
}

func toValuation(in api.ValuationInput, price float64, at time.Time) repository.Valuation {
	return repository.Valuation{
		CreatedAt:      at,
		Manufacturer:   in.Manufacturer,
		Model:          in.Model,
		Year:           in.Year,
		Transmission:   in.Transmission,
		Mileage:        float64(in.Mileage),
		FuelType:       in.FuelType,
		Tax:            in.Tax,
		MPG:            in.MPG,
		EngineSize:     in.EngineSize,
		PredictedPrice: price,
	}
}
