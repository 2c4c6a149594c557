// Package testdata generates plausible sample valuations.
package testdata

import (
	"math"
	"math/rand"
	"time"

	"github.com/autoprestige/autoprestige/internal/api"
	"github.com/autoprestige/autoprestige/internal/database/repository"
	"github.com/autoprestige/autoprestige/internal/refdata"
)

// Pricer prices a vehicle in USD.
type Pricer interface {
	Estimate(in api.ValuationInput) float64
}

// Vehicles draws n random vehicles from the catalogue. The same rng seed
// yields the same fleet.
func Vehicles(rng *rand.Rand, n int, now time.Time) []api.ValuationInput {
	brands := refdata.Manufacturers()
	out := make([]api.ValuationInput, 0, n)
	for i := 0; i < n; i++ {
		brand := brands[rng.Intn(len(brands))]
		models := refdata.Models(brand)
		age := rng.Intn(10)
		out = append(out, api.ValuationInput{
			Manufacturer: brand,
			Model:        models[rng.Intn(len(models))],
			Year:         now.Year() - age,
			Transmission: refdata.Transmissions[rng.Intn(len(refdata.Transmissions))],
			Mileage:      age*9000 + rng.Intn(12000),
			FuelType:     refdata.FuelTypes[rng.Intn(len(refdata.FuelTypes)-1)],
			Tax:          float64(20 + rng.Intn(14)*10),
			MPG:          math.Round((35+rng.Float64()*30)*10) / 10,
			EngineSize:   float64(10+rng.Intn(21)) / 10,
		})
	}
	return out
}

// Valuations prices inputs and spaces them an hour apart, the last one at now.
func Valuations(p Pricer, inputs []api.ValuationInput, now time.Time) []repository.Valuation {
	out := make([]repository.Valuation, 0, len(inputs))
	start := now.UTC().Truncate(time.Second).Add(-time.Duration(len(inputs)-1) * time.Hour)
	for i, in := range inputs {
		out = append(out, repository.Valuation{
			CreatedAt:      start.Add(time.Duration(i) * time.Hour),
			Manufacturer:   in.Manufacturer,
			Model:          in.Model,
			Year:           in.Year,
			Transmission:   in.Transmission,
			Mileage:        float64(in.Mileage),
			FuelType:       in.FuelType,
			Tax:            in.Tax,
			MPG:            in.MPG,
			EngineSize:     in.EngineSize,
			PredictedPrice: p.Estimate(in),
		})
	}
	return out
}
