package repository

import "time"

// Valuation is one persisted prediction.
type Valuation struct {
	ID             int64
	CreatedAt      time.Time
	Manufacturer   string
	Model          string
	Year           int
	Transmission   string
	Mileage        float64
	FuelType       string
	Tax            float64
	MPG            float64
	EngineSize     float64
	PredictedPrice float64
}

// BrandCount is the number of valuations recorded for one manufacturer.
type BrandCount struct {
	Manufacturer string
	Count        int
}

// Totals aggregates the whole history table.
type Totals struct {
	Count int
	Value float64
}
