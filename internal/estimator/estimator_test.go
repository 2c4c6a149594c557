package estimator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoprestige/autoprestige/internal/api"
)

func fixed() *Estimator {
	return &Estimator{Now: func() time.Time { return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC) }}
}

func fiesta() api.ValuationInput {
	return api.ValuationInput{
		Manufacturer: "Ford", Model: "Fiesta", Year: 2019, Transmission: "Manual",
		Mileage: 40000, FuelType: "Petrol", Tax: 145, MPG: 55.4, EngineSize: 1.0,
	}
}

func TestEstimateIsDeterministicAndRounded(t *testing.T) {
	e := fixed()
	a := e.Estimate(fiesta())
	require.Equal(t, a, e.Estimate(fiesta()))
	require.Greater(t, a, 0.0)
	require.Less(t, a, 22000.0)
	require.Equal(t, a, math.Round(a*100)/100)
}

func TestEstimateAdjustments(t *testing.T) {
	e := fixed()
	base := e.Estimate(fiesta())

	newer := fiesta()
	newer.Year = 2024
	assert.Greater(t, e.Estimate(newer), base)

	future := fiesta()
	future.Year = 2030
	current := fiesta()
	current.Year = 2026
	assert.Equal(t, e.Estimate(current), e.Estimate(future), "future years do not appreciate")

	worn := fiesta()
	worn.Mileage = 150000
	assert.Less(t, e.Estimate(worn), base)

	auto := fiesta()
	auto.Transmission = "Automatic"
	assert.Greater(t, e.Estimate(auto), base)

	ev := fiesta()
	ev.FuelType = "Electric"
	assert.Greater(t, e.Estimate(ev), base)

	big := fiesta()
	big.EngineSize = 3.0
	assert.Greater(t, e.Estimate(big), base)
}

func TestEstimateBrandsAndLenientNames(t *testing.T) {
	e := fixed()
	x5 := fiesta()
	x5.Manufacturer, x5.Model = "BMW", "X5"
	assert.Greater(t, e.Estimate(x5), e.Estimate(fiesta()))

	sloppy := fiesta()
	sloppy.Manufacturer, sloppy.Model = "ford", "fiesta"
	assert.Equal(t, e.Estimate(fiesta()), e.Estimate(sloppy))

	unknown := fiesta()
	unknown.Manufacturer, unknown.Model = "Zastava", "Yugo"
	assert.Greater(t, e.Estimate(unknown), 0.0)
}

func TestEstimateNeverNegative(t *testing.T) {
	e := fixed()
	in := fiesta()
	in.Year, in.Mileage, in.EngineSize = 1950, 10_000_000, -4
	assert.GreaterOrEqual(t, e.Estimate(in), 0.0)
}
