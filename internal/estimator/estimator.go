// Package estimator is the stand-in backend's pricing model: a deterministic
// heuristic over the ValuationInput fields, in USD.
package estimator

import (
	"math"
	"strings"
	"time"

	"github.com/autoprestige/autoprestige/internal/api"
	"github.com/autoprestige/autoprestige/internal/refdata"
)

const defaultBase = 20000

// new-car list price per manufacturer
var basePrice = map[string]float64{
	"Ford":          22000,
	"Volkswagen":    26000,
	"BMW":           42000,
	"Mercedes-Benz": 45000,
	"Audi":          40000,
	"Toyota":        25000,
	"Honda":         24000,
	"Hyundai":       20000,
	"Kia":           19000,
	"Skoda":         21000,
}

// models priced away from their brand's base
var modelFactor = map[string]float64{
	"Mustang": 1.6, "Kuga": 1.15, "Tiguan": 1.2, "Passat": 1.1,
	"5 Series": 1.3, "X3": 1.25, "X5": 1.6, "1 Series": 0.8,
	"E Class": 1.3, "GLC": 1.35, "A Class": 0.8,
	"Q5": 1.3, "Q3": 1.1, "A1": 0.7,
	"RAV4": 1.25, "Camry": 1.15, "Aygo": 0.6, "Yaris": 0.75,
	"CR-V": 1.3, "Jazz": 0.8,
	"Santa Fe": 1.5, "Tucson": 1.3, "i10": 0.65,
	"Sorento": 1.5, "Sportage": 1.3, "Picanto": 0.65,
	"Kodiaq": 1.4, "Superb": 1.3, "Fabia": 0.75,
}

var fuelFactor = map[string]float64{
	"diesel":   1.03,
	"hybrid":   1.10,
	"electric": 1.15,
	"other":    0.95,
}

var transmissionFactor = map[string]float64{
	"automatic": 1.07,
	"semi-auto": 1.05,
}

const (
	yearlyRetention = 0.88
	mileageSpan     = 200000
	minMileage      = 0.4
	engineStep      = 0.08
	minEngine       = 0.8
)

// Estimator prices vehicles against a reference year.
type Estimator struct {
	Now func() time.Time
}

func New() *Estimator { return &Estimator{Now: time.Now} }

// Estimate returns the USD price, floored at zero and rounded to cents.
// Unknown manufacturers use a generic base; names are matched leniently.
func (e *Estimator) Estimate(in api.ValuationInput) float64 {
	brand := in.Manufacturer
	if m, ok := refdata.MatchManufacturer(brand); ok {
		brand = m
	}
	base, ok := basePrice[brand]
	if !ok {
		base = defaultBase
	}
	model := in.Model
	if m, ok := refdata.MatchModel(brand, model); ok {
		model = m
	}
	price := base * factor(modelFactor, model, 1)

	age := e.refYear() - in.Year
	if age < 0 {
		age = 0
	}
	price *= math.Pow(yearlyRetention, float64(age))
	price *= math.Max(minMileage, 1-float64(max(in.Mileage, 0))/mileageSpan)
	price *= math.Max(minEngine, 1+engineStep*(in.EngineSize-1.5))
	price *= factor(fuelFactor, strings.ToLower(in.FuelType), 1)
	price *= factor(transmissionFactor, strings.ToLower(in.Transmission), 1)

	return math.Max(0, math.Round(price*100)/100)
}

func (e *Estimator) refYear() int {
	if e.Now == nil {
		return time.Now().Year()
	}
	return e.Now().Year()
}

func factor(m map[string]float64, k string, def float64) float64 {
	if f, ok := m[k]; ok {
		return f
	}
	return def
}
