// Package refdata holds the static vehicle catalogue, currency table and UI
// copy shared by the client views and the stand-in backend.
package refdata

import "time"

var manufacturers = []string{
	"Ford", "Volkswagen", "BMW", "Mercedes-Benz", "Audi",
	"Toyota", "Honda", "Hyundai", "Kia", "Skoda",
}

var models = map[string][]string{
	"Ford":          {"Fiesta", "Focus", "Kuga", "Mustang", "Puma"},
	"Volkswagen":    {"Golf", "Polo", "Tiguan", "Passat", "T-Roc"},
	"BMW":           {"1 Series", "2 Series", "3 Series", "5 Series", "X3", "X5"},
	"Mercedes-Benz": {"A Class", "C Class", "E Class", "GLC", "GLA Class"},
	"Audi":          {"A1", "A3", "A4", "Q3", "Q5", "Q2"},
	"Toyota":        {"Yaris", "Corolla", "Camry", "RAV4", "Aygo"},
	"Honda":         {"Civic", "CR-V", "Jazz"},
	"Hyundai":       {"i10", "i20", "i30", "Tucson", "Santa Fe"},
	"Kia":           {"Picanto", "Rio", "Sportage", "Sorento"},
	"Skoda":         {"Fabia", "Octavia", "Superb", "Karoq", "Kodiaq"},
}

// FuelTypes lists the accepted fuel types in display order.
var FuelTypes = []string{"Petrol", "Diesel", "Hybrid", "Electric", "Other"}

// Transmissions lists the accepted gearbox types in display order.
var Transmissions = []string{"Manual", "Automatic", "Semi-Auto"}

// Manufacturers returns the supported makes in display order.
func Manufacturers() []string {
	out := make([]string, len(manufacturers))
	copy(out, manufacturers)
	return out
}

// Models returns the model list of a manufacturer, or nil when unknown.
func Models(manufacturer string) []string {
	list, ok := models[manufacturer]
	if !ok {
		return nil
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// FirstModel is the model a form falls back to after the manufacturer changes.
func FirstModel(manufacturer string) string {
	if list := models[manufacturer]; len(list) > 0 {
		return list[0]
	}
	return ""
}

func HasModel(manufacturer, model string) bool {
	for _, m := range models[manufacturer] {
		if m == model {
			return true
		}
	}
	return false
}

// Years counts down from next year over 55 model years.
func Years(now time.Time) []int {
	out := make([]int, 55)
	for i := range out {
		out[i] = now.Year() + 1 - i
	}
	return out
}

// Currency describes one display currency. Rate converts from USD.
type Currency struct {
	Code   string
	Rate   float64
	Symbol string
	Locale string
}

var currencies = []Currency{
	{Code: "USD", Rate: 1, Symbol: "$", Locale: "en-US"},
	{Code: "VND", Rate: 25450, Symbol: "₫", Locale: "vi-VN"},
	{Code: "EUR", Rate: 0.92, Symbol: "€", Locale: "de-DE"},
	{Code: "GBP", Rate: 0.79, Symbol: "£", Locale: "en-GB"},
}

// LookupCurrency finds a currency by its ISO code.
func LookupCurrency(code string) (Currency, bool) {
	for _, c := range currencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

func CurrencyCodes() []string {
	out := make([]string, 0, len(currencies))
	for _, c := range currencies {
		out = append(out, c.Code)
	}
	return out
}

// NextCurrency cycles through the currency table.
func NextCurrency(code string) string {
	for i, c := range currencies {
		if c.Code == code {
			return currencies[(i+1)%len(currencies)].Code
		}
	}
	return currencies[0].Code
}

// Tab identifies one top-level workflow view.
type Tab string

const (
	TabValuation Tab = "valuation"
	TabBatch     Tab = "batch"
	TabChat      Tab = "chat"
	TabAnalysis  Tab = "analysis"
	TabHistory   Tab = "history"
)

// Tabs is the navigation order.
var Tabs = []Tab{TabValuation, TabBatch, TabChat, TabAnalysis, TabHistory}
