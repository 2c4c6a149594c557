// Package money converts USD amounts into the display currencies and formats
// them with each currency's locale rules.
package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/autoprestige/autoprestige/internal/refdata"
)

const nbsp = "\u00a0"

// symbol placement per locale; anything not listed uses a leading symbol.
var trailingSymbol = map[string]bool{
	"vi-VN": true,
	"de-DE": true,
}

func currency(code string) refdata.Currency {
	if c, ok := refdata.LookupCurrency(code); ok {
		return c
	}
	c, _ := refdata.LookupCurrency("USD")
	return c
}

// Convert applies the currency's USD rate. Unknown codes are treated as USD.
func Convert(usd float64, code string) float64 {
	return usd * currency(code).Rate
}

// Round converts and rounds half away from zero, the value written to exports.
func Round(usd float64, code string) int64 {
	return int64(math.Round(Convert(usd, code)))
}

// Format renders a USD amount in the given currency without fraction digits,
// e.g. "$12,000", "£9,480", "11.040 €" or "305.400.000 ₫".
func Format(usd float64, code string) string {
	c := currency(code)
	n := int64(math.Round(usd * c.Rate))
	neg := n < 0
	if neg {
		n = -n
	}
	p := message.NewPrinter(language.MustParse(c.Locale))
	digits := p.Sprintf("%d", n)

	var s string
	if trailingSymbol[c.Locale] {
		s = digits + nbsp + c.Symbol
	} else {
		s = c.Symbol + digits
	}
	if neg {
		s = "-" + s
	}
	return s
}

// Formatter binds a currency code for views that format many amounts.
type Formatter struct {
	Code string
}

func (f Formatter) Format(usd float64) string { return Format(usd, f.Code) }
