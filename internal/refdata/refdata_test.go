package refdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFirstModelBelongsToManufacturer(t *testing.T) {
	for _, m := range Manufacturers() {
		first := FirstModel(m)
		require.NotEmpty(t, first, "manufacturer %s", m)
		require.True(t, HasModel(m, first), "manufacturer %s model %s", m, first)
		require.Equal(t, Models(m)[0], first)
	}
	require.Empty(t, FirstModel("Lada"))
	require.Nil(t, Models("Lada"))
}

func TestModelsReturnsCopy(t *testing.T) {
	list := Models("Ford")
	list[0] = "Escort"
	require.Equal(t, "Fiesta", FirstModel("Ford"))
}

func TestYears(t *testing.T) {
	years := Years(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC))
	require.Len(t, years, 55)
	require.Equal(t, 2027, years[0])
	require.Equal(t, 1973, years[54])
}

func TestCurrencyCycle(t *testing.T) {
	require.Equal(t, []string{"USD", "VND", "EUR", "GBP"}, CurrencyCodes())
	require.Equal(t, "VND", NextCurrency("USD"))
	require.Equal(t, "USD", NextCurrency("GBP"))
	require.Equal(t, "USD", NextCurrency("JPY"))

	c, ok := LookupCurrency("EUR")
	require.True(t, ok)
	require.Equal(t, 0.92, c.Rate)
	_, ok = LookupCurrency("JPY")
	require.False(t, ok)
}

func TestBundleFallsBackToVietnamese(t *testing.T) {
	require.Equal(t, "Định Giá", Bundle("fr").Nav[TabValuation])
	require.Equal(t, "Valuation", Bundle("en").Nav[TabValuation])
	require.Equal(t, "en", NextLanguage("vi"))
	require.Equal(t, "vi", NextLanguage("en"))
	for _, lang := range Languages {
		b := Bundle(lang)
		for _, tab := range Tabs {
			require.NotEmpty(t, b.Nav[tab], "lang %s tab %s", lang, tab)
		}
	}
}

func TestMatchManufacturer(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"ford", "Ford", true},
		{"  BMW ", "BMW", true},
		{"Mercedes", "Mercedes-Benz", true},
		{"Volkswagon", "Volkswagen", true},
		{"Tesla", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := MatchManufacturer(tc.in)
		require.Equal(t, tc.ok, ok, "input %q", tc.in)
		require.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestMatchModel(t *testing.T) {
	got, ok := MatchModel("Ford", "fiesta")
	require.True(t, ok)
	require.Equal(t, "Fiesta", got)

	got, ok = MatchModel("Skoda", "Octavai")
	require.True(t, ok)
	require.Equal(t, "Octavia", got)

	_, ok = MatchModel("Ford", "Golf")
	require.False(t, ok)
}

func TestFindManufacturer(t *testing.T) {
	m, rest, ok := FindManufacturer("What is a 2019 Ford Fiesta worth?")
	require.True(t, ok)
	require.Equal(t, "Ford", m)
	require.Equal(t, []string{"Fiesta", "worth"}, rest)

	_, _, ok = FindManufacturer("hello there")
	require.False(t, ok)
}
