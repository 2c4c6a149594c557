package service

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoprestige/autoprestige/internal/api"
	"github.com/autoprestige/autoprestige/internal/database"
	"github.com/autoprestige/autoprestige/internal/database/repository"
	"github.com/autoprestige/autoprestige/internal/sheet"
)

// brandPricer prices by manufacturer so results are easy to assert.
type brandPricer map[string]float64

func (p brandPricer) Estimate(in api.ValuationInput) float64 { return p[in.Manufacturer] }

var prices = brandPricer{"Ford": 12000, "BMW": 40000, "Audi": 21000}

type fixture struct {
	valuations *ValuationService
	ingest     *IngestService
	dashboard  *DashboardService
	history    *repository.HistoryRepo
	clock      *time.Time
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "stub.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrations(db))

	clock := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }
	repo := repository.NewHistoryRepo(db)
	return fixture{
		valuations: &ValuationService{History: repo, Pricer: prices, Log: zerolog.Nop(), Now: now},
		ingest:     &IngestService{DB: db, History: repo, Pricer: prices, Log: zerolog.Nop(), Now: now},
		dashboard:  &DashboardService{History: repo, Lang: "en", Now: now},
		history:    repo,
		clock:      &clock,
	}
}

func (f fixture) tick(d time.Duration) { *f.clock = f.clock.Add(d) }

func car(brand, model string) api.ValuationInput {
	return api.ValuationInput{
		Manufacturer: brand, Model: model, Year: 2019, Transmission: "Manual",
		Mileage: 40000, FuelType: "Petrol", Tax: 145, MPG: 55.4, EngineSize: 1.0,
	}
}

func TestPredictRecordsNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	price, err := f.valuations.Predict(ctx, car("Ford", "Fiesta"))
	require.NoError(t, err)
	require.Equal(t, 12000.0, price)
	f.tick(time.Minute)
	_, err = f.valuations.Predict(ctx, car("BMW", "X5"))
	require.NoError(t, err)

	recs, err := f.valuations.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "X5", recs[0].Model)
	assert.Equal(t, 1, recs[1].ID)
	assert.Equal(t, "2026-10-19 09:00:00", recs[1].Timestamp)
	assert.Equal(t, 40000.0, recs[1].Mileage)

	_, err = f.valuations.Predict(ctx, api.ValuationInput{Model: "Fiesta"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestPredictFileCSV(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	data := strings.Join([]string{
		"Manufacturer,Model,Year,Transmission,Mileage,FuelType,Tax,MPG,EngineSize",
		"Ford,Fiesta,2019,Manual,40000,Petrol,145,55.4,1.0",
		"BMW,X5,2021,Semi-Auto,\"15,000\",Diesel,150,45,3",
		",,,,,,,,",
	}, "\n")

	res, err := f.ingest.PredictFile(ctx, "Cars.CSV", strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
	require.Equal(t, 2, res.Recorded)

	first := res.Rows[0]
	assert.Equal(t, []string{"manufacturer", "model", "year", "transmission", "mileage", "fueltype", "tax", "mpg", "enginesize", api.PriceField}, first.Columns)
	assert.Equal(t, 12000.0, first.PredictedPrice)
	assert.Equal(t, int64(2019), first.Values["year"])
	assert.Equal(t, 55.4, first.Values["mpg"])
	assert.Equal(t, "15,000", res.Rows[1].Values["mileage"])

	recs, err := f.valuations.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 15000.0, recs[0].Mileage)
	assert.Equal(t, "X5", recs[0].Model)
}

func TestPredictFileXLSXTemplate(t *testing.T) {
	f := newFixture(t)
	wb, err := sheet.Template()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, wb.Write(&buf))
	require.NoError(t, wb.Close())

	res, err := f.ingest.PredictFile(context.Background(), "template.xlsx", &buf)
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, 40000.0, res.Rows[1].PredictedPrice)
}

func TestPredictFileRejects(t *testing.T) {
	f := newFixture(t)
	_, err := f.ingest.PredictFile(context.Background(), "cars.txt", strings.NewReader("a\n1\n"))
	require.ErrorIs(t, err, sheet.ErrUnsupported)

	_, err = f.ingest.PredictFile(context.Background(), "cars.csv", strings.NewReader("manufacturer,model\n"))
	require.ErrorIs(t, err, sheet.ErrEmpty)

	totals, err := f.history.Totals(context.Background())
	require.NoError(t, err)
	require.Zero(t, totals.Count)
}

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	empty, err := f.dashboard.Stats(ctx)
	require.NoError(t, err)
	require.True(t, empty.Empty())
	require.NotNil(t, empty.ChartData)

	cars := []api.ValuationInput{
		car("Ford", "Fiesta"), car("BMW", "X5"), car("Ford", "Focus"), car("Audi", "A4"),
	}
	for _, c := range cars {
		_, err := f.valuations.Predict(ctx, c)
		require.NoError(t, err)
		f.tick(time.Hour)
	}
	f.tick(48 * time.Hour)
	_, err = f.valuations.Predict(ctx, car("Ford", "Kuga"))
	require.NoError(t, err)

	st, err := f.dashboard.Stats(ctx)
	require.NoError(t, err)
	require.Len(t, st.Stats, 3)
	assert.Equal(t, "5", st.Stats[0].Value)
	assert.Equal(t, "+1 (24h)", st.Stats[0].Change)
	assert.Equal(t, "$97,000", st.Stats[1].Value)
	assert.Equal(t, "Ford", st.Stats[2].Value)
	assert.Equal(t, "3 valuations", st.Stats[2].Change)
	assert.Equal(t, "Total Valuations", st.Stats[0].Label)

	require.Len(t, st.BrandData, 3)
	assert.Equal(t, api.BrandShare{Name: "Ford", Value: 3, Color: BrandPalette[0]}, st.BrandData[0])
	assert.Equal(t, "Audi", st.BrandData[1].Name)

	require.Len(t, st.ChartData, 5)
	assert.Equal(t, api.ChartPoint{Name: "#1", Price: 12000}, st.ChartData[0])
	assert.Equal(t, "#5", st.ChartData[4].Name)

	require.Len(t, st.Recent, 5)
	assert.Equal(t, "Kuga", st.Recent[0].Model)
}

func TestMaintenanceReset(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.valuations.Predict(ctx, car("Ford", "Fiesta"))
	require.NoError(t, err)

	m := &MaintenanceService{History: f.history}
	require.NoError(t, m.Reset(ctx))
	recs, err := f.valuations.List(ctx)
	require.NoError(t, err)
	require.Empty(t, recs)

	require.Error(t, (&MaintenanceService{}).Reset(ctx))
}
