package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/autoprestige/autoprestige/internal/database/repository"
)

func openTest(t *testing.T) *repository.HistoryRepo {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "stub.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, RunMigrations(db))
	// second run is a no-op
	require.NoError(t, RunMigrations(db))
	return repository.NewHistoryRepo(db)
}

func val(brand, model string, price float64, at time.Time) repository.Valuation {
	return repository.Valuation{
		CreatedAt: at, Manufacturer: brand, Model: model, Year: 2019,
		Transmission: "Manual", Mileage: 40000, FuelType: "Petrol",
		Tax: 145, MPG: 55.4, EngineSize: 1, PredictedPrice: price,
	}
}

func TestHistoryRepoOrderingAndAggregates(t *testing.T) {
	ctx := context.Background()
	repo := openTest(t)
	base := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	_, err := repo.Insert(ctx, val("Ford", "Fiesta", 12000, base))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, val("BMW", "X5", 40000, base.Add(time.Minute)))
	require.NoError(t, err)
	id, err := repo.Insert(ctx, val("Ford", "Focus", 15000, base.Add(2*time.Minute)))
	require.NoError(t, err)
	require.EqualValues(t, 3, id)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "Focus", all[0].Model)
	require.Equal(t, "Fiesta", all[2].Model)
	require.True(t, all[0].CreatedAt.Equal(base.Add(2*time.Minute)))
	require.Equal(t, 55.4, all[2].MPG)

	recent, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, "X5", recent[1].Model)

	totals, err := repo.Totals(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, totals.Count)
	require.Equal(t, 67000.0, totals.Value)

	brands, err := repo.TopBrands(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, []repository.BrandCount{{Manufacturer: "Ford", Count: 2}, {Manufacturer: "BMW", Count: 1}}, brands)

	require.NoError(t, repo.Clear(ctx))
	totals, err = repo.Totals(ctx)
	require.NoError(t, err)
	require.Zero(t, totals.Count)
}

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := Open(filepath.Join(t.TempDir(), "stub.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, RunMigrations(db))

	samples := []repository.Valuation{
		val("Ford", "Fiesta", 12000, time.Time{}),
		val("Audi", "A4", 21000, time.Time{}),
	}
	n, err := SeedDefaults(ctx, db, samples)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = SeedDefaults(ctx, db, samples)
	require.NoError(t, err)
	require.Zero(t, n)

	all, err := repository.NewHistoryRepo(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db, err := Open(filepath.Join(t.TempDir(), "stub.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, RunMigrations(db))
	repo := repository.NewHistoryRepo(db)

	boom := errors.New("bad row")
	err = WithTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := repo.InsertTx(ctx, tx, val("Ford", "Focus", 15000, Now())); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	totals, err := repo.Totals(ctx)
	require.NoError(t, err)
	require.Zero(t, totals.Count)
}

func TestNowIsWholeSecondsUTC(t *testing.T) {
	n := Now()
	require.Equal(t, time.UTC, n.Location())
	require.Zero(t, n.Nanosecond())
}
