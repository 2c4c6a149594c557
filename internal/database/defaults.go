package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/autoprestige/autoprestige/internal/database/repository"
)

// SeedDefaults fills an empty history with samples so the dashboard has
// something to chart. It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB, samples []repository.Valuation) (int, error) {
	repo := repository.NewHistoryRepo(db)
	totals, err := repo.Totals(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}
	if totals.Count > 0 {
		return 0, nil
	}
	err = WithTx(ctx, db, func(tx *sql.Tx) error {
		for i, v := range samples {
			if _, err := repo.InsertTx(ctx, tx, v); err != nil {
				return fmt.Errorf("seed row %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(samples), nil
}
