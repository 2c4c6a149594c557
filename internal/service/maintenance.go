package service

import (
	"context"
	"fmt"

	"github.com/autoprestige/autoprestige/internal/database/repository"
)

// MaintenanceService houses destructive ops actions exposed by the stub CLI.
type MaintenanceService struct {
	History *repository.HistoryRepo
}

// Reset wipes the valuation history. The schema stays intact.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.History == nil {
		return fmt.Errorf("maintenance: history not configured")
	}
	if err := s.History.Clear(ctx); err != nil {
		return fmt.Errorf("reset history: %w", err)
	}
	return nil
}
