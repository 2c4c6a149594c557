package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/autoprestige/autoprestige/internal/api"
	"github.com/autoprestige/autoprestige/internal/database/repository"
	"github.com/autoprestige/autoprestige/internal/money"
)

const (
	chartPoints = 10
	recentRows  = 5
	topBrands   = 5
)

// BrandPalette colours the brand shares in rank order.
var BrandPalette = []string{"#3b82f6", "#10b981", "#f59e0b", "#ef4444", "#8b5cf6"}

type statLabels struct {
	count, value, brand, today, avg, valuations string
}

var labelsByLang = map[string]statLabels{
	"vi": {"Tổng lượt định giá", "Tổng giá trị", "Hãng phổ biến nhất", "24h", "TB", "lượt"},
	"en": {"Total Valuations", "Total Value", "Top Brand", "24h", "avg", "valuations"},
}

// DashboardService builds the /dashboard-stats document.
type DashboardService struct {
	History *repository.HistoryRepo
	// Lang picks the card labels; unknown values use Vietnamese.
	Lang string
	Now  func() time.Time
}

// Stats aggregates the history. An empty history yields empty (non-nil)
// lists so clients can tell "nothing yet" from a failure.
func (s *DashboardService) Stats(ctx context.Context) (api.DashboardStats, error) {
	out := api.DashboardStats{
		Stats:     []api.Stat{},
		ChartData: []api.ChartPoint{},
		BrandData: []api.BrandShare{},
		Recent:    []api.HistoryRecord{},
	}
	totals, err := s.History.Totals(ctx)
	if err != nil {
		return out, fmt.Errorf("dashboard totals: %w", err)
	}
	if totals.Count == 0 {
		return out, nil
	}
	today, err := s.History.CountSince(ctx, now(s.Now).Add(-24*time.Hour))
	if err != nil {
		return out, fmt.Errorf("dashboard today: %w", err)
	}
	brands, err := s.History.TopBrands(ctx, topBrands)
	if err != nil {
		return out, fmt.Errorf("dashboard brands: %w", err)
	}
	last, err := s.History.Recent(ctx, chartPoints)
	if err != nil {
		return out, fmt.Errorf("dashboard recent: %w", err)
	}

	l, ok := labelsByLang[s.Lang]
	if !ok {
		l = labelsByLang["vi"]
	}
	top := brands[0]
	out.Stats = []api.Stat{
		{
			Label: l.count, Value: strconv.Itoa(totals.Count),
			Change: fmt.Sprintf("+%d (%s)", today, l.today), IsPos: today > 0,
			Icon: "Car", Color: "blue",
		},
		{
			Label: l.value, Value: money.Format(totals.Value, "USD"),
			Change: l.avg + " " + money.Format(totals.Value/float64(totals.Count), "USD"), IsPos: true,
			Icon: "DollarSign", Color: "green",
		},
		{
			Label: l.brand, Value: top.Manufacturer,
			Change: fmt.Sprintf("%d %s", top.Count, l.valuations), IsPos: true,
			Icon: "Users", Color: "purple",
		},
	}
	for i, b := range brands {
		out.BrandData = append(out.BrandData, api.BrandShare{
			Name: b.Manufacturer, Value: b.Count, Color: BrandPalette[i%len(BrandPalette)],
		})
	}
	// chart runs oldest to newest
	for i := len(last) - 1; i >= 0; i-- {
		out.ChartData = append(out.ChartData, api.ChartPoint{
			Name:  "#" + strconv.FormatInt(last[i].ID, 10),
			Price: last[i].PredictedPrice,
		})
	}
	for _, v := range last[:min(recentRows, len(last))] {
		out.Recent = append(out.Recent, toRecord(v))
	}
	return out, nil
}
