package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/autoprestige/autoprestige/internal/api"
	"github.com/autoprestige/autoprestige/internal/database"
	"github.com/autoprestige/autoprestige/internal/database/repository"
	"github.com/autoprestige/autoprestige/internal/sheet"
)

// IngestService prices an uploaded spreadsheet row by row.
type IngestService struct {
	DB      *sql.DB
	History *repository.HistoryRepo
	Pricer  Pricer
	Log     zerolog.Logger
	Now     func() time.Time
}

// IngestResult is the priced sheet plus how many rows were recorded.
type IngestResult struct {
	Rows     []api.BatchRow
	Recorded int
}

// PredictFile parses a .csv/.xlsx upload, appends predicted_price to every
// row and records all rows in one transaction. Errors from sheet.ReadTable
// (ErrUnsupported, ErrEmpty) are returned unwrapped for the caller to map.
func (s *IngestService) PredictFile(ctx context.Context, filename string, r io.Reader) (IngestResult, error) {
	tbl, err := sheet.ReadTable(strings.ToLower(filename), r)
	if err != nil {
		return IngestResult{}, err
	}
	columns := columnsWithPrice(tbl.Header)
	at := now(s.Now)
	res := IngestResult{Rows: make([]api.BatchRow, 0, len(tbl.Rows))}

	err = database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		for i := range tbl.Rows {
			in := inputFromRow(tbl, i)
			price := s.Pricer.Estimate(in)
			values := make(map[string]any, len(columns))
			for _, col := range tbl.Header {
				if col == "" || col == api.PriceField {
					continue
				}
				values[col] = cell(tbl.Value(i, col))
			}
			values[api.PriceField] = price
			res.Rows = append(res.Rows, api.BatchRow{Columns: columns, Values: values, PredictedPrice: price})

			if in.Manufacturer == "" || in.Model == "" {
				continue
			}
			if _, err := s.History.InsertTx(ctx, tx, toValuation(in, price, at)); err != nil {
				return fmt.Errorf("row %d: %w", i+2, err)
			}
			res.Recorded++
		}
		return nil
	})
	if err != nil {
		return IngestResult{}, fmt.Errorf("record batch: %w", err)
	}
	s.Log.Info().Str("file", filename).Int("rows", len(res.Rows)).Int("recorded", res.Recorded).Msg("batch priced")
	return res, nil
}

// columnsWithPrice keeps the header order, drops blanks and duplicates and
// puts predicted_price last.
func columnsWithPrice(header []string) []string {
	out := make([]string, 0, len(header)+1)
	seen := map[string]bool{"": true, api.PriceField: true}
	for _, h := range header {
		if seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	return append(out, api.PriceField)
}

func inputFromRow(t sheet.Table, i int) api.ValuationInput {
	return api.ValuationInput{
		Manufacturer: t.Value(i, "manufacturer"),
		Model:        t.Value(i, "model"),
		Year:         int(number(t.Value(i, "year"))),
		Transmission: t.Value(i, "transmission"),
		Mileage:      int(number(t.Value(i, "mileage"))),
		FuelType:     t.Value(i, "fueltype"),
		Tax:          number(t.Value(i, "tax")),
		MPG:          number(t.Value(i, "mpg")),
		EngineSize:   number(t.Value(i, "enginesize")),
	}
}

// number parses lenient numeric cells ("40,000", " 1.5 "); junk reads as 0.
func number(s string) float64 {
	f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
	if err != nil {
		return 0
	}
	return f
}

// cell types a raw value the way a dataframe would: integers, floats, text,
// and nil for blanks.
func cell(s string) any {
	if s == "" {
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
