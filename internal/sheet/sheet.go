// Package sheet builds the spreadsheets the client hands to the user (upload
// template, batch and history exports) and parses uploaded ones.
package sheet

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/autoprestige/autoprestige/internal/api"
	"github.com/autoprestige/autoprestige/internal/batch"
	"github.com/autoprestige/autoprestige/internal/money"
)

const (
	TemplateSheet = "Template"
	BatchSheet    = "Valuation_Result"
	HistorySheet  = "Valuation_History"

	TemplateFile = "AutoPrestige_Template.xlsx"
)

// TemplateColumns is the fixed upload schema.
var TemplateColumns = []string{
	"manufacturer", "model", "year", "transmission", "mileage",
	"fuelType", "tax", "mpg", "engineSize",
}

// BatchFileName is the date-stamped name of a batch export.
func BatchFileName(now time.Time) string {
	return "Valuation_Result_" + now.Format(time.DateOnly) + ".xlsx"
}

// HistoryFileName is the date-stamped name of a history export.
func HistoryFileName(now time.Time) string {
	return "AutoPrestige_History_" + now.Format(time.DateOnly) + ".xlsx"
}

// PriceColumn labels a converted price column, e.g. "Price_(EUR)".
func PriceColumn(prefix, code string) string {
	return fmt.Sprintf("%s_(%s)", prefix, code)
}

// Template builds the upload template with its sample rows.
func Template() (*excelize.File, error) {
	rows := make([][]any, 0, 2)
	for _, in := range batch.TemplateRows() {
		rows = append(rows, []any{
			in.Manufacturer, in.Model, in.Year, in.Transmission, in.Mileage,
			in.FuelType, in.Tax, in.MPG, in.EngineSize,
		})
	}
	return build(TemplateSheet, TemplateColumns, rows)
}

// BatchExport writes the backend columns in their original order plus the
// price converted into the display currency.
func BatchExport(rows []api.BatchRow, code string) (*excelize.File, error) {
	var header []string
	seen := map[string]bool{}
	for _, r := range rows {
		for _, c := range r.Columns {
			if !seen[c] {
				seen[c] = true
				header = append(header, c)
			}
		}
	}
	priceCol := PriceColumn("Price", code)
	header = append(header, priceCol)

	out := make([][]any, 0, len(rows))
	for _, r := range rows {
		line := make([]any, 0, len(header))
		for _, c := range header[:len(header)-1] {
			v, _ := r.Get(c)
			line = append(line, v)
		}
		line = append(line, money.Round(r.PredictedPrice, code))
		out = append(out, line)
	}
	return build(BatchSheet, header, out)
}

// HistoryExport writes every fetched record with a converted price column.
func HistoryExport(records []api.HistoryRecord, code string) (*excelize.File, error) {
	header := []string{
		"ID", "Date", "Manufacturer", "Model", "Year", "Transmission",
		"Mileage", "Fuel", "Engine_Size", PriceColumn("Predicted_Price", code),
	}
	out := make([][]any, 0, len(records))
	for _, r := range records {
		out = append(out, []any{
			r.ID, r.Timestamp, r.Manufacturer, r.Model, r.Year, r.Transmission,
			r.Mileage, r.FuelType, r.EngineSize, money.Round(r.PredictedPrice, code),
		})
	}
	return build(HistorySheet, header, out)
}

func build(sheet string, header []string, rows [][]any) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("sheet %s: %w", sheet, err)
	}
	head := make([]any, len(header))
	for i, h := range header {
		head[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("sheet %s header: %w", sheet, err)
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		r := r
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("sheet %s row %d: %w", sheet, i+1, err)
		}
	}
	return f, nil
}

// Save writes f into dir under name via a temp file and rename, then closes f.
func Save(f *excelize.File, dir, name string) (string, error) {
	defer f.Close()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir export dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".autoprestige-*.xlsx")
	if err != nil {
		return "", fmt.Errorf("create temp: %w", err)
	}
	if err := f.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	dst := filepath.Join(dir, name)
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("rename %s: %w", name, err)
	}
	return dst, nil
}
