package sheet

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/autoprestige/autoprestige/internal/api"
)

func rowsOf(t *testing.T, f *excelize.File, sheet string) [][]string {
	t.Helper()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestFileNames(t *testing.T) {
	now := time.Date(2026, 10, 19, 23, 0, 0, 0, time.UTC)
	require.Equal(t, "Valuation_Result_2026-10-19.xlsx", BatchFileName(now))
	require.Equal(t, "AutoPrestige_History_2026-10-19.xlsx", HistoryFileName(now))
}

func TestTemplate(t *testing.T) {
	f, err := Template()
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{TemplateSheet}, f.GetSheetList())
	rows := rowsOf(t, f, TemplateSheet)
	require.Len(t, rows, 3)
	require.Equal(t, TemplateColumns, rows[0])
	require.Equal(t, "Ford", rows[1][0])
	require.Equal(t, "X5", rows[2][1])
	require.Equal(t, "15000", rows[2][4])
}

func TestBatchExportConvertsPrice(t *testing.T) {
	rows := []api.BatchRow{
		{
			Columns:        []string{"manufacturer", "model", api.PriceField},
			Values:         map[string]any{"manufacturer": "Ford", "model": "Fiesta", api.PriceField: 12000.0},
			PredictedPrice: 12000,
		},
		{
			Columns:        []string{"manufacturer", "model", api.PriceField},
			Values:         map[string]any{"manufacturer": "BMW", "model": "X5", api.PriceField: 40000.4},
			PredictedPrice: 40000.4,
		},
	}
	f, err := BatchExport(rows, "EUR")
	require.NoError(t, err)
	defer f.Close()

	got := rowsOf(t, f, BatchSheet)
	require.Equal(t, []string{"manufacturer", "model", api.PriceField, "Price_(EUR)"}, got[0])
	require.Equal(t, "11040", got[1][3])
	require.Equal(t, "36800", got[2][3])
	require.Equal(t, "BMW", got[2][0])
}

func TestHistoryExport(t *testing.T) {
	recs := []api.HistoryRecord{{
		ID: 7, Timestamp: "2026-10-19 10:00:00", Manufacturer: "Ford", Model: "Fiesta",
		Year: 2019, Transmission: "Manual", Mileage: 40000, FuelType: "Petrol",
		EngineSize: 1, PredictedPrice: 12000,
	}}
	f, err := HistoryExport(recs, "GBP")
	require.NoError(t, err)

	dir := t.TempDir()
	path, err := Save(f, dir, HistoryFileName(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "AutoPrestige_History_2026-10-19.xlsx"), path)

	reopened, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer reopened.Close()
	got := rowsOf(t, reopened, HistorySheet)
	require.Equal(t, "Predicted_Price_(GBP)", got[0][9])
	require.Equal(t, "7", got[1][0])
	require.Equal(t, "9480", got[1][9])

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file left behind")
}

func TestReadTableCSV(t *testing.T) {
	data := "Manufacturer, Model ,year\nFord,Fiesta,2019\n,,\nBMW,X5,2021\n"
	tbl, err := ReadTable("cars.csv", strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, []string{"manufacturer", "model", "year"}, tbl.Header)
	require.Len(t, tbl.Rows, 2)
	require.Equal(t, "X5", tbl.Value(1, "model"))
	require.Equal(t, "", tbl.Value(0, "mpg"))
}

func TestReadTableXLSXRoundTrip(t *testing.T) {
	f, err := Template()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	tbl, err := ReadTable("template.xlsx", &buf)
	require.NoError(t, err)
	require.Equal(t, []string{"manufacturer", "model", "year", "transmission", "mileage", "fueltype", "tax", "mpg", "enginesize"}, tbl.Header)
	require.Len(t, tbl.Rows, 2)
	require.Equal(t, "Fiesta", tbl.Value(0, "model"))
}

func TestReadTableRejects(t *testing.T) {
	_, err := ReadTable("cars.txt", strings.NewReader("a,b\n1,2\n"))
	require.ErrorIs(t, err, ErrUnsupported)

	_, err = ReadTable("cars.csv", strings.NewReader("manufacturer,model\n"))
	require.ErrorIs(t, err, ErrEmpty)
}

func TestReadTableMalformed(t *testing.T) {
	_, err := ReadTable("cars.xlsx", strings.NewReader("not a zip"))
	require.ErrorIs(t, err, ErrMalformed)
}
