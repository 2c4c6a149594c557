// Package batch is the spreadsheet upload workflow: client-side file
// validation, the upload state machine and the summary of predicted rows.
package batch

import (
	"errors"
	"mime"
	"path/filepath"
	"strings"

	"github.com/autoprestige/autoprestige/internal/api"
)

var (
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrNoFile          = errors.New("no file selected")
	ErrBusy            = errors.New("upload in flight")
)

const (
	MimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimeCSV  = "text/csv"
	MimeXLS  = "application/vnd.ms-excel"
)

var acceptedMIME = map[string]bool{MimeXLSX: true, MimeCSV: true, MimeXLS: true}

// ValidateFile accepts the spreadsheet MIME types or a .csv/.xlsx name.
// There is no size limit.
func ValidateFile(name, mimeType string) error {
	if mt, _, err := mime.ParseMediaType(mimeType); err == nil && acceptedMIME[mt] {
		return nil
	}
	if strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".xlsx") {
		return nil
	}
	return ErrUnsupportedFile
}

// DetectMIME derives a MIME type from the file extension, the way a browser
// labels a picked file.
func DetectMIME(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx":
		return MimeXLSX
	case ".csv":
		return MimeCSV
	case ".xls":
		return MimeXLS
	}
	return mime.TypeByExtension(filepath.Ext(name))
}

// Summary is the aggregate of one result set, in USD.
type Summary struct {
	Count    int
	TotalUSD float64
}

// Average is TotalUSD / Count; false when there are no rows.
func (s Summary) Average() (float64, bool) {
	if s.Count == 0 {
		return 0, false
	}
	return s.TotalUSD / float64(s.Count), true
}

func Summarize(rows []api.BatchRow) Summary {
	s := Summary{Count: len(rows)}
	for _, r := range rows {
		s.TotalUSD += r.PredictedPrice
	}
	return s
}

// TemplateRows are the sample vehicles written to the upload template.
func TemplateRows() []api.ValuationInput {
	return []api.ValuationInput{
		{Manufacturer: "Ford", Model: "Fiesta", Year: 2019, Transmission: "Manual", Mileage: 40000, FuelType: "Petrol", Tax: 145, MPG: 55.4, EngineSize: 1.0},
		{Manufacturer: "BMW", Model: "X5", Year: 2021, Transmission: "Semi-Auto", Mileage: 15000, FuelType: "Diesel", Tax: 150, MPG: 45.0, EngineSize: 3.0},
	}
}

// Workflow tracks the selected file and the latest result set.
type Workflow struct {
	path    string
	rows    []api.BatchRow
	summary *Summary
	loading bool
	err     string
}

func (w *Workflow) Path() string         { return w.path }
func (w *Workflow) Rows() []api.BatchRow { return w.rows }
func (w *Workflow) Loading() bool        { return w.loading }
func (w *Workflow) ErrMessage() string   { return w.err }

// Summary is nil until an upload succeeds.
func (w *Workflow) Summary() *Summary { return w.summary }

// Select validates and stores a file; a valid selection clears prior results.
func (w *Workflow) Select(path, mimeType string) error {
	w.err = ""
	if err := ValidateFile(filepath.Base(path), mimeType); err != nil {
		return err
	}
	w.path = path
	w.rows = nil
	w.summary = nil
	return nil
}

// Reject records a validation message without touching the selection.
func (w *Workflow) Reject(message string) { w.err = message }

// Begin marks the upload in flight and returns the file to send.
func (w *Workflow) Begin() (string, error) {
	if w.path == "" {
		return "", ErrNoFile
	}
	if w.loading {
		return "", ErrBusy
	}
	w.loading = true
	w.err = ""
	return w.path, nil
}

// Resolve replaces the row-set and recomputes the summary.
func (w *Workflow) Resolve(rows []api.BatchRow) {
	if !w.loading {
		return
	}
	w.loading = false
	w.rows = rows
	s := Summarize(rows)
	w.summary = &s
}

// Fail ends the upload with a user-facing message.
func (w *Workflow) Fail(message string) {
	if !w.loading {
		return
	}
	w.loading = false
	w.err = message
}

// FailureMessage prefers the backend's detail over the generic text.
func FailureMessage(err error, generic string) string {
	if d := api.Detail(err); d != "" {
		return d
	}
	return generic
}
