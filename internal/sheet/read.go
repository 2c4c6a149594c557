package sheet

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrEmpty       = errors.New("file has no data rows")
	ErrUnsupported = errors.New("only .csv or .xlsx files are supported")
	ErrMalformed   = errors.New("file could not be parsed")
)

// Table is a parsed upload: lower-cased header plus raw cell text per row.
type Table struct {
	Header []string
	Rows   [][]string
}

// Value returns the cell of row i under column col, or "" when absent.
func (t Table) Value(i int, col string) string {
	for j, h := range t.Header {
		if h == col {
			if j < len(t.Rows[i]) {
				return strings.TrimSpace(t.Rows[i][j])
			}
			return ""
		}
	}
	return ""
}

// ReadTable parses a .csv or .xlsx upload; the first row is the header.
func ReadTable(filename string, r io.Reader) (Table, error) {
	var (
		raw [][]string
		err error
	)
	switch {
	case strings.HasSuffix(filename, ".csv"):
		cr := csv.NewReader(bufio.NewReader(r))
		cr.TrimLeadingSpace = true
		cr.FieldsPerRecord = -1
		raw, err = cr.ReadAll()
	case strings.HasSuffix(filename, ".xlsx"), strings.HasSuffix(filename, ".xls"):
		raw, err = readXLSX(r)
	default:
		return Table{}, ErrUnsupported
	}
	if err != nil {
		return Table{}, fmt.Errorf("%w: %s: %w", ErrMalformed, filename, err)
	}
	if len(raw) < 2 {
		return Table{}, ErrEmpty
	}
	t := Table{Header: make([]string, len(raw[0]))}
	for i, h := range raw[0] {
		t.Header[i] = strings.ToLower(strings.TrimSpace(h))
	}
	for _, row := range raw[1:] {
		if blank(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	if len(t.Rows) == 0 {
		return Table{}, ErrEmpty
	}
	return t, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmpty
	}
	return f.GetRows(sheets[0])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
