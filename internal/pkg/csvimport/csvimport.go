// Package csvimport reads the employee roster feed.
package csvimport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chll-hr/leave-backend/internal/domain/employee"
	"github.com/shopspring/decimal"
)

const (
	colFirstName = "first name"
	colLastName  = "last name"
	colEmail     = "email"
	colDept      = "department"
	colRemaining = "reaming holiday"
)

// Header is the column order of generated files.
var Header = []string{colFirstName, colLastName, colEmail, colDept, colRemaining}

// aliases maps accepted header spellings to canonical column names.
var aliases = map[string]string{
	"first name":        colFirstName,
	"firstname":         colFirstName,
	"last name":         colLastName,
	"lastname":          colLastName,
	"email":             colEmail,
	"department":        colDept,
	"reaming holiday":   colRemaining,
	"remaining holiday": colRemaining,
}

var (
	ErrEmptyFile     = errors.New("CSV file is empty")
	ErrMissingColumn = errors.New("CSV header is missing a required column")
)

// Parse reads a header line followed by data rows. Rows are numbered from 1
// after the header. A row that cannot be read keeps its number and carries
// the reason in Problem so the import can report it.
func Parse(r io.Reader) ([]employee.ImportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index, err := columns(header)
	if err != nil {
		return nil, err
	}

	var rows []employee.ImportRow
	for n := 1; ; n++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				rows = append(rows, employee.ImportRow{Row: n, Problem: perr.Err.Error()})
				continue
			}
			return nil, fmt.Errorf("failed to read CSV row %d: %w", n, err)
		}
		if blank(record) {
			n--
			continue
		}
		rows = append(rows, toRow(n, record, index))
	}
	return rows, nil
}

func columns(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if canonical, ok := aliases[name]; ok {
			index[canonical] = i
		}
	}
	for _, required := range []string{colFirstName, colLastName, colEmail} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, required)
		}
	}
	return index, nil
}

func toRow(n int, record []string, index map[string]int) employee.ImportRow {
	field := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	row := employee.ImportRow{
		Row:        n,
		FirstName:  field(colFirstName),
		LastName:   field(colLastName),
		Email:      field(colEmail),
		Department: field(colDept),
	}
	if raw := field(colRemaining); raw != "" {
		d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
		if err != nil {
			row.Problem = fmt.Sprintf("remaining holiday %q is not a number", raw)
			return row
		}
		row.RemainingHoliday = &d
	}
	return row
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// Example renders a file with the header and one sample row.
func Example() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Header); err != nil {
		return nil, err
	}
	if err := w.Write([]string{"Bernhard", "Cummerata", "Bernhard.Cummerata@email.com", "HR", "24.5"}); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write example CSV: %w", err)
	}
	return buf.Bytes(), nil
}
