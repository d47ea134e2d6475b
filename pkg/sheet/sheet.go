// Package sheet reads lead spreadsheets and writes the result spreadsheet.
// Formats are selected by file extension: .xlsx via excelize and .csv via
// the standard CSV codec. The writer re-emits the input rows verbatim and
// appends a single column with each row's report path.
package sheet

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/r3d91ll/apreport/pkg/errors"
	"github.com/r3d91ll/apreport/pkg/lead"
)

// ReportColumn is the header of the column appended to the output sheet.
const ReportColumn = "personalisation"

// Format identifies a spreadsheet file format.
type Format string

const (
	// FormatXLSX is an Excel workbook; only the first sheet is read.
	FormatXLSX Format = "xlsx"

	// FormatCSV is an RFC 4180 CSV file with a header row.
	FormatCSV Format = "csv"
)

// DetectFormat maps a file extension to a Format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", apperrors.Inputf(apperrors.ErrInputUnsupportedFormat,
			"unsupported spreadsheet format %q", filepath.Ext(path))
	}
}

// Table holds one parsed input spreadsheet.
type Table struct {
	// Headers is the first row of the sheet.
	Headers []string

	// Rows are the raw data rows, in input order.
	Rows [][]string

	// Records are the parsed leads, one per data row, in input order.
	Records []lead.Record
}

// Read loads a lead spreadsheet. A missing file maps to INPUT_NOT_FOUND, an
// empty sheet (no header or no data rows) to INPUT_NO_ROWS.
func Read(path string) (*Table, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, apperrors.Inputf(apperrors.ErrInputNotFound, "input file %q not found", path)
	}

	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	var raw [][]string
	switch format {
	case FormatXLSX:
		raw, err = readXLSX(path)
	case FormatCSV:
		raw, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}

	if len(raw) < 2 {
		return nil, apperrors.Inputf(apperrors.ErrInputNoRows, "input file %q has no data rows", path)
	}

	t := &Table{
		Headers: raw[0],
		Rows:    raw[1:],
	}
	cols := lead.ResolveColumns(t.Headers)
	t.Records = make([]lead.Record, len(t.Rows))
	for i, row := range t.Rows {
		t.Records[i] = lead.FromRow(i, cols, row)
	}
	return t, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.InputWrap(err, apperrors.ErrInputReadFailed, "opening workbook")
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, apperrors.InputWrap(err, apperrors.ErrInputReadFailed, "reading sheet rows")
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.InputWrap(err, apperrors.ErrInputReadFailed, "opening csv")
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // rows may be ragged; lead parsing tolerates it
	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.InputWrap(err, apperrors.ErrInputReadFailed, "reading csv")
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// Write produces the result spreadsheet at path: the original headers and
// rows plus the report column. reportPaths must be index-aligned with the
// table's rows; empty entries mark rows whose report generation failed.
func Write(path string, t *Table, reportPaths []string) error {
	headers := append(append([]string{}, t.Headers...), ReportColumn)
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		// Pad ragged rows so the report path lands in its own column.
		padded := append([]string{}, row...)
		for len(padded) < len(t.Headers) {
			padded = append(padded, "")
		}
		report := ""
		if i < len(reportPaths) {
			report = reportPaths[i]
		}
		rows[i] = append(padded, report)
	}

	format, err := DetectFormat(path)
	if err != nil {
		return apperrors.OutputWrap(err, apperrors.ErrOutputWriteFailed, "resolving output format")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return apperrors.OutputWrap(err, apperrors.ErrOutputWriteFailed, "creating output directory")
		}
	}

	switch format {
	case FormatXLSX:
		return writeXLSX(path, headers, rows)
	case FormatCSV:
		return writeCSV(path, headers, rows)
	}
	return nil
}

func writeXLSX(path string, headers []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if err := setRow(f, sheetName, 1, headers); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, sheetName, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return apperrors.OutputWrap(err, apperrors.ErrOutputWriteFailed, "saving workbook")
	}
	return nil
}

func setRow(f *excelize.File, sheetName string, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return apperrors.OutputWrap(err, apperrors.ErrOutputWriteFailed, "computing cell name")
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return apperrors.OutputWrap(err, apperrors.ErrOutputWriteFailed, "writing row")
	}
	return nil
}

func writeCSV(path string, headers []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.OutputWrap(err, apperrors.ErrOutputWriteFailed, "creating csv")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return apperrors.OutputWrap(err, apperrors.ErrOutputWriteFailed, "writing header")
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return apperrors.OutputWrap(err, apperrors.ErrOutputWriteFailed, "writing row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return apperrors.OutputWrap(err, apperrors.ErrOutputWriteFailed, "flushing csv")
	}
	return nil
}
