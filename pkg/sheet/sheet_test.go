// Package sheet tests for spreadsheet reading and writing.
package sheet

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/r3d91ll/apreport/pkg/errors"
)

func writeTestCSV(t *testing.T, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leads.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating csv: %v", err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("writing csv: %v", err)
	}
	return path
}

func writeTestXLSX(t *testing.T, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leads.xlsx")
	f := excelize.NewFile()
	defer f.Close()
	sheetName := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		values := make([]interface{}, len(row))
		for j, c := range row {
			values[j] = c
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			t.Fatalf("setting row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("saving workbook: %v", err)
	}
	return path
}

var testRows = [][]string{
	{"name", "organization/estimated_num_employees", "organization/industry", "logo_url"},
	{"Acme Corp", "120", "Manufacturing", "https://example.com/acme.png"},
	{"Globex", "", "Technology", ""},
	{"Initech", "600", "Financial Services", "not-a-url"},
}

// -----------------------------------------------------------------------------
// Reading
// -----------------------------------------------------------------------------

func TestRead_CSV(t *testing.T) {
	path := writeTestCSV(t, testRows)

	table, err := Read(path)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if len(table.Records) != 3 {
		t.Fatalf("got %d records, want 3", len(table.Records))
	}

	acme := table.Records[0]
	if acme.Name != "Acme Corp" || acme.Employees != 120 || acme.Industry != "Manufacturing" {
		t.Errorf("unexpected first record: %+v", acme)
	}
	if acme.LogoURL != "https://example.com/acme.png" {
		t.Errorf("LogoURL = %q", acme.LogoURL)
	}

	globex := table.Records[1]
	if globex.Employees != 50 {
		t.Errorf("missing employee count should default to 50, got %d", globex.Employees)
	}

	initech := table.Records[2]
	if initech.LogoURL != "" {
		t.Errorf("invalid logo URL should be dropped, got %q", initech.LogoURL)
	}
}

func TestRead_XLSX(t *testing.T) {
	path := writeTestXLSX(t, testRows)

	table, err := Read(path)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if len(table.Records) != 3 {
		t.Fatalf("got %d records, want 3", len(table.Records))
	}
	if table.Records[2].Name != "Initech" {
		t.Errorf("third record name = %q, want Initech", table.Records[2].Name)
	}
	if table.Records[2].Employees != 600 {
		t.Errorf("third record employees = %d, want 600", table.Records[2].Employees)
	}
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.xlsx"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, apperrors.New(apperrors.ErrInputNotFound, apperrors.CategoryInput, "")) {
		t.Errorf("error code = %q, want INPUT_NOT_FOUND", apperrors.CodeOf(err))
	}
	if !apperrors.IsFatal(err) {
		t.Error("missing input must be fatal")
	}
}

func TestRead_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.json")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	_, err := Read(path)
	if apperrors.CodeOf(err) != apperrors.ErrInputUnsupportedFormat {
		t.Errorf("error code = %q, want INPUT_UNSUPPORTED_FORMAT", apperrors.CodeOf(err))
	}
}

func TestRead_HeaderOnly(t *testing.T) {
	path := writeTestCSV(t, testRows[:1])
	_, err := Read(path)
	if apperrors.CodeOf(err) != apperrors.ErrInputNoRows {
		t.Errorf("error code = %q, want INPUT_NO_ROWS", apperrors.CodeOf(err))
	}
}

// -----------------------------------------------------------------------------
// Writing
// -----------------------------------------------------------------------------

func TestWrite_CSVRoundTrip(t *testing.T) {
	inPath := writeTestCSV(t, testRows)
	table, err := Read(inPath)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}

	outPath := filepath.Join(t.TempDir(), "out.csv")
	reports := []string{"reports/AP_Report_Acme Corp.pdf", "", "reports/AP_Report_Initech.pdf"}
	if err := Write(outPath, table, reports); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	header := rows[0]
	if header[len(header)-1] != ReportColumn {
		t.Errorf("last header = %q, want %q", header[len(header)-1], ReportColumn)
	}
	if got := rows[1][len(rows[1])-1]; got != reports[0] {
		t.Errorf("row 1 report = %q, want %q", got, reports[0])
	}
	if got := rows[2][len(rows[2])-1]; got != "" {
		t.Errorf("failed row should have empty report cell, got %q", got)
	}
	// Original cells preserved verbatim.
	if rows[3][0] != "Initech" || rows[3][1] != "600" {
		t.Errorf("row 3 mangled: %v", rows[3])
	}
}

func TestWrite_XLSXRoundTrip(t *testing.T) {
	inPath := writeTestXLSX(t, testRows)
	table, err := Read(inPath)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}

	outPath := filepath.Join(t.TempDir(), "out.xlsx")
	reports := []string{"a.pdf", "b.pdf", "c.pdf"}
	if err := Write(outPath, table, reports); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	f, err := excelize.OpenFile(outPath)
	if err != nil {
		t.Fatalf("opening output workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatalf("reading output rows: %v", err)
	}

	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	if got := rows[0][len(rows[0])-1]; got != ReportColumn {
		t.Errorf("last header = %q, want %q", got, ReportColumn)
	}
	if got := rows[1][len(rows[1])-1]; got != "a.pdf" {
		t.Errorf("row 1 report = %q, want a.pdf", got)
	}
}

func TestWrite_RaggedRowsPadded(t *testing.T) {
	ragged := [][]string{
		{"name", "employees", "industry"},
		{"Solo"},
	}
	inPath := writeTestCSV(t, ragged)
	table, err := Read(inPath)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}

	outPath := filepath.Join(t.TempDir(), "out.csv")
	if err := Write(outPath, table, []string{"r.pdf"}); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(rows[1]) != 4 {
		t.Fatalf("ragged row not padded: %v", rows[1])
	}
	if rows[1][3] != "r.pdf" {
		t.Errorf("report cell = %q, want r.pdf", rows[1][3])
	}
}
