// Package lead models one input spreadsheet row and its tolerant parsing.
// Input sheets come from lead-export tools with inconsistent column naming,
// so header matching is alias-based and every field has a substitution
// default rather than a hard failure.
package lead

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Field defaults applied when a cell is missing or unparseable.
const (
	// DefaultEmployees substitutes a missing or malformed employee count.
	DefaultEmployees = 50

	// DefaultIndustry substitutes a missing industry.
	DefaultIndustry = "General"
)

// Record is one parsed input row. Immutable once read.
type Record struct {
	// Index is the zero-based data-row index in the input sheet.
	Index int

	// Name is the company name, or a generated placeholder if missing.
	Name string

	// Employees is the non-negative employee count.
	Employees int

	// Industry is the free-text industry string, matched case-insensitively.
	Industry string

	// LogoURL is the first http(s) logo candidate found, or "".
	LogoURL string

	// BrandPrimary and BrandSecondary are raw color cells; validation and
	// default substitution happen in the assets package.
	BrandPrimary   string
	BrandSecondary string

	// Raw holds the original cells, preserved verbatim for the output sheet.
	Raw []string
}

// Column aliases, matched case-insensitively against trimmed headers.
// Within each group the first alias present in the sheet wins.
var (
	NameAliases      = []string{"name"}
	EmployeeAliases  = []string{"organization/estimated_num_employees", "employees", "employee_count"}
	IndustryAliases  = []string{"organization/industry", "industry"}
	LogoAliases      = []string{"logo", "logo_url", "organization/logo", "image", "image_url"}
	PrimaryAliases   = []string{"brand_primary"}
	SecondaryAliases = []string{"brand_secondary"}
)

// Columns maps resolved header positions for one sheet.
// A value of -1 means the column is absent.
type Columns struct {
	Name      int
	Employees int
	Industry  int
	Logo      []int // all logo candidates, in alias priority order
	Primary   int
	Secondary int
}

// ResolveColumns matches a header row against the known aliases.
func ResolveColumns(headers []string) Columns {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}

	find := func(aliases []string) int {
		for _, a := range aliases {
			if i, ok := index[a]; ok {
				return i
			}
		}
		return -1
	}

	cols := Columns{
		Name:      find(NameAliases),
		Employees: find(EmployeeAliases),
		Industry:  find(IndustryAliases),
		Primary:   find(PrimaryAliases),
		Secondary: find(SecondaryAliases),
	}
	for _, a := range LogoAliases {
		if i, ok := index[a]; ok {
			cols.Logo = append(cols.Logo, i)
		}
	}
	return cols
}

// FromRow builds a Record from one data row using resolved columns.
// Missing cells fall back to defaults; rowIndex seeds the placeholder name.
func FromRow(rowIndex int, cols Columns, row []string) Record {
	cell := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rec := Record{
		Index:          rowIndex,
		Name:           cell(cols.Name),
		Industry:       cell(cols.Industry),
		BrandPrimary:   cell(cols.Primary),
		BrandSecondary: cell(cols.Secondary),
		Raw:            row,
	}

	if rec.Name == "" {
		rec.Name = fmt.Sprintf("Company_%d", rowIndex)
	}
	if rec.Industry == "" {
		rec.Industry = DefaultIndustry
	}
	rec.Employees = ParseEmployees(cell(cols.Employees))

	for _, i := range cols.Logo {
		if url := NormalizeURL(cell(i)); url != "" {
			rec.LogoURL = url
			break
		}
	}

	return rec
}

// ParseEmployees parses an employee-count cell. Spreadsheet exports store
// counts as integers, floats ("120.0"), or formatted strings ("1,200");
// anything unparseable or negative falls back to DefaultEmployees.
func ParseEmployees(s string) int {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return DefaultEmployees
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return DefaultEmployees
		}
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		// ParseFloat accepts "NaN" and "Inf"; neither is a headcount.
		if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			return DefaultEmployees
		}
		return int(f)
	}
	return DefaultEmployees
}

// NormalizeURL returns the trimmed value if it is an http(s) URL, or "".
// Matching is case-insensitive on the scheme.
func NormalizeURL(s string) string {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return s
	}
	return ""
}

// pathUnsafe lists the characters stripped from company names before they
// are used in artifact filenames.
const pathUnsafe = `\/*?:"<>|`

// SanitizeName strips filesystem-unsafe characters from a company name so
// it can be used in deterministic artifact paths. Two companies that
// sanitize to the same string overwrite each other's artifacts; the
// pipeline does not disambiguate.
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if !strings.ContainsRune(pathUnsafe, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
