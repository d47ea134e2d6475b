// Package lead tests for row parsing and name sanitization.
package lead

import "testing"

// -----------------------------------------------------------------------------
// Column Resolution
// -----------------------------------------------------------------------------

func TestResolveColumns_Aliases(t *testing.T) {
	headers := []string{"Name", "organization/estimated_num_employees", "ORGANIZATION/INDUSTRY", "logo_url", "brand_primary"}
	cols := ResolveColumns(headers)

	if cols.Name != 0 {
		t.Errorf("Name column = %d, want 0", cols.Name)
	}
	if cols.Employees != 1 {
		t.Errorf("Employees column = %d, want 1", cols.Employees)
	}
	if cols.Industry != 2 {
		t.Errorf("Industry column = %d, want 2", cols.Industry)
	}
	if len(cols.Logo) != 1 || cols.Logo[0] != 3 {
		t.Errorf("Logo columns = %v, want [3]", cols.Logo)
	}
	if cols.Primary != 4 {
		t.Errorf("Primary column = %d, want 4", cols.Primary)
	}
	if cols.Secondary != -1 {
		t.Errorf("Secondary column = %d, want -1", cols.Secondary)
	}
}

func TestResolveColumns_AliasPriority(t *testing.T) {
	// "employees" present alongside the full export header: the export
	// header wins because it is listed first.
	headers := []string{"employees", "organization/estimated_num_employees"}
	cols := ResolveColumns(headers)
	if cols.Employees != 1 {
		t.Errorf("Employees column = %d, want 1 (alias priority)", cols.Employees)
	}
}

func TestResolveColumns_LogoCandidateOrder(t *testing.T) {
	headers := []string{"image", "logo", "image_url"}
	cols := ResolveColumns(headers)
	// Candidates in alias priority order: logo, image, image_url.
	want := []int{1, 0, 2}
	if len(cols.Logo) != len(want) {
		t.Fatalf("Logo columns = %v, want %v", cols.Logo, want)
	}
	for i := range want {
		if cols.Logo[i] != want[i] {
			t.Errorf("Logo[%d] = %d, want %d", i, cols.Logo[i], want[i])
		}
	}
}

// -----------------------------------------------------------------------------
// Record Construction
// -----------------------------------------------------------------------------

func TestFromRow_Defaults(t *testing.T) {
	headers := []string{"name", "employees", "industry"}
	cols := ResolveColumns(headers)

	rec := FromRow(3, cols, []string{"", "", ""})
	if rec.Name != "Company_3" {
		t.Errorf("Name = %q, want placeholder Company_3", rec.Name)
	}
	if rec.Employees != DefaultEmployees {
		t.Errorf("Employees = %d, want default %d", rec.Employees, DefaultEmployees)
	}
	if rec.Industry != DefaultIndustry {
		t.Errorf("Industry = %q, want %q", rec.Industry, DefaultIndustry)
	}
}

func TestFromRow_ShortRow(t *testing.T) {
	// Rows may have fewer cells than headers; missing cells read as empty.
	headers := []string{"name", "employees", "industry", "logo"}
	cols := ResolveColumns(headers)

	rec := FromRow(0, cols, []string{"Acme Corp"})
	if rec.Name != "Acme Corp" {
		t.Errorf("Name = %q, want Acme Corp", rec.Name)
	}
	if rec.Employees != DefaultEmployees {
		t.Errorf("Employees = %d, want default", rec.Employees)
	}
	if rec.LogoURL != "" {
		t.Errorf("LogoURL = %q, want empty", rec.LogoURL)
	}
}

func TestFromRow_FirstValidLogoWins(t *testing.T) {
	headers := []string{"name", "logo", "image"}
	cols := ResolveColumns(headers)

	rec := FromRow(0, cols, []string{"Acme", "not-a-url", "https://example.com/logo.png"})
	if rec.LogoURL != "https://example.com/logo.png" {
		t.Errorf("LogoURL = %q, want the first valid candidate", rec.LogoURL)
	}
}

// -----------------------------------------------------------------------------
// Employee Count Parsing
// -----------------------------------------------------------------------------

func TestParseEmployees(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"250", 250},
		{"0", 0},
		{"120.0", 120},
		{"1,200", 1200},
		{" 75 ", 75},
		{"", DefaultEmployees},
		{"abc", DefaultEmployees},
		{"-5", DefaultEmployees},
		{"-5.0", DefaultEmployees},
		{"NaN", DefaultEmployees},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseEmployees(tt.in); got != tt.want {
				t.Errorf("ParseEmployees(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// URL Normalization
// -----------------------------------------------------------------------------

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com/logo.png", "https://example.com/logo.png"},
		{"http://example.com", "http://example.com"},
		{"HTTPS://EXAMPLE.COM/A.PNG", "HTTPS://EXAMPLE.COM/A.PNG"},
		{"  https://example.com  ", "https://example.com"},
		{"ftp://example.com", ""},
		{"not-a-url", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeURL(tt.in); got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// -----------------------------------------------------------------------------
// Name Sanitization
// -----------------------------------------------------------------------------

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme Corp", "Acme Corp"},
		{`A/B\C:D*E?F"G<H>I|J`, "ABCDEFGHIJ"},
		{"Smith & Sons, Ltd.", "Smith & Sons, Ltd."},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SanitizeName(tt.in); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// Two distinct companies can sanitize to the same string; artifact paths
// then collide and the later row overwrites the earlier one. This is a
// documented limitation, not a bug the pipeline hides.
func TestSanitizeName_CollisionsAreNotDisambiguated(t *testing.T) {
	a := SanitizeName("Acme/Inc")
	b := SanitizeName("Acme:Inc")
	if a != b {
		t.Fatalf("expected colliding sanitized names, got %q and %q", a, b)
	}
}
