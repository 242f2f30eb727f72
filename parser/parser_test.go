package parser

import (
	"testing"

	"ward-scraper/models"
)

func corporationPage(rows ...string) string {
	page := `<html><body><table class="wikitable">` +
		`<tr><th>#</th><th>Corporation</th><th>Est.</th><th>Area</th><th>District</th><th>Wards</th></tr>`
	for _, r := range rows {
		page += r
	}
	page += `</table></body></html>`
	return page
}

func municipalityPage(rows ...string) string {
	page := `<html><body><table class="wikitable">` +
		`<tr><th>#</th><th>Municipality</th><th>District</th></tr>`
	for _, r := range rows {
		page += r
	}
	page += `</table></body></html>`
	return page
}

func TestParseCorporations(t *testing.T) {
	tests := []struct {
		name     string
		row      string
		expected []models.ULB
		skipped  int
	}{
		{
			name: "full row with numeric wards",
			row:  `<tr><td>1</td><td>Chennai</td><td>1688</td><td>426</td><td>Chennai</td><td>200</td></tr>`,
			expected: []models.ULB{
				{Name: "Chennai Corporation", District: "Chennai", WardCount: 200},
			},
		},
		{
			name: "wards cell with trailing text",
			row:  `<tr><td>2</td><td>Coimbatore</td><td>1981</td><td>246</td><td>Coimbatore</td><td>100 wards</td></tr>`,
			expected: []models.ULB{
				{Name: "Coimbatore Corporation", District: "Coimbatore", WardCount: 100},
			},
		},
		{
			name: "non-numeric wards defaults to 100",
			row:  `<tr><td>3</td><td>Madurai</td><td>1971</td><td>147</td><td>Madurai</td><td>unknown</td></tr>`,
			expected: []models.ULB{
				{Name: "Madurai Corporation", District: "Madurai", WardCount: 100},
			},
		},
		{
			name: "empty wards cell defaults to 100",
			row:  `<tr><td>4</td><td>Salem</td><td>1994</td><td>91</td><td>Salem</td><td></td></tr>`,
			expected: []models.ULB{
				{Name: "Salem Corporation", District: "Salem", WardCount: 100},
			},
		},
		{
			name: "header-styled serial cell still counts",
			row:  `<tr><th>5</th><td>Tiruchirappalli</td><td>1994</td><td>167</td><td>Tiruchirappalli</td><td>65</td></tr>`,
			expected: []models.ULB{
				{Name: "Tiruchirappalli Corporation", District: "Tiruchirappalli", WardCount: 65},
			},
		},
		{
			name:     "too few cells skipped",
			row:      `<tr><td>6</td><td>Vellore</td><td>2008</td><td>Vellore</td><td>60</td></tr>`,
			expected: nil,
			skipped:  1,
		},
		{
			name: "footnote marker kept raw",
			row:  `<tr><td>7</td><td>Tirunelveli</td><td>1994</td><td>189</td><td>Tirunelveli[note 2]</td><td>55</td></tr>`,
			expected: []models.ULB{
				{Name: "Tirunelveli Corporation", District: "Tirunelveli[note 2]", WardCount: 55},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ulbs, stats, err := ParseCorporations(corporationPage(tt.row))
			if err != nil {
				t.Fatalf("ParseCorporations() error = %v", err)
			}
			if len(ulbs) != len(tt.expected) {
				t.Fatalf("got %d records, want %d", len(ulbs), len(tt.expected))
			}
			for i, want := range tt.expected {
				if ulbs[i] != want {
					t.Errorf("record %d = %+v, want %+v", i, ulbs[i], want)
				}
			}
			if stats.Skipped != tt.skipped {
				t.Errorf("stats.Skipped = %d, want %d", stats.Skipped, tt.skipped)
			}
		})
	}
}

func TestParseMunicipalities(t *testing.T) {
	tests := []struct {
		name     string
		row      string
		expected []models.ULB
		skipped  int
	}{
		{
			name: "three cells default to 30",
			row:  `<tr><td>1</td><td>Erode</td><td>Erode</td></tr>`,
			expected: []models.ULB{
				{Name: "Erode Municipality", District: "Erode", WardCount: 30},
			},
		},
		{
			name: "fourth all-digit cell parsed",
			row:  `<tr><td>2</td><td>Karur</td><td>Karur</td><td>48</td></tr>`,
			expected: []models.ULB{
				{Name: "Karur Municipality", District: "Karur", WardCount: 48},
			},
		},
		{
			name: "fourth non-digit cell ignored",
			row:  `<tr><td>3</td><td>Namakkal</td><td>Namakkal</td><td>n/a</td></tr>`,
			expected: []models.ULB{
				{Name: "Namakkal Municipality", District: "Namakkal", WardCount: 30},
			},
		},
		{
			name: "fourth mixed cell ignored",
			row:  `<tr><td>4</td><td>Theni</td><td>Theni</td><td>33 wards</td></tr>`,
			expected: []models.ULB{
				{Name: "Theni Municipality", District: "Theni", WardCount: 30},
			},
		},
		{
			name:     "too few cells skipped",
			row:      `<tr><td>5</td><td>Ambur</td></tr>`,
			expected: nil,
			skipped:  1,
		},
		{
			name: "header-styled cell does not count",
			// th serial cell: only two td cells remain, so the row is skipped
			row:      `<tr><th>6</th><td>Arakkonam</td><td>Ranipet</td></tr>`,
			expected: nil,
			skipped:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ulbs, stats, err := ParseMunicipalities(municipalityPage(tt.row))
			if err != nil {
				t.Fatalf("ParseMunicipalities() error = %v", err)
			}
			if len(ulbs) != len(tt.expected) {
				t.Fatalf("got %d records, want %d", len(ulbs), len(tt.expected))
			}
			for i, want := range tt.expected {
				if ulbs[i] != want {
					t.Errorf("record %d = %+v, want %+v", i, ulbs[i], want)
				}
			}
			if stats.Skipped != tt.skipped {
				t.Errorf("stats.Skipped = %d, want %d", stats.Skipped, tt.skipped)
			}
		})
	}
}

func TestParseCorporationsNoWikitable(t *testing.T) {
	html := `<html><body><table><tr><th>Corporation</th></tr>` +
		`<tr><td>1</td><td>Chennai</td><td>x</td><td>y</td><td>Chennai</td><td>200</td></tr></table></body></html>`

	ulbs, stats, err := ParseCorporations(html)
	if err != nil {
		t.Fatalf("ParseCorporations() error = %v", err)
	}
	if len(ulbs) != 0 {
		t.Errorf("got %d records from a page without a wikitable, want 0", len(ulbs))
	}
	if stats.Rows != 0 {
		t.Errorf("stats.Rows = %d, want 0", stats.Rows)
	}
}

func TestParseCorporationsOnlyFirstWikitable(t *testing.T) {
	html := `<html><body>` +
		`<table class="wikitable sortable">` +
		`<tr><th>#</th><th>Corporation</th><th>Est.</th><th>Area</th><th>District</th><th>Wards</th></tr>` +
		`<tr><td>1</td><td>Chennai</td><td>x</td><td>y</td><td>Chennai</td><td>200</td></tr>` +
		`</table>` +
		`<table class="wikitable">` +
		`<tr><th>#</th><th>Corporation</th><th>Est.</th><th>Area</th><th>District</th><th>Wards</th></tr>` +
		`<tr><td>1</td><td>Coimbatore</td><td>x</td><td>y</td><td>Coimbatore</td><td>100</td></tr>` +
		`</table>` +
		`</body></html>`

	ulbs, _, err := ParseCorporations(html)
	if err != nil {
		t.Fatalf("ParseCorporations() error = %v", err)
	}
	if len(ulbs) != 1 {
		t.Fatalf("got %d records, want 1 (second wikitable must be ignored)", len(ulbs))
	}
	if ulbs[0].Name != "Chennai Corporation" {
		t.Errorf("record = %+v, want Chennai Corporation", ulbs[0])
	}
}

func TestLeadingInt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
		ok    bool
	}{
		{"plain number", "200", 200, true},
		{"number with suffix", "200 wards", 200, true},
		{"padded", "  65  ", 65, true},
		{"non-numeric", "unknown", 0, false},
		{"empty", "", 0, false},
		{"number not first", "about 200", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := leadingInt(tt.input)
			if got != tt.want || ok != tt.ok {
				t.Errorf("leadingInt(%q) = (%d, %v), want (%d, %v)", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestAllDigits(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"48", true},
		{"0", true},
		{"", false},
		{"4 8", false},
		{"48a", false},
		{"-48", false},
	}

	for _, tt := range tests {
		if got := allDigits(tt.input); got != tt.want {
			t.Errorf("allDigits(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
