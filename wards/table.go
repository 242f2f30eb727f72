package wards

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"ward-scraper/models"
)

// Table maps district names to ULB names to ward counts. It remembers key
// insertion order so repeated runs against the same markup serialize
// byte-identically.
type Table struct {
	order     []string
	districts map[string]*district
}

type district struct {
	order []string
	wards map[string]int
}

// NewTable creates an empty table
func NewTable() *Table {
	return &Table{districts: make(map[string]*district)}
}

// Set records the ward count for a ULB within a district. Setting an existing
// (district, ulb) pair replaces the old count and reports the overwrite;
// counts are never summed.
func (t *Table) Set(districtName, ulb string, wardCount int) bool {
	d, ok := t.districts[districtName]
	if !ok {
		d = &district{wards: make(map[string]int)}
		t.districts[districtName] = d
		t.order = append(t.order, districtName)
	}
	_, overwrote := d.wards[ulb]
	if !overwrote {
		d.order = append(d.order, ulb)
	}
	d.wards[ulb] = wardCount
	return overwrote
}

// Fold inserts extracted records in scrape order
func (t *Table) Fold(records []models.ULB) {
	for _, r := range records {
		t.Set(r.District, r.Name, r.WardCount)
	}
}

// Districts returns district names in insertion order
func (t *Table) Districts() []string {
	return t.order
}

// ULBs returns the ULB names of a district in insertion order
func (t *Table) ULBs(districtName string) []string {
	d, ok := t.districts[districtName]
	if !ok {
		return nil
	}
	return d.order
}

// Get returns the ward count for a (district, ulb) pair
func (t *Table) Get(districtName, ulb string) (int, bool) {
	d, ok := t.districts[districtName]
	if !ok {
		return 0, false
	}
	n, ok := d.wards[ulb]
	return n, ok
}

// Len returns the total number of ULBs across all districts
func (t *Table) Len() int {
	n := 0
	for _, name := range t.order {
		n += len(t.districts[name].order)
	}
	return n
}

// Clean returns a new table with footnote markers stripped from district and
// ULB names ("Chennai[note 1]" → "Chennai"). Names that collide after
// cleaning are merged last-write-wins; the overwrite count is returned for
// the run summary.
func (t *Table) Clean() (*Table, int) {
	cleaned := NewTable()
	overwrites := 0
	for _, districtName := range t.order {
		d := t.districts[districtName]
		cDistrict := CleanName(districtName)
		for _, ulb := range d.order {
			if cleaned.Set(cDistrict, CleanName(ulb), d.wards[ulb]) {
				overwrites++
			}
		}
	}
	return cleaned, overwrites
}

// CleanName strips a bracketed footnote marker: everything from the first
// '[' on is dropped, then surrounding whitespace is trimmed.
func CleanName(s string) string {
	if i := strings.Index(s, "["); i != -1 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// JSON serializes the table as a nested JSON object with 2-space indent.
// encoding/json sorts map keys, so the encoding is done by hand to keep
// insertion order; individual keys still go through json.Marshal for
// escaping.
func (t *Table) JSON() []byte {
	var buf bytes.Buffer
	if len(t.order) == 0 {
		buf.WriteString("{}")
		return buf.Bytes()
	}

	buf.WriteString("{\n")
	for i, districtName := range t.order {
		d := t.districts[districtName]
		key, _ := json.Marshal(districtName)
		buf.WriteString("  ")
		buf.Write(key)
		if len(d.order) == 0 {
			buf.WriteString(": {}")
		} else {
			buf.WriteString(": {\n")
			for j, ulb := range d.order {
				ulbKey, _ := json.Marshal(ulb)
				buf.WriteString("    ")
				buf.Write(ulbKey)
				fmt.Fprintf(&buf, ": %d", d.wards[ulb])
				if j < len(d.order)-1 {
					buf.WriteString(",")
				}
				buf.WriteString("\n")
			}
			buf.WriteString("  }")
		}
		if i < len(t.order)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("}")
	return buf.Bytes()
}

// WriteFile writes the JSON serialization to path, overwriting any existing
// file. No temp-file-then-rename; a crash mid-write can truncate the output,
// which is acceptable for a one-off batch tool.
func (t *Table) WriteFile(path string) error {
	if err := os.WriteFile(path, t.JSON(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
