package parser

import (
	"fmt"
	"strconv"
	"strings"

	"ward-scraper/models"

	"github.com/PuerkitoBio/goquery"
)

const (
	corporationSuffix  = " Corporation"
	municipalitySuffix = " Municipality"

	// DefaultCorporationWards is substituted when a corporation row has no
	// parseable ward count.
	DefaultCorporationWards = 100
	// DefaultMunicipalityWards is the placeholder for municipality rows,
	// whose source table usually has no ward column at all.
	DefaultMunicipalityWards = 30
)

// ParseCorporations extracts municipal corporation records from a source page.
// It reads the first wikitable only; a page without one yields zero records.
//
// Column layout is hard-coded against the known structure of the corporations
// page: cell 1 = name, cell 4 = district, cell 5 = ward count. Rows with fewer
// than 6 cells are skipped. Header-styled cells inside data rows count as
// cells, since the page renders the serial-number column as th.
func ParseCorporations(htmlContent string) ([]models.ULB, models.Stats, error) {
	var stats models.Stats

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, stats, fmt.Errorf("failed to parse HTML: %w", err)
	}

	table := findWikitable(doc)
	if table == nil {
		return nil, stats, nil
	}

	var ulbs []models.ULB
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // header row
		}
		stats.Rows++

		cols := cellText(row, "td, th")
		if len(cols) < 6 {
			stats.Skipped++
			return
		}

		count, ok := leadingInt(cols[5])
		if !ok {
			count = DefaultCorporationWards
			stats.Defaulted++
		}

		stats.Parsed++
		ulbs = append(ulbs, models.ULB{
			Name:      cols[1] + corporationSuffix,
			District:  cols[4],
			WardCount: count,
		})
	})

	return ulbs, stats, nil
}

// ParseMunicipalities extracts municipality records from a source page.
// It reads the first wikitable only; a page without one yields zero records.
//
// Column layout: cell 1 = name, cell 2 = district, optional cell 3 = ward
// count (taken only when entirely decimal digits, otherwise the placeholder
// applies). Rows with fewer than 3 cells are skipped. Unlike the corporations
// table, only td cells count here — the serial-number th is not a cell.
func ParseMunicipalities(htmlContent string) ([]models.ULB, models.Stats, error) {
	var stats models.Stats

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, stats, fmt.Errorf("failed to parse HTML: %w", err)
	}

	table := findWikitable(doc)
	if table == nil {
		return nil, stats, nil
	}

	var ulbs []models.ULB
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // header row
		}
		stats.Rows++

		cols := cellText(row, "td")
		if len(cols) < 3 {
			stats.Skipped++
			return
		}

		count := DefaultMunicipalityWards
		if len(cols) >= 4 && allDigits(cols[3]) {
			if n, err := strconv.Atoi(cols[3]); err == nil {
				count = n
			}
		} else {
			stats.Defaulted++
		}

		stats.Parsed++
		ulbs = append(ulbs, models.ULB{
			Name:      cols[1] + municipalitySuffix,
			District:  cols[2],
			WardCount: count,
		})
	})

	return ulbs, stats, nil
}

// findWikitable returns the first table carrying the wikitable class, or nil.
// A missing table is not an error; the caller simply gets no records.
func findWikitable(doc *goquery.Document) *goquery.Selection {
	table := doc.Find("table.wikitable").First()
	if table.Length() == 0 {
		return nil
	}
	return table
}

// cellText collects trimmed text from the row's cells matching selector
func cellText(row *goquery.Selection, selector string) []string {
	var cols []string
	row.Find(selector).Each(func(_ int, cell *goquery.Selection) {
		cols = append(cols, strings.TrimSpace(cell.Text()))
	})
	return cols
}

// leadingInt parses the first whitespace-delimited token of s as an integer.
// Handles cells like "200 wards" or "200 (2011)".
func leadingInt(s string) (int, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, false
	}
	return n, true
}

// allDigits reports whether s is non-empty and entirely ASCII digits
func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
