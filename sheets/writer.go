package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"ward-scraper/wards"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Writer handles writing the ward table to Google Sheets
type Writer struct {
	service       *sheets.Service
	spreadsheetID string
}

// NewWriter creates a new Google Sheets writer. Credentials come from the
// given file path, or from the GOOGLE_SHEETS_CREDENTIALS environment variable.
func NewWriter(spreadsheetID string, credentialsPath string) (*Writer, error) {
	ctx := context.Background()

	var credsJSON []byte
	var err error

	if credentialsPath != "" {
		credsJSON, err = os.ReadFile(credentialsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
	} else {
		credsEnv := strings.TrimSpace(os.Getenv("GOOGLE_SHEETS_CREDENTIALS"))
		if credsEnv == "" {
			return nil, fmt.Errorf("credentials not found: GOOGLE_SHEETS_CREDENTIALS environment variable is empty or not set")
		}
		credsJSON = []byte(credsEnv)
	}

	// Validate that it's a service account credentials file
	var creds map[string]interface{}
	if err := json.Unmarshal(credsJSON, &creds); err != nil {
		return nil, fmt.Errorf("invalid credentials JSON: %w", err)
	}
	if creds["type"] != "service_account" {
		return nil, fmt.Errorf("credentials must be a service account JSON file (type: service_account), got type: %v", creds["type"])
	}

	service, err := sheets.NewService(ctx, option.WithCredentialsJSON(credsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		service:       service,
		spreadsheetID: spreadsheetID,
	}, nil
}

// WriteWards writes the ward table to Sheet1, one row per ULB in table order.
// If clearFirst is true, clears existing data before writing.
func (w *Writer) WriteWards(t *wards.Table, clearFirst bool) error {
	if t.Len() == 0 {
		log.Println("No wards to write")
		return nil
	}

	var values [][]interface{}
	values = append(values, []interface{}{"District", "ULB", "Wards"})

	for _, district := range t.Districts() {
		for _, ulb := range t.ULBs(district) {
			count, _ := t.Get(district, ulb)
			values = append(values, []interface{}{district, ulb, count})
		}
	}

	range_ := "Sheet1!A1"

	if clearFirst {
		clearReq := &sheets.ClearValuesRequest{}
		_, err := w.service.Spreadsheets.Values.Clear(w.spreadsheetID, range_, clearReq).Do()
		if err != nil {
			log.Printf("Warning: Failed to clear existing data: %v\n", err)
			// Continue anyway
		}
	}

	valueRange := &sheets.ValueRange{
		Values: values,
	}

	_, err := w.service.Spreadsheets.Values.Update(w.spreadsheetID, range_, valueRange).
		ValueInputOption("RAW").
		Do()
	if err != nil {
		return fmt.Errorf("failed to write to sheets: %w", err)
	}

	log.Printf("Successfully wrote %d ULBs to Google Sheets\n", t.Len())
	return nil
}

// ExtractSpreadsheetID extracts the spreadsheet ID from a Google Sheets URL
// such as https://docs.google.com/spreadsheets/d/SPREADSHEET_ID/edit?usp=sharing
func ExtractSpreadsheetID(url string) string {
	parts := strings.Split(url, "/d/")
	if len(parts) < 2 {
		return ""
	}

	idPart := parts[1]
	if idx := strings.Index(idPart, "/"); idx != -1 {
		idPart = idPart[:idx]
	}
	if idx := strings.Index(idPart, "?"); idx != -1 {
		idPart = idPart[:idx]
	}

	return strings.TrimSpace(idPart)
}
