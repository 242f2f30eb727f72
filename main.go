package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"ward-scraper/config"
	"ward-scraper/db"
	"ward-scraper/fetcher"
	"ward-scraper/models"
	"ward-scraper/notify"
	"ward-scraper/parser"
	"ward-scraper/sheets"
	"ward-scraper/wards"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	output := flag.String("output", "", "Output file path (overrides config)")
	useBrowser := flag.Bool("browser", false, "Fetch pages with a headless browser instead of plain HTTP")
	spreadsheetURL := flag.String("spreadsheet", "", "Google Sheets URL to also write results to (optional)")
	credentialsPath := flag.String("credentials", "", "Path to Google service account credentials JSON file (or use GOOGLE_SHEETS_CREDENTIALS env var)")
	saveDB := flag.Bool("save-db", false, "Also save results to Postgres (DATABASE_URL or DB_* env vars)")
	notifyFlag := flag.Bool("notify", false, "Send the run summary to Telegram (TELEGRAM_BOT_TOKEN, TELEGRAM_CHAT_ID)")
	flag.Parse()

	cfg := loadConfig(*configPath)
	if *output != "" {
		cfg.Output = *output
	}

	f, cleanup, err := newFetcher(*useBrowser, cfg)
	if err != nil {
		log.Fatalf("Failed to create fetcher: %v\n", err)
	}
	defer cleanup()

	raw, stats, err := scrapeWards(f, cfg)
	if err != nil {
		log.Fatalf("Scraping failed: %v\n", err)
	}

	table, overwrites := raw.Clean()

	if err := table.WriteFile(cfg.Output); err != nil {
		log.Fatalf("Failed to write output: %v\n", err)
	}
	fmt.Printf("Finished writing to %s\n", cfg.Output)

	summary := fmt.Sprintf("Scraped %d ULBs across %d districts (%d rows skipped, %d ward counts defaulted, %d duplicate names overwritten)",
		table.Len(), len(table.Districts()), stats.Skipped, stats.Defaulted, overwrites)
	log.Println(summary)

	// Optional sinks; failures here are warnings, the JSON file is already
	// on disk.
	if *saveDB {
		saveToDatabase(table)
	}
	if *spreadsheetURL != "" {
		writeToSheets(*spreadsheetURL, *credentialsPath, table)
	}
	if *notifyFlag {
		sendNotification(summary)
	}
}

// loadConfig loads configuration from file or returns defaults
func loadConfig(configPath string) *config.Config {
	var cfg *config.Config
	if _, err := os.Stat(configPath); err == nil {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			log.Printf("Warning: Failed to load config file: %v. Using defaults.\n", err)
			cfg = config.GetDefaultConfig()
		}
	} else {
		log.Println("Config file not found. Using default configuration.")
		cfg = config.GetDefaultConfig()
	}
	return cfg
}

// newFetcher picks the fetch implementation. The cleanup func shuts down the
// headless browser when one is in use.
func newFetcher(useBrowser bool, cfg *config.Config) (fetcher.Fetcher, func(), error) {
	if useBrowser {
		rf, err := fetcher.NewRodFetcher()
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := rf.Close(); err != nil {
				log.Printf("Warning: Failed to close browser: %v\n", err)
			}
		}
		return rf, cleanup, nil
	}
	return fetcher.NewCollyFetcher(cfg.UserAgent, cfg.Headers), func() {}, nil
}

// scrapeWards fetches both source pages and folds the extracted records into
// a raw (uncleaned) table in scrape order: corporations first, then
// municipalities.
func scrapeWards(f fetcher.Fetcher, cfg *config.Config) (*wards.Table, models.Stats, error) {
	table := wards.NewTable()
	var total models.Stats

	corpHTML, err := f.Fetch(cfg.Sources.Corporations)
	if err != nil {
		return nil, total, fmt.Errorf("fetching corporations page: %w", err)
	}
	corps, corpStats, err := parser.ParseCorporations(corpHTML)
	if err != nil {
		return nil, total, fmt.Errorf("parsing corporations page: %w", err)
	}
	total.Add(corpStats)
	table.Fold(corps)

	muniHTML, err := f.Fetch(cfg.Sources.Municipalities)
	if err != nil {
		return nil, total, fmt.Errorf("fetching municipalities page: %w", err)
	}
	munis, muniStats, err := parser.ParseMunicipalities(muniHTML)
	if err != nil {
		return nil, total, fmt.Errorf("parsing municipalities page: %w", err)
	}
	total.Add(muniStats)
	table.Fold(munis)

	return table, total, nil
}

func saveToDatabase(table *wards.Table) {
	database, err := db.NewDB()
	if err != nil {
		log.Printf("Warning: Failed to connect to database: %v\n", err)
		return
	}
	defer database.Close()

	if err := database.SaveTable(table); err != nil {
		log.Printf("Warning: Failed to save to database: %v\n", err)
		return
	}
	log.Printf("Saved %d ULBs to database\n", table.Len())
}

func writeToSheets(spreadsheetURL, credentialsPath string, table *wards.Table) {
	spreadsheetID := sheets.ExtractSpreadsheetID(spreadsheetURL)
	if spreadsheetID == "" {
		log.Printf("Warning: Could not extract spreadsheet ID from URL: %s\n", spreadsheetURL)
		return
	}

	writer, err := sheets.NewWriter(spreadsheetID, credentialsPath)
	if err != nil {
		log.Printf("Warning: Failed to create sheets writer: %v\n", err)
		return
	}

	if err := writer.WriteWards(table, true); err != nil {
		log.Printf("Warning: Failed to write to Google Sheets: %v\n", err)
	}
}

func sendNotification(summary string) {
	notifier, err := notify.NewNotifier()
	if err != nil {
		log.Printf("Warning: Telegram notification disabled: %v\n", err)
		return
	}
	if err := notifier.Send(summary); err != nil {
		log.Printf("Warning: Failed to send Telegram notification: %v\n", err)
	}
}
