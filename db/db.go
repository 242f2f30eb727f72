package db

import (
	"database/sql"
	"fmt"
	"os"

	"ward-scraper/wards"

	_ "github.com/lib/pq"
)

// DB wraps the database connection
type DB struct {
	conn *sql.DB
}

// NewDB creates a new database connection from DATABASE_URL, or from the
// individual DB_* environment variables
func NewDB() (*DB, error) {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		host := getEnvOrDefault("DB_HOST", "localhost")
		port := getEnvOrDefault("DB_PORT", "5432")
		user := getEnvOrDefault("DB_USER", "ward_scraper")
		password := getEnvOrDefault("DB_PASSWORD", "")
		dbname := getEnvOrDefault("DB_NAME", "ward_scraper")
		sslmode := getEnvOrDefault("DB_SSLMODE", "disable")

		connStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, dbname, sslmode)
	}

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// initSchema creates the ward table if it doesn't exist
func (db *DB) initSchema() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS ulb_wards (
			district VARCHAR(255) NOT NULL,
			ulb VARCHAR(255) NOT NULL,
			ward_count INTEGER NOT NULL,
			scraped_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (district, ulb)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create ulb_wards table: %w", err)
	}

	_, err = db.conn.Exec(`CREATE INDEX IF NOT EXISTS idx_ulb_wards_district ON ulb_wards(district)`)
	if err != nil {
		return fmt.Errorf("failed to create index on ulb_wards.district: %w", err)
	}

	return nil
}

// SaveTable upserts every (district, ulb, ward_count) row of the table.
// Re-running the scrape refreshes existing rows instead of duplicating them.
func (db *DB) SaveTable(t *wards.Table) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO ulb_wards (district, ulb, ward_count, scraped_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		ON CONFLICT (district, ulb)
		DO UPDATE SET ward_count = EXCLUDED.ward_count, scraped_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, district := range t.Districts() {
		for _, ulb := range t.ULBs(district) {
			count, _ := t.Get(district, ulb)
			if _, err := stmt.Exec(district, ulb, count); err != nil {
				return fmt.Errorf("failed to upsert %s / %s: %w", district, ulb, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}
