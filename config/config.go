package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the scrape run configuration
type Config struct {
	Sources struct {
		Corporations   string `yaml:"corporations"`
		Municipalities string `yaml:"municipalities"`
	} `yaml:"sources"`
	UserAgent string            `yaml:"user_agent"`
	Headers   map[string]string `yaml:"headers"`
	Output    string            `yaml:"output"`
}

// LoadConfig loads configuration from a YAML file. Fields left empty in the
// file fall back to the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.fillDefaults()
	return &cfg, nil
}

// GetDefaultConfig returns a default configuration
func GetDefaultConfig() *Config {
	cfg := &Config{}
	cfg.fillDefaults()
	return cfg
}

func (c *Config) fillDefaults() {
	if c.Sources.Corporations == "" {
		c.Sources.Corporations = "https://en.wikipedia.org/wiki/List_of_municipal_corporations_in_Tamil_Nadu"
	}
	if c.Sources.Municipalities == "" {
		c.Sources.Municipalities = "https://en.wikipedia.org/wiki/List_of_municipalities_in_Tamil_Nadu"
	}
	if c.UserAgent == "" {
		c.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	}
	if c.Output == "" {
		c.Output = "scraped_wards.json"
	}
}
