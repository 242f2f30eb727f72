package fetcher

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// RodFetcher implements the Fetcher interface using rod (headless browser).
// Only needed if the source pages stop serving full HTML to plain clients.
type RodFetcher struct {
	browser *rod.Browser
}

// NewRodFetcher launches a headless browser and connects to it
func NewRodFetcher() (*RodFetcher, error) {
	l := launcher.New().
		Headless(true).
		NoSandbox(true).
		Leakless(false). // avoid antivirus issues with the leakless binary
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-first-run").
		Set("no-default-browser-check").
		Set("mute-audio")

	// Prefer a system Chrome/Chromium over downloading one
	chromePaths := []string{
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/snap/bin/chromium",
	}
	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			l = l.Bin(path)
			break
		}
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	return &RodFetcher{browser: browser}, nil
}

// Fetch implements the Fetcher interface
func (rf *RodFetcher) Fetch(url string) (string, error) {
	page, err := rf.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("failed to create page: %w", err)
	}
	defer page.Close()

	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("failed to navigate: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("failed to load page: %w", err)
	}

	if err := page.Timeout(10 * time.Second).WaitStable(500 * time.Millisecond); err != nil {
		log.Printf("Warning: Page did not stabilize within timeout, continuing anyway: %v\n", err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to get HTML: %w", err)
	}

	log.Printf("Fetched %s via headless browser (%d bytes)\n", url, len(html))
	return html, nil
}

// Close shuts down the browser
func (rf *RodFetcher) Close() error {
	return rf.browser.Close()
}
