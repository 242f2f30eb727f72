package fetcher

import (
	"fmt"
	"log"

	"github.com/gocolly/colly/v2"
)

// CollyFetcher implements the Fetcher interface using colly
type CollyFetcher struct {
	userAgent string
	headers   map[string]string
}

// NewCollyFetcher creates a new CollyFetcher with the given client identity
// and any extra request headers
func NewCollyFetcher(userAgent string, headers map[string]string) *CollyFetcher {
	return &CollyFetcher{
		userAgent: userAgent,
		headers:   headers,
	}
}

// Fetch implements the Fetcher interface. One synchronous GET, no retries,
// no pagination. Non-2xx responses surface as errors.
func (cf *CollyFetcher) Fetch(url string) (string, error) {
	// A fresh collector per fetch keeps response callbacks from piling up
	// across the two source pages.
	c := colly.NewCollector(
		colly.UserAgent(cf.userAgent),
	)

	var body string
	var fetchErr error

	c.OnRequest(func(r *colly.Request) {
		for k, v := range cf.headers {
			r.Headers.Set(k, v)
		}
	})

	c.OnResponse(func(r *colly.Response) {
		body = string(r.Body)
		log.Printf("Fetched %s (%d bytes)\n", r.Request.URL, len(r.Body))
	})

	c.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("failed to fetch %s: %w", r.Request.URL, err)
	})

	if err := c.Visit(url); err != nil {
		return "", fmt.Errorf("failed to visit URL: %w", err)
	}
	c.Wait()

	if fetchErr != nil {
		return "", fetchErr
	}
	if body == "" {
		return "", fmt.Errorf("empty response from %s", url)
	}

	return body, nil
}
