package lottery

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"scratch_tracker/pkg/httpx"
)

// StatusError is a non-2xx answer from the lottery site. The code is kept so
// callers can put it into the per-game failure message verbatim.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// Client fetches the games-index page and per-game detail pages. The site
// serves plain public HTML but rejects clients without browser-ish headers,
// so every request carries them.
type Client struct {
	httpClient *http.Client
	listingURL string
}

func NewClient(listingURL string, timeout time.Duration, logFieldMaxLen int) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: httpx.NewLoggingRoundTripper(
				http.DefaultTransport,
				httpx.WithLogFieldMaxLen(logFieldMaxLen),
			),
		},
		listingURL: listingURL,
	}
}

// FetchListing returns the raw HTML of the games-index page.
func (c *Client) FetchListing(ctx context.Context) (string, error) {
	return c.fetch(ctx, c.listingURL)
}

// FetchDetail returns the raw HTML of one detail page.
func (c *Client) FetchDetail(ctx context.Context, url string) (string, error) {
	return c.fetch(ctx, url)
}

func (c *Client) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; scratch-tracker/1.0)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("httpClient.Do: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := readBody(resp)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// readBody unwraps a gzipped body when the site ignores our lack of an
// Accept-Encoding header and compresses anyway.
func readBody(resp *http.Response) ([]byte, error) {
	reader := resp.Body

	if strings.Contains(resp.Header.Get("Content-Encoding"), "gzip") {
		gzReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip.NewReader: %w", err)
		}

		defer gzReader.Close()

		reader = gzReader
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %w", err)
	}

	return body, nil
}
