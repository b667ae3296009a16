package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// FetchError reports a feed that could not be retrieved. StatusCode is
// zero when the request never produced a response.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch feed %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type Fetcher struct {
	client    HTTPClient
	parser    *Parser
	url       string
	userAgent string
}

func NewFetcher(client HTTPClient, parser *Parser, url, userAgent string) *Fetcher {
	return &Fetcher{
		client:    client,
		parser:    parser,
		url:       url,
		userAgent: userAgent,
	}
}

func (f *Fetcher) URL() string {
	return f.url
}

// Fetch downloads the feed and normalizes it. Transport failures are
// returned as *FetchError.
func (f *Fetcher) Fetch(ctx context.Context) (*PodcastData, error) {
	data, err := f.fetchFeed(ctx)
	if err != nil {
		return nil, err
	}

	podcast, err := f.parser.Run(data)
	if err != nil {
		return nil, err
	}

	for slug, count := range SlugCollisions(podcast.Episodes) {
		slog.Warn("Duplicate episode slug", "slug", slug, "episodes", count)
	}

	slog.Debug("Feed fetched", "url", f.url, "episodes", len(podcast.Episodes), "bytes", len(data))

	return podcast, nil
}

func (f *Fetcher) fetchFeed(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			URL:        f.url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("HTTP error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: f.url, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	return data, nil
}
