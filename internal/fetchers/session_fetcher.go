package fetchers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SessionFetcher pulls a raw session snapshot from an upstream endpoint.
// The returned reader yields the snapshot body as-is; the caller owns
// closing it.
//
//go:generate mockgen -source=session_fetcher.go -destination=./mocks/session_fetcher_mock.go -package=mocks
type SessionFetcher interface {
	FetchSessions(ctx context.Context) (io.ReadCloser, error)
}

type httpSessionFetcher struct {
	client *http.Client
	url    string
}

func NewHTTPSessionFetcher(url string, timeout time.Duration) SessionFetcher {
	return &httpSessionFetcher{
		client: &http.Client{Timeout: timeout},
		url:    url,
	}
}

func (f *httpSessionFetcher) FetchSessions(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build fetch request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessions from %s: %w", f.url, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, f.url)
	}

	return resp.Body, nil
}
