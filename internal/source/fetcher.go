package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kSibalic/nba/internal/files"
)

// Fetcher retrieves the raw text of a season file.
type Fetcher interface {
	Fetch(ctx context.Context, location string) (io.ReadCloser, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, location string) (io.ReadCloser, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, location string) (io.ReadCloser, error) {
	return f(ctx, location)
}

// FileFetcher reads season files from disk.
type FileFetcher struct {
	files *files.Manager
}

// NewFileFetcher creates a fetcher resolving locations through m.
func NewFileFetcher(m *files.Manager) *FileFetcher {
	return &FileFetcher{files: m}
}

// Fetch opens the file at location.
func (f *FileFetcher) Fetch(ctx context.Context, location string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := f.files.Open(location)
	if err != nil {
		return nil, err
	}
	return file, nil
}

// HTTPFetcher downloads season files with GET.
type HTTPFetcher struct {
	client  *http.Client
	timeout time.Duration
}

// NewHTTPFetcher creates a fetcher using client, or http.DefaultClient when
// client is nil. A positive timeout bounds each request.
func NewHTTPFetcher(client *http.Client, timeout time.Duration) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{client: client, timeout: timeout}
}

// Fetch issues the request. Any non-2xx response is an error.
func (f *HTTPFetcher) Fetch(ctx context.Context, location string) (io.ReadCloser, error) {
	cancel := context.CancelFunc(func() {})
	if f.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		cancel()
		return nil, err
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	resp, err := f.client.Do(req)
	if err != nil {
		cancel()
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("HTTP request failed with status: %d", resp.StatusCode)
	}

	return &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}, nil
}

// cancelOnClose releases the request context once the body is closed.
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}

// Router sends http(s) locations to HTTP and everything else to File.
type Router struct {
	File Fetcher
	HTTP Fetcher
}

// NewRouter creates a router over a file and an HTTP fetcher.
func NewRouter(file, remote Fetcher) *Router {
	return &Router{File: file, HTTP: remote}
}

// Fetch dispatches on the location scheme.
func (r *Router) Fetch(ctx context.Context, location string) (io.ReadCloser, error) {
	if IsRemote(location) {
		return r.HTTP.Fetch(ctx, location)
	}
	return r.File.Fetch(ctx, location)
}

// IsRemote reports whether location is an http or https URL.
func IsRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
