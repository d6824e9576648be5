package loader

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"
)

func loadHTTP(ctx context.Context, client *http.Client, url string, timeout time.Duration) ([]byte, error) {
	if client == nil {
		return nil, errors.New("manifest loader: http client is not configured")
	}
	if url == "" {
		return nil, errors.New("manifest loader: url is required")
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Anything outside 2xx is a failed fetch, including redirects that
	// survive to the caller.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("manifest loader: unexpected status " + resp.Status)
	}

	return io.ReadAll(resp.Body)
}
