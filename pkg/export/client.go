package export

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DataPath is the fixed location of the exported dataset description on
// a generated site.
const DataPath = "/data.json"

const defaultRequestTimeout = 15 * time.Second

// Client loads the exported dataset description published by a generated
// site. The document is fetched at most once per client; every call to
// Load after the first returns the memoized result.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration

	once sync.Once
	data ExportedData
	err  error
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client used for the fetch. The client is
// cloned so shared transports keep their own timeouts.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc == nil {
			return
		}
		clone := *hc
		c.httpClient = &clone
	}
}

// WithRequestTimeout bounds the fetch. Zero or negative values keep the
// default.
func WithRequestTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClient returns a client that loads DataPath from baseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("export client: invalid base url %q: %w", baseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("export client: unsupported scheme %q", parsed.Scheme)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    defaultRequestTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Load fetches and decodes the exported dataset description. The first
// call performs the request; subsequent calls return the same document
// or the same error without touching the network.
func (c *Client) Load(ctx context.Context) (ExportedData, error) {
	c.once.Do(func() {
		c.data, c.err = c.fetch(ctx)
	})
	return c.data, c.err
}

// Table returns the named table from the loaded export.
func (c *Client) Table(ctx context.Context, database, name string) (ExportedTable, error) {
	data, err := c.Load(ctx)
	if err != nil {
		return ExportedTable{}, err
	}
	for _, tbl := range data.Tables {
		if tbl.Database == database && tbl.Name == name {
			return tbl, nil
		}
	}
	return ExportedTable{}, fmt.Errorf("export client: unknown table %s.%s", database, name)
}

// statusText is the reason phrase of the status line, so non-standard
// codes still carry whatever text the server sent.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func (c *Client) fetch(ctx context.Context) (ExportedData, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.baseURL+DataPath, nil)
	if err != nil {
		return ExportedData{}, fmt.Errorf("export client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ExportedData{}, fmt.Errorf("export client: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return ExportedData{}, fmt.Errorf("Failed to load data: %s", statusText(resp))
	}

	var data ExportedData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return ExportedData{}, fmt.Errorf("export client: decode export: %w", err)
	}
	return data, nil
}
