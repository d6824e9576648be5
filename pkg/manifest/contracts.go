package manifest

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader fetches catalog manifests. Implementations live under
// internal/manifest; callers program against this contract.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// Parser decodes a loaded Document into a Manifest.
type Parser interface {
	Parse(ctx context.Context, doc Document) (Manifest, error)
}

// LoaderOptions configures source resolution. The zero value is
// offline-only: files and fs.FS entries load, URLs are rejected until a
// client is injected or the fallback is enabled.
type LoaderOptions struct {
	// FileSystem backs fs-kind sources; nil leaves them unsupported.
	FileSystem fs.FS

	// HTTPClient, when set, handles URL sources with caller-controlled
	// transport behaviour.
	HTTPClient *http.Client

	// AllowHTTPFallback turns on a default client for URL sources when no
	// HTTPClient is supplied.
	AllowHTTPFallback bool

	// RequestTimeout caps remote fetches.
	RequestTimeout time.Duration
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS implementation for relative paths.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects a custom HTTP client for remote manifests.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables HTTP loading with a default client and an
// optional timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// NewLoaderOptions resolves a set of LoaderOption values.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
