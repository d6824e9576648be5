// Package loader fetches catalog manifests from the filesystem, an fs.FS,
// or HTTP, behind the pkg/manifest Loader contract. HTTP is opt-in so the
// default configuration stays offline.
package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	pkgmanifest "github.com/goliatone/go-catgen/pkg/manifest"
)

// Loader dispatches on the source kind to the matching fetch strategy.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

var _ pkgmanifest.Loader = (*Loader)(nil)

// New builds a Loader from resolved options. An injected HTTP client
// enables remote sources even without the fallback flag; the timeout is
// applied to the client when it does not carry one.
func New(options pkgmanifest.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Load fetches the manifest named by src and wraps it in a Document.
func (l *Loader) Load(ctx context.Context, src pkgmanifest.Source) (pkgmanifest.Document, error) {
	if src == nil {
		return pkgmanifest.Document{}, errors.New("manifest loader: source is nil")
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case pkgmanifest.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case pkgmanifest.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case pkgmanifest.SourceKindURL:
		if !l.allowHTTP {
			return pkgmanifest.Document{}, errors.New("manifest loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = errors.New("manifest loader: unsupported source kind")
	}
	if err != nil {
		return pkgmanifest.Document{}, err
	}

	return pkgmanifest.NewDocument(src, data)
}
