package manifest

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Source identifies where a catalog manifest lives. Loaders switch on the
// kind; everything else treats sources as opaque handles.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceFromFile returns a Source pointing at an on-disk manifest.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

// SourceFromFS returns a Source naming an entry inside a loader-supplied
// fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

// SourceFromURL returns a Source for an HTTP or HTTPS manifest. It panics
// on an unparseable URL so configuration mistakes surface at wiring time.
func SourceFromURL(raw string) Source {
	if raw == "" {
		panic("manifest: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("manifest: invalid URL %q: %v", raw, err))
	}
	return urlSource{raw: raw}
}

type fileSource struct {
	path string
}

func (s fileSource) Kind() SourceKind { return SourceKindFile }
func (s fileSource) Location() string { return s.path }

type fsSource struct {
	name string
}

func (s fsSource) Kind() SourceKind { return SourceKindFS }
func (s fsSource) Location() string { return s.name }

type urlSource struct {
	raw string
}

func (s urlSource) Kind() SourceKind { return SourceKindURL }
func (s urlSource) Location() string { return s.raw }
