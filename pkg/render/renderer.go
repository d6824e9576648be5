package render

import (
	"context"

	"github.com/goliatone/go-catgen/pkg/model"
)

// Artifact is one generated output file: a doc page, the data export, a
// stylesheet, or a generated engine config.
type Artifact struct {
	// Path is the artifact location relative to the export root, using
	// forward slashes.
	Path string
	// ContentType describes the payload (text/html, application/json, ...).
	ContentType string
	// Data is the rendered payload.
	Data []byte
}

// Renderer converts a CatalogModel into output artifacts (HTML site pages,
// the JSON export, ROAPI configs, etc.).
type Renderer interface {
	Name() string
	Render(ctx context.Context, catalog model.CatalogModel, options RenderOptions) ([]Artifact, error)
}
