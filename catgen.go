package catgen

import (
	"context"
	"io/fs"

	internalLoader "github.com/goliatone/go-catgen/internal/manifest/loader"
	internalParser "github.com/goliatone/go-catgen/internal/manifest/parser"
	"github.com/goliatone/go-catgen/pkg/manifest"
	"github.com/goliatone/go-catgen/pkg/orchestrator"
	"github.com/goliatone/go-catgen/pkg/render"
	"github.com/goliatone/go-catgen/pkg/renderers/jsonexport"
	"github.com/goliatone/go-catgen/pkg/renderers/roapi"
	"github.com/goliatone/go-catgen/pkg/renderers/site"
)

// RenderOptions carries per-request rendering instructions such as the
// site base URL, minification, and resolved theme tokens.
type RenderOptions = render.RenderOptions

// Artifact is a single rendered output file.
type Artifact = render.Artifact

// Request describes the inputs for one generation run; alias exported via
// the root package for convenience.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module so most callers only import one package.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewLoader constructs a manifest loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...manifest.LoaderOption) manifest.Loader {
	cfg := manifest.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a manifest parser backed by the internal
// implementation.
func NewParser() manifest.Parser {
	return internalParser.New()
}

// GenerateSite loads the manifest, builds the catalog model, and renders
// the full static site (HTML pages, data.json, ROAPI config) into dir. It
// is the simplest entry point for callers that just want a site on disk.
func GenerateSite(ctx context.Context, source manifest.Source, dir string, options ...orchestrator.Option) error {
	gen := orchestrator.New(options...)
	return gen.Export(ctx, orchestrator.Request{
		Source:    source,
		Renderers: []string{site.RendererName, jsonexport.RendererName, roapi.RendererName},
	}, dir)
}

// EmbeddedTemplates exposes the built-in site templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return site.TemplatesFS()
}
